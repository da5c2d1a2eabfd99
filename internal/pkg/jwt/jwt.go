package jwt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

// Claims is the verified content of an access token.
type Claims struct {
	EmployeeID int64
	Email      string
	Role       user.Role
	TokenID    string
	ExpiresAt  time.Time
}

type Service interface {
	GenerateAccessToken(employeeID int64, email string, role user.Role) (token string, expiresAt time.Time, err error)
	// ParseToken verifies signature, expiry, issuer, audience, type and revocation.
	ParseToken(ctx context.Context, tokenString string) (Claims, error)
	// ClaimsFromToken checks an already verified token (see jwtauth.Verifier).
	ClaimsFromToken(ctx context.Context, token jwt.Token) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(ctx context.Context, claims Claims) error
}

type JWTService struct {
	accessTokenExpirationTime string
	issuer                    string
	audience                  string
	tokenAuth                 *jwtauth.JWTAuth
	revocations               RevocationStore
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey, accessTokenExpirationTime, issuer, audience string, revocations RevocationStore) Service {
	if revocations == nil {
		revocations = NewMemoryRevocationStore()
	}
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		issuer:                    issuer,
		audience:                  audience,
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil,
			jwt.WithAcceptableSkew(30*time.Second),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
		),
		revocations: revocations,
	}
}

func (j *JWTService) GenerateAccessToken(employeeID int64, email string, role user.Role) (string, time.Time, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("invalid access token expiration %q: %w", j.accessTokenExpirationTime, err)
	}
	expiresAt := time.Now().Add(expDuration).Truncate(time.Second)

	claims := map[string]interface{}{
		jwt.SubjectKey:  strconv.FormatInt(employeeID, 10),
		jwt.JwtIDKey:    uuid.NewString(),
		jwt.IssuerKey:   j.issuer,
		jwt.AudienceKey: j.audience,
		"email":         email,
		"role":          string(role),
		"type":          TokenTypeAccess,
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiry(claims, expiresAt)

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

func (j *JWTService) ParseToken(ctx context.Context, tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, auth.ErrMissingToken
	}
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	return j.ClaimsFromToken(ctx, token)
}

func (j *JWTService) ClaimsFromToken(ctx context.Context, token jwt.Token) (Claims, error) {
	if token == nil {
		return Claims{}, auth.ErrInvalidToken
	}

	tokenType, _ := token.Get("type")
	if tokenType != TokenTypeAccess {
		return Claims{}, auth.ErrInvalidToken
	}

	employeeID, err := strconv.ParseInt(token.Subject(), 10, 64)
	if err != nil || employeeID <= 0 {
		return Claims{}, auth.ErrInvalidToken
	}
	if token.JwtID() == "" {
		return Claims{}, auth.ErrInvalidToken
	}

	claims := Claims{
		EmployeeID: employeeID,
		TokenID:    token.JwtID(),
		ExpiresAt:  token.Expiration(),
	}
	if email, ok := token.Get("email"); ok {
		claims.Email, _ = email.(string)
	}
	if role, ok := token.Get("role"); ok {
		if s, ok := role.(string); ok {
			claims.Role = user.Role(s)
		}
	}

	revoked, err := j.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return Claims{}, auth.ErrTokenRevoked
	}
	return claims, nil
}

// RevokeToken blocks the token id until the token would have expired anyway.
func (j *JWTService) RevokeToken(ctx context.Context, claims Claims) error {
	if claims.TokenID == "" {
		return errors.New("token has no id")
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return j.revocations.Revoke(ctx, claims.TokenID, ttl)
}
