package middleware

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/jwt"
)

type claimsKey struct{}

func WithClaims(ctx context.Context, claims jwt.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the claims stored by AuthRequired.
func ClaimsFromContext(ctx context.Context) (jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(jwt.Claims)
	return claims, ok
}

// CurrentEmployeeID is the verified token subject. Handlers use it as the
// acting employee and never take an actor id from the request.
func CurrentEmployeeID(ctx context.Context) (int64, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok || claims.EmployeeID == 0 {
		return 0, false
	}
	return claims.EmployeeID, true
}
