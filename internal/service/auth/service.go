package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwt.Service
	now func() time.Time
}

func NewAuthService(employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		now:                time.Now,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	role := user.RoleEmployee
	if req.Role != "" {
		parsed, err := user.ParseRole(req.Role)
		if err != nil {
			return auth.TokenResponse{}, err
		}
		role = parsed
	}

	hashed, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.EmployeeRepository.Create(ctx, employee.Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        req.Email,
		PasswordHash: hashed,
		Department:   req.Department,
		Team:         req.Team,
		Position:     req.Position,
		Description:  req.Description,
		HireDate:     a.now().UTC().Truncate(24 * time.Hour),
		Role:         role,
	})
	if err != nil {
		metrics.ObserveAuthAttempt("register", "failure")
		return auth.TokenResponse{}, err
	}

	metrics.ObserveAuthAttempt("register", "success")
	return a.issue(created)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	employeeData, err := a.EmployeeRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			metrics.ObserveAuthAttempt("login", "failure")
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employeeData.PasswordHash), []byte(req.Password)); err != nil {
		metrics.ObserveAuthAttempt("login", "failure")
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	metrics.ObserveAuthAttempt("login", "success")
	return a.issue(employeeData)
}

func (a *AuthServiceImpl) issue(e employee.Employee) (auth.TokenResponse, error) {
	token, expiresAt, err := a.Service.GenerateAccessToken(e.ID, e.Email, e.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	return auth.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      auth.NewUserInfo(e),
	}, nil
}

// Validate implements auth.AuthService. A token whose employee no longer exists is not valid.
func (a *AuthServiceImpl) Validate(ctx context.Context, token string) bool {
	claims, err := a.Service.ParseToken(ctx, token)
	if err != nil {
		return false
	}
	exists, err := a.EmployeeRepository.Exists(ctx, claims.EmployeeID)
	return err == nil && exists
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := a.Service.ParseToken(ctx, token)
	if err != nil {
		return err
	}
	if err := a.Service.RevokeToken(ctx, claims); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}
