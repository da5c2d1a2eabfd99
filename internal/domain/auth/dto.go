package auth

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

type RegisterRequest struct {
	FirstName       string  `json:"first_name" validate:"required,max=100"`
	LastName        string  `json:"last_name" validate:"required,max=100"`
	Email           string  `json:"email" validate:"required,email,max=255"`
	Password        string  `json:"password" validate:"required,min=6,max=100"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string  `json:"role,omitempty"`
	Department      *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Team            *string `json:"team,omitempty" validate:"omitempty,max=100"`
	Position        *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if validator.IsEmpty(r.FirstName) {
		errs.Add("first_name", "first_name must not be blank")
	}
	if validator.IsEmpty(r.LastName) {
		errs.Add("last_name", "last_name must not be blank")
	}
	if r.Role != "" {
		if _, err := user.ParseRole(r.Role); err != nil {
			errs.Add("role", "role must be one of: "+strings.Join(user.Roles(), ", "))
		}
	}
	return errs.OrNil()
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=100"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validator.Struct(r)
}

type ValidateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

func (r *ValidateTokenRequest) Validate() error {
	r.Token = strings.TrimSpace(r.Token)
	return validator.Struct(r)
}

type UserInfo struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Department  *string   `json:"department,omitempty"`
	Team        *string   `json:"team,omitempty"`
	Position    *string   `json:"position,omitempty"`
	Description *string   `json:"description,omitempty"`
	HireDate    time.Time `json:"hire_date"`
	Bio         *string   `json:"bio,omitempty"`
	Role        string    `json:"role"`
}

func NewUserInfo(e employee.Employee) UserInfo {
	return UserInfo{
		ID:          e.ID,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		FullName:    e.FullName(),
		Email:       e.Email,
		PhoneNumber: e.PhoneNumber,
		Department:  e.Department,
		Team:        e.Team,
		Position:    e.Position,
		Description: e.Description,
		HireDate:    e.HireDate,
		Bio:         e.Bio,
		Role:        e.Role.String(),
	}
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserInfo  `json:"user"`
}

type ValidateTokenResponse struct {
	IsValid bool `json:"is_valid"`
}
