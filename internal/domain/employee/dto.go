package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

// UpdateEmployeeRequest replaces the editable profile fields. Role is not editable.
type UpdateEmployeeRequest struct {
	FirstName         string  `json:"first_name" validate:"required,max=100"`
	LastName          string  `json:"last_name" validate:"required,max=100"`
	Email             string  `json:"email" validate:"required,email,max=255"`
	PhoneNumber       *string `json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Department        *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Team              *string `json:"team,omitempty" validate:"omitempty,max=100"`
	Position          *string `json:"position,omitempty" validate:"omitempty,max=100"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Bio               *string `json:"bio,omitempty" validate:"omitempty,max=500"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty" validate:"omitempty,max=255"`
	DateOfBirth       *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Address           *string `json:"address,omitempty" validate:"omitempty,max=500"`
	EmergencyContact  *string `json:"emergency_contact,omitempty" validate:"omitempty,max=100"`
	EmergencyPhone    *string `json:"emergency_phone,omitempty" validate:"omitempty,max=20"`
}

func (r *UpdateEmployeeRequest) Validate() error {
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
	if r.DateOfBirth != nil {
		if dob, _ := validator.IsValidDate(*r.DateOfBirth); dob.After(time.Now()) {
			errs.Add("date_of_birth", "date_of_birth cannot be in the future")
		}
	}
	return errs.OrNil()
}

// Apply copies the request onto e, leaving identity, role and timestamps alone.
func (r UpdateEmployeeRequest) Apply(e Employee) Employee {
	e.FirstName = strings.TrimSpace(r.FirstName)
	e.LastName = strings.TrimSpace(r.LastName)
	e.Email = r.Email
	e.PhoneNumber = r.PhoneNumber
	e.Department = r.Department
	e.Team = r.Team
	e.Position = r.Position
	e.Description = r.Description
	e.Bio = r.Bio
	e.ProfilePictureURL = r.ProfilePictureURL
	e.Address = r.Address
	e.EmergencyContact = r.EmergencyContact
	e.EmergencyPhone = r.EmergencyPhone
	e.DateOfBirth = nil
	if r.DateOfBirth != nil {
		if dob, ok := validator.IsValidDate(*r.DateOfBirth); ok {
			e.DateOfBirth = &dob
		}
	}
	return e
}

// EmployeeListItem is one row of the directory listing.
type EmployeeListItem struct {
	ID                int64   `json:"id"`
	FirstName         string  `json:"first_name"`
	LastName          string  `json:"last_name"`
	FullName          string  `json:"full_name"`
	Department        string  `json:"department"`
	Team              string  `json:"team"`
	Position          string  `json:"position"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
	Role              string  `json:"role"`
}

func NewEmployeeListItem(e Employee) EmployeeListItem {
	return EmployeeListItem{
		ID:                e.ID,
		FirstName:         e.FirstName,
		LastName:          e.LastName,
		FullName:          e.FullName(),
		Department:        orNotAssigned(e.Department),
		Team:              orNotAssigned(e.Team),
		Position:          orNotAssigned(e.Position),
		ProfilePictureURL: e.ProfilePictureURL,
		Role:              e.Role.String(),
	}
}
