package employee

import (
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
)

// NotAssigned is shown for an empty department, team or position.
const NotAssigned = "Not Assigned"

type Employee struct {
	ID                int64
	FirstName         string
	LastName          string
	Email             string
	PasswordHash      string
	PhoneNumber       *string
	Department        *string
	Team              *string
	Position          *string
	Description       *string
	HireDate          time.Time
	Bio               *string
	ProfilePictureURL *string
	DateOfBirth       *time.Time
	Address           *string
	EmergencyContact  *string
	EmergencyPhone    *string
	Role              user.Role
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Actor returns the employee as an authorization subject.
func (e Employee) Actor() user.Actor {
	return user.Actor{ID: e.ID, Role: e.Role}
}

func orNotAssigned(s *string) string {
	if s == nil || *s == "" {
		return NotAssigned
	}
	return *s
}
