package employee

import "time"

// ProfileView is either a *PublicProfile or a *FullProfile.
type ProfileView interface {
	Limited() bool
	profileView()
}

// PublicProfile is what a co-worker without elevated access sees.
type PublicProfile struct {
	ID                int64     `json:"id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	FullName          string    `json:"full_name"`
	Department        string    `json:"department"`
	Team              string    `json:"team"`
	Position          string    `json:"position"`
	HireDate          time.Time `json:"hire_date"`
	Bio               *string   `json:"bio,omitempty"`
	Description       *string   `json:"description,omitempty"`
	ProfilePictureURL *string   `json:"profile_picture_url,omitempty"`
	Role              string    `json:"role"`
	IsLimitedView     bool      `json:"is_limited_view"`
}

// FullProfile adds contact and personal fields.
type FullProfile struct {
	PublicProfile
	Email            string  `json:"email"`
	PhoneNumber      *string `json:"phone_number,omitempty"`
	DateOfBirth      *string `json:"date_of_birth,omitempty"`
	Address          *string `json:"address,omitempty"`
	EmergencyContact *string `json:"emergency_contact,omitempty"`
	EmergencyPhone   *string `json:"emergency_phone,omitempty"`
}

func (p *PublicProfile) Limited() bool { return true }
func (p *PublicProfile) profileView()  {}

func (p *FullProfile) Limited() bool { return false }
func (p *FullProfile) profileView()  {}

// Project shapes e for a viewer. full is the result of the view-profile policy.
func Project(e Employee, full bool) ProfileView {
	public := PublicProfile{
		ID:                e.ID,
		FirstName:         e.FirstName,
		LastName:          e.LastName,
		FullName:          e.FullName(),
		Department:        orNotAssigned(e.Department),
		Team:              orNotAssigned(e.Team),
		Position:          orNotAssigned(e.Position),
		HireDate:          e.HireDate,
		Bio:               e.Bio,
		Description:       e.Description,
		ProfilePictureURL: e.ProfilePictureURL,
		Role:              e.Role.String(),
		IsLimitedView:     !full,
	}
	if !full {
		return &public
	}

	var dob *string
	if e.DateOfBirth != nil {
		s := e.DateOfBirth.Format("2006-01-02")
		dob = &s
	}
	return &FullProfile{
		PublicProfile:    public,
		Email:            e.Email,
		PhoneNumber:      e.PhoneNumber,
		DateOfBirth:      dob,
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
		EmergencyPhone:   e.EmergencyPhone,
	}
}
