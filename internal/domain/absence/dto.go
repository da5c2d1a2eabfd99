package absence

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

type CreateAbsenceRequest struct {
	Type      string `json:"type" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" validate:"required,min=10,max=500"`
}

func (r *CreateAbsenceRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	t, err := ParseType(r.Type)
	if err != nil {
		errs.Add("type", "type must be one of: "+strings.Join(ActiveTypes(), ", "))
	} else if t.IsRetired() {
		errs.Add("type", "type "+string(t)+" is no longer accepted for new requests")
	}
	return errs.OrNil()
}

// Parsed returns the type and dates of a request that passed Validate.
func (r CreateAbsenceRequest) Parsed() (Type, time.Time, time.Time, error) {
	t, err := ParseType(r.Type)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	start, ok := validator.IsValidDate(r.StartDate)
	if !ok {
		return "", time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "start_date", Message: "start_date must be a date in 2006-01-02 format"}}
	}
	end, ok := validator.IsValidDate(r.EndDate)
	if !ok {
		return "", time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "end_date", Message: "end_date must be a date in 2006-01-02 format"}}
	}
	return t, start, end, nil
}

// DecisionRequest carries the optional notes of an approve or decline.
type DecisionRequest struct {
	Notes *string `json:"approval_notes,omitempty" validate:"omitempty,max=500"`
}

func (r *DecisionRequest) Validate() error {
	if r.Notes != nil {
		trimmed := strings.TrimSpace(*r.Notes)
		if trimmed == "" {
			r.Notes = nil
		} else {
			r.Notes = &trimmed
		}
	}
	return validator.Struct(r)
}

type AbsenceResponse struct {
	ID             int64      `json:"id"`
	EmployeeID     int64      `json:"employee_id"`
	EmployeeName   string     `json:"employee_name"`
	EmployeeEmail  string     `json:"employee_email,omitempty"`
	Type           Type       `json:"type"`
	TypeLabel      string     `json:"type_label"`
	StartDate      string     `json:"start_date"`
	EndDate        string     `json:"end_date"`
	DurationInDays int        `json:"duration_in_days"`
	Reason         *string    `json:"reason,omitempty"`
	Status         Status     `json:"status"`
	ApprovedByID   *int64     `json:"approved_by_id,omitempty"`
	ApprovedByName *string    `json:"approved_by_name,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	ApprovalNotes  *string    `json:"approval_notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewAbsenceResponse maps r for output. With redactReason the reason is left out.
func NewAbsenceResponse(r AbsenceRequest, redactReason bool) AbsenceResponse {
	resp := AbsenceResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		EmployeeEmail:  r.EmployeeEmail,
		Type:           r.Type,
		TypeLabel:      r.Type.Label(),
		StartDate:      r.StartDate.Format(validator.DateLayout),
		EndDate:        r.EndDate.Format(validator.DateLayout),
		DurationInDays: r.DurationInDays(),
		Status:         r.Status,
		ApprovedByID:   r.ApprovedByID,
		ApprovedByName: r.ApproverName,
		ApprovedAt:     r.ApprovedAt,
		ApprovalNotes:  r.ApprovalNotes,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
	if !redactReason {
		reason := r.Reason
		resp.Reason = &reason
	}
	return resp
}

func NewAbsenceResponses(requests []AbsenceRequest, redactReason bool) []AbsenceResponse {
	out := make([]AbsenceResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, NewAbsenceResponse(r, redactReason))
	}
	return out
}
