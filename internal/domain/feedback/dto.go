package feedback

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

type CreateFeedbackRequest struct {
	ToEmployeeID    int64   `json:"to_employee_id" validate:"required,min=1"`
	Content         string  `json:"content" validate:"required,max=1000"`
	PolishedContent *string `json:"polished_content,omitempty" validate:"omitempty,max=1000"`
	Type            string  `json:"type,omitempty"`
	Rating          *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=10"`
	IsAnonymous     bool    `json:"is_anonymous"`
}

func (r *CreateFeedbackRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	if r.Type != "" {
		if _, err := ParseType(r.Type); err != nil {
			errs.Add("type", "type must be one of: "+strings.Join(Types(), ", "))
		}
	}
	return errs.OrNil()
}

// ToEntity fills defaults: type general, rating 5.
func (r CreateFeedbackRequest) ToEntity(fromID int64) Feedback {
	t := TypeGeneral
	if parsed, err := ParseType(r.Type); err == nil {
		t = parsed
	}
	rating := DefaultRating
	if r.Rating != nil {
		rating = *r.Rating
	}
	return Feedback{
		FromEmployeeID:  fromID,
		ToEmployeeID:    r.ToEmployeeID,
		Content:         r.Content,
		PolishedContent: r.PolishedContent,
		Type:            t,
		Rating:          rating,
		IsAnonymous:     r.IsAnonymous,
		IsPolished:      r.PolishedContent != nil,
	}
}

// FeedbackListItem is one row of a received or given listing. CounterpartName is
// the (possibly anonymized) sender for received feedback and the recipient for
// given feedback.
type FeedbackListItem struct {
	ID              int64     `json:"id"`
	CounterpartName string    `json:"counterpart_name"`
	Content         string    `json:"content"`
	PolishedContent *string   `json:"polished_content,omitempty"`
	Type            Type      `json:"type"`
	Rating          int       `json:"rating"`
	IsAnonymous     bool      `json:"is_anonymous"`
	IsPolished      bool      `json:"is_polished"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewReceivedItem(f Feedback) FeedbackListItem {
	item := listItem(f)
	item.CounterpartName = f.DisplaySenderName()
	return item
}

func NewGivenItem(f Feedback) FeedbackListItem {
	item := listItem(f)
	item.CounterpartName = f.ToEmployeeName
	return item
}

func listItem(f Feedback) FeedbackListItem {
	return FeedbackListItem{
		ID:              f.ID,
		Content:         f.Content,
		PolishedContent: f.PolishedContent,
		Type:            f.Type,
		Rating:          f.Rating,
		IsAnonymous:     f.IsAnonymous,
		IsPolished:      f.IsPolished,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}

type FeedbackDetail struct {
	ID               int64     `json:"id"`
	FromEmployeeID   *int64    `json:"from_employee_id,omitempty"`
	FromEmployeeName string    `json:"from_employee_name"`
	ToEmployeeID     int64     `json:"to_employee_id"`
	ToEmployeeName   string    `json:"to_employee_name"`
	Content          string    `json:"content"`
	PolishedContent  *string   `json:"polished_content,omitempty"`
	Type             Type      `json:"type"`
	Rating           int       `json:"rating"`
	IsAnonymous      bool      `json:"is_anonymous"`
	IsPolished       bool      `json:"is_polished"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// NewFeedbackDetail hides the giver of anonymous feedback unless the viewer is the giver.
func NewFeedbackDetail(f Feedback, viewerID int64) FeedbackDetail {
	d := FeedbackDetail{
		ID:               f.ID,
		FromEmployeeName: f.DisplaySenderName(),
		ToEmployeeID:     f.ToEmployeeID,
		ToEmployeeName:   f.ToEmployeeName,
		Content:          f.Content,
		PolishedContent:  f.PolishedContent,
		Type:             f.Type,
		Rating:           f.Rating,
		IsAnonymous:      f.IsAnonymous,
		IsPolished:       f.IsPolished,
		CreatedAt:        f.CreatedAt,
		UpdatedAt:        f.UpdatedAt,
	}
	if !f.IsAnonymous || f.FromEmployeeID == viewerID {
		from := f.FromEmployeeID
		d.FromEmployeeID = &from
		if f.IsAnonymous {
			d.FromEmployeeName = f.FromEmployeeName
		}
	}
	return d
}

type PermissionResponse struct {
	Allowed bool `json:"allowed"`
}
