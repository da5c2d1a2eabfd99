package feedback

import "context"

// FeedbackRepository returns feedback with both employee names filled in.
// Listings are ordered by created_at descending.
type FeedbackRepository interface {
	Create(ctx context.Context, f Feedback) (Feedback, error)
	GetByID(ctx context.Context, id int64) (Feedback, error)
	ListReceived(ctx context.Context, toEmployeeID int64) ([]Feedback, error)
	ListGiven(ctx context.Context, fromEmployeeID int64) ([]Feedback, error)
}
