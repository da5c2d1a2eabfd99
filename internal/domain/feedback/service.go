package feedback

import "context"

type FeedbackService interface {
	GetReceived(ctx context.Context, employeeID, requestingID int64) ([]FeedbackListItem, error)
	GetGiven(ctx context.Context, employeeID, requestingID int64) ([]FeedbackListItem, error)
	GetByID(ctx context.Context, id, requestingID int64) (FeedbackDetail, error)
	Create(ctx context.Context, fromID int64, req CreateFeedbackRequest) (FeedbackDetail, error)
	CanView(ctx context.Context, employeeID, requestingID int64) (bool, error)
	CanGive(ctx context.Context, employeeID, requestingID int64) (bool, error)
}
