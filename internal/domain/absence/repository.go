package absence

import (
	"context"
	"time"
)

// Transition moves a request out of Pending. It only applies while the stored
// status is still Pending.
type Transition struct {
	ID      int64
	To      Status
	ActorID int64
	Notes   *string
	At      time.Time

	// OwnerOnly restricts the match to requests owned by ActorID.
	OwnerOnly bool
}

// AbsenceRequestRepository - interface for absence_requests table
type AbsenceRequestRepository interface {
	// Create maps a storage-level overlap violation to ErrConflictingRequest.
	Create(ctx context.Context, request AbsenceRequest) (AbsenceRequest, error)
	GetByID(ctx context.Context, id int64) (AbsenceRequest, error)

	// ListByEmployee orders by created_at descending.
	ListByEmployee(ctx context.Context, employeeID int64) ([]AbsenceRequest, error)
	// ListApproved orders by start_date descending.
	ListApproved(ctx context.Context) ([]AbsenceRequest, error)
	// ListPending orders by created_at descending and skips excludeEmployeeID's requests.
	ListPending(ctx context.Context, excludeEmployeeID int64) ([]AbsenceRequest, error)

	HasActiveOverlap(ctx context.Context, employeeID int64, start, end time.Time) (bool, error)

	// TransitionFromPending is a single conditional write. ok is false when no
	// pending request matched.
	TransitionFromPending(ctx context.Context, t Transition) (request AbsenceRequest, ok bool, err error)
}
