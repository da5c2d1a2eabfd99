package absence

import "context"

type AbsenceService interface {
	Create(ctx context.Context, employeeID int64, req CreateAbsenceRequest) (AbsenceResponse, error)
	Approve(ctx context.Context, requestID, approverID int64, notes *string) (AbsenceResponse, error)
	Decline(ctx context.Context, requestID, approverID int64, notes *string) (AbsenceResponse, error)
	// Cancel returns false when the employee owns no request with that id.
	Cancel(ctx context.Context, requestID, employeeID int64) (bool, error)

	GetByID(ctx context.Context, requestID, requestingID int64) (AbsenceResponse, error)
	ListMine(ctx context.Context, employeeID int64) ([]AbsenceResponse, error)
	ListForEmployee(ctx context.Context, employeeID, requestingID int64) ([]AbsenceResponse, error)
	ListApproved(ctx context.Context) ([]AbsenceResponse, error)
	ListPendingForManager(ctx context.Context, managerID int64) ([]AbsenceResponse, error)
}
