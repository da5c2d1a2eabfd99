package employee

import (
	"context"
)

// EmployeeService defines business logic for employee profiles
type EmployeeService interface {
	// List returns the directory, ordered by last then first name
	List(ctx context.Context) ([]EmployeeListItem, error)

	// Get returns the profile shaped for the requesting employee
	Get(ctx context.Context, id int64, requestingID int64) (ProfileView, error)

	// Update edits a profile (self or manager)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest, requestingID int64) (ProfileView, error)
}
