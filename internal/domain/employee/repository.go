package employee

import "context"

// EmployeeRepository returns ErrEmployeeNotFound for missing rows and
// ErrEmailExists when an email is already taken.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, e Employee) (Employee, error)

	// LockByID takes a row lock on the employee for the rest of the current
	// transaction, serializing writes that depend on that employee's data.
	LockByID(ctx context.Context, id int64) error
}
