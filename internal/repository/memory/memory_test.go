package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seed(t *testing.T, store *Store, first, last string, role user.Role) employee.Employee {
	t.Helper()
	e, err := NewEmployeeRepository(store).Create(context.Background(), employee.Employee{
		FirstName: first, LastName: last, Email: first + "@company.com", Role: role,
	})
	require.NoError(t, err)
	return e
}

func TestEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewEmployeeRepository(store)

	jane := seed(t, store, "Jane", "Smith", user.RoleEmployee)
	seed(t, store, "John", "Doe", user.RoleManager)

	_, err := repo.Create(ctx, employee.Employee{FirstName: "X", LastName: "Y", Email: "JANE@company.com"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Doe", list[0].LastName)

	jane.Role = user.RoleAdmin
	updated, err := repo.Update(ctx, jane)
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, updated.Role)

	assert.ErrorIs(t, repo.LockByID(ctx, 42), employee.ErrEmployeeNotFound)
}

func TestAbsenceRequestRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewAbsenceRequestRepository(store)

	jane := seed(t, store, "Jane", "Smith", user.RoleEmployee)
	john := seed(t, store, "John", "Doe", user.RoleManager)

	first, err := repo.Create(ctx, absence.AbsenceRequest{
		EmployeeID: jane.ID, Type: absence.TypeVacation,
		StartDate: date(2025, 6, 10), EndDate: date(2025, 6, 12),
		Reason: "Family trip to the coast", Status: absence.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", first.EmployeeName)

	_, err = repo.Create(ctx, absence.AbsenceRequest{
		EmployeeID: jane.ID, Type: absence.TypeSickLeave,
		StartDate: date(2025, 6, 12), EndDate: date(2025, 6, 13),
		Reason: "Doctor appointment", Status: absence.StatusPending,
	})
	assert.ErrorIs(t, err, absence.ErrConflictingRequest)

	second, err := repo.Create(ctx, absence.AbsenceRequest{
		EmployeeID: jane.ID, Type: absence.TypeSickLeave,
		StartDate: date(2025, 6, 13), EndDate: date(2025, 6, 13),
		Reason: "Doctor appointment", Status: absence.StatusPending,
	})
	require.NoError(t, err)

	mine, err := repo.ListByEmployee(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)

	_, ok, err := repo.TransitionFromPending(ctx, absence.Transition{
		ID: first.ID, To: absence.StatusCancelled, ActorID: john.ID, At: time.Now(), OwnerOnly: true,
	})
	require.NoError(t, err)
	assert.False(t, ok)

	approved, ok, err := repo.TransitionFromPending(ctx, absence.Transition{
		ID: first.ID, To: absence.StatusApproved, ActorID: john.ID, At: time.Now(),
	})
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, approved.ApproverName)
	assert.Equal(t, "John Doe", *approved.ApproverName)

	pending, err := repo.ListPending(ctx, john.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.ID, pending[0].ID)

	pending, err = repo.ListPending(ctx, jane.ID)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestTxManager_SerializesAndNests(t *testing.T) {
	ctx := context.Background()
	tm := NewTxManager(NewStore())

	sentinel := errors.New("boom")
	err := tm.WithinTransaction(ctx, func(ctx context.Context) error {
		return tm.WithinTransaction(ctx, func(ctx context.Context) error {
			return sentinel
		})
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestFeedbackRepository(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewFeedbackRepository(store)

	jane := seed(t, store, "Jane", "Smith", user.RoleEmployee)
	mike := seed(t, store, "Mike", "Johnson", user.RoleManager)

	_, err := repo.Create(ctx, feedback.Feedback{FromEmployeeID: jane.ID, ToEmployeeID: jane.ID, Content: "me"})
	assert.Error(t, err)

	created, err := repo.Create(ctx, feedback.Feedback{
		FromEmployeeID: mike.ID, ToEmployeeID: jane.ID, Content: "Great release", Type: feedback.TypeGeneral, Rating: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mike Johnson", created.FromEmployeeName)
	assert.Equal(t, "Jane Smith", created.ToEmployeeName)

	received, err := repo.ListReceived(ctx, jane.ID)
	require.NoError(t, err)
	assert.Len(t, received, 1)

	given, err := repo.ListGiven(ctx, jane.ID)
	require.NoError(t, err)
	assert.Empty(t, given)
}
