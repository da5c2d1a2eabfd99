package fixtures

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newMemoryRepositories() Repositories {
	store := memory.NewStore()
	return Repositories{
		TxManager: memory.NewTxManager(store),
		Employees: memory.NewEmployeeRepository(store),
		Absences:  memory.NewAbsenceRequestRepository(store),
		Feedbacks: memory.NewFeedbackRepository(store),
	}
}

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	repos := newMemoryRepositories()

	seeded, err := SeedDemoData(ctx, repos)
	require.NoError(t, err)
	assert.True(t, seeded)

	employees, err := repos.Employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 3)

	john, err := repos.Employees.GetByEmail(ctx, "john.doe@company.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleManager, john.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(john.PasswordHash), []byte(DemoPassword)))

	jane, err := repos.Employees.GetByEmail(ctx, "jane.smith@company.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleEmployee, jane.Role)

	requests, err := repos.Absences.ListByEmployee(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	statuses := map[absence.Type]absence.Status{}
	for _, r := range requests {
		statuses[r.Type] = r.Status
	}
	assert.Equal(t, absence.StatusApproved, statuses[absence.TypeVacation])
	assert.Equal(t, absence.StatusPending, statuses[absence.TypeSickLeave])

	received, err := repos.Feedbacks.ListReceived(ctx, jane.ID)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "John Doe", received[0].FromEmployeeName)
	assert.Equal(t, 9, received[0].Rating)
}

func TestSeedDemoData_SkipsWhenNotEmpty(t *testing.T) {
	ctx := context.Background()
	repos := newMemoryRepositories()

	seeded, err := SeedDemoData(ctx, repos)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = SeedDemoData(ctx, repos)
	require.NoError(t, err)
	assert.False(t, seeded)

	count, err := repos.Employees.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}
