package fixtures

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the login password of every seeded employee.
const DemoPassword = "password123"

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Repositories is what the demo seed writes to.
type Repositories struct {
	TxManager database.TxManager
	Employees employee.EmployeeRepository
	Absences  absence.AbsenceRequestRepository
	Feedbacks feedback.FeedbackRepository
}

// demoEmployees are created in this order; the absence and feedback seeds
// refer to them by index.
func demoEmployees(passwordHash string) []employee.Employee {
	return []employee.Employee{
		{
			FirstName:    "John",
			LastName:     "Doe",
			Email:        "john.doe@company.com",
			PasswordHash: passwordHash,
			PhoneNumber:  strPtr("+1234567890"),
			Department:   strPtr("Engineering"),
			Position:     strPtr("Senior Developer"),
			HireDate:     date(2020, time.January, 15),
			Bio:          strPtr("Experienced software developer with expertise in backend services."),
			Role:         user.RoleManager,
		},
		{
			FirstName:    "Jane",
			LastName:     "Smith",
			Email:        "jane.smith@company.com",
			PasswordHash: passwordHash,
			PhoneNumber:  strPtr("+1234567891"),
			Department:   strPtr("Engineering"),
			Position:     strPtr("Developer"),
			HireDate:     date(2021, time.March, 10),
			Bio:          strPtr("Passionate about clean code and user experience."),
			Role:         user.RoleEmployee,
		},
		{
			FirstName:    "Mike",
			LastName:     "Johnson",
			Email:        "mike.johnson@company.com",
			PasswordHash: passwordHash,
			PhoneNumber:  strPtr("+1234567892"),
			Department:   strPtr("HR"),
			Position:     strPtr("HR Manager"),
			HireDate:     date(2019, time.June, 1),
			Bio:          strPtr("Dedicated to creating a positive work environment."),
			Role:         user.RoleManager,
		},
	}
}

// SeedDemoData fills an empty store with three employees, two absence requests
// and one feedback. It does nothing when any employee exists and reports
// whether it seeded.
func SeedDemoData(ctx context.Context, repos Repositories) (bool, error) {
	count, err := repos.Employees.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count employees: %w", err)
	}
	if count > 0 {
		slog.Info("Demo data skipped, employees already present", "count", count)
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash demo password: %w", err)
	}

	err = repos.TxManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var created []employee.Employee
		for _, e := range demoEmployees(string(hash)) {
			saved, err := repos.Employees.Create(txCtx, e)
			if err != nil {
				return fmt.Errorf("failed to create employee %s: %w", e.Email, err)
			}
			created = append(created, saved)
		}
		john, jane := created[0], created[1]

		vacation, err := repos.Absences.Create(txCtx, absence.AbsenceRequest{
			EmployeeID: jane.ID,
			Type:       absence.TypeVacation,
			StartDate:  date(2024, time.December, 20),
			EndDate:    date(2024, time.December, 22),
			Reason:     "Family vacation",
			Status:     absence.StatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create absence request: %w", err)
		}
		if _, _, err := repos.Absences.TransitionFromPending(txCtx, absence.Transition{
			ID:      vacation.ID,
			To:      absence.StatusApproved,
			ActorID: john.ID,
			At:      date(2024, time.December, 1),
		}); err != nil {
			return fmt.Errorf("failed to approve absence request: %w", err)
		}

		if _, err := repos.Absences.Create(txCtx, absence.AbsenceRequest{
			EmployeeID: jane.ID,
			Type:       absence.TypeSickLeave,
			StartDate:  date(2024, time.December, 25),
			EndDate:    date(2024, time.December, 25),
			Reason:     "Doctor appointment",
			Status:     absence.StatusPending,
		}); err != nil {
			return fmt.Errorf("failed to create absence request: %w", err)
		}

		if _, err := repos.Feedbacks.Create(txCtx, feedback.Feedback{
			FromEmployeeID: john.ID,
			ToEmployeeID:   jane.ID,
			Content:        "Jane is an excellent team player with great communication skills.",
			Type:           feedback.TypeCollaboration,
			Rating:         9,
		}); err != nil {
			return fmt.Errorf("failed to create feedback: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	slog.Info("Demo data seeded", "employees", 3)
	return true, nil
}
