package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
	}
}

func (s *EmployeeServiceImpl) requester(ctx context.Context, id int64) (user.Actor, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return user.Actor{}, fmt.Errorf("%w: unknown employee %d", user.ErrUnauthorized, id)
		}
		return user.Actor{}, fmt.Errorf("failed to get requesting employee: %w", err)
	}
	return e.Actor(), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeListItem, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	items := make([]employee.EmployeeListItem, 0, len(employees))
	for _, e := range employees {
		items = append(items, employee.NewEmployeeListItem(e))
	}
	return items, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id int64, requestingID int64) (employee.ProfileView, error) {
	requester, err := s.requester(ctx, requestingID)
	if err != nil {
		return nil, err
	}

	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return employee.Project(e, user.CanViewProfile(requester.ID, requester.Role, e.ID)), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest, requestingID int64) (employee.ProfileView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	requester, err := s.requester(ctx, requestingID)
	if err != nil {
		return nil, err
	}
	if err := user.RequireEditProfile(requester.ID, requester.Role, id); err != nil {
		return nil, err
	}

	current, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.employeeRepo.Update(ctx, req.Apply(current))
	if err != nil {
		return nil, err
	}

	slog.Info("employee profile updated", "employee_id", updated.ID, "updated_by", requester.ID)
	return employee.Project(updated, user.CanViewProfile(requester.ID, requester.Role, updated.ID)), nil
}
