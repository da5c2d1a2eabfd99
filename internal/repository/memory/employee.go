package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
)

type employeeRepositoryImpl struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepositoryImpl{store: store}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	e, ok := r.store.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	if e, ok := r.findByEmail(email); ok {
		return e, nil
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *employeeRepositoryImpl) findByEmail(email string) (employee.Employee, bool) {
	for _, e := range r.store.employees {
		if strings.EqualFold(e.Email, email) {
			return e, true
		}
	}
	return employee.Employee{}, false
}

func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	employees := make([]employee.Employee, 0, len(r.store.employees))
	for _, e := range r.store.employees {
		employees = append(employees, e)
	}
	sort.Slice(employees, func(i, j int) bool {
		a, b := employees[i], employees[j]
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	return employees, nil
}

func (r *employeeRepositoryImpl) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.employees)), nil
}

func (r *employeeRepositoryImpl) Exists(ctx context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	_, ok := r.store.employees[id]
	return ok, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, taken := r.findByEmail(newEmployee.Email); taken {
		return employee.Employee{}, employee.ErrEmailExists
	}

	r.store.nextEmployeeID++
	now := r.store.now()
	newEmployee.ID = r.store.nextEmployeeID
	newEmployee.CreatedAt = now
	newEmployee.UpdatedAt = now
	r.store.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.employees[e.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if other, taken := r.findByEmail(e.Email); taken && other.ID != e.ID {
		return employee.Employee{}, employee.ErrEmailExists
	}

	// Identity, credentials, role and hire date are not updatable here.
	e.PasswordHash = current.PasswordHash
	e.Role = current.Role
	e.HireDate = current.HireDate
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = r.store.now()
	r.store.employees[e.ID] = e
	return e, nil
}

// LockByID only checks existence. The transaction lock already serializes writers.
func (r *employeeRepositoryImpl) LockByID(ctx context.Context, id int64) error {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	if _, ok := r.store.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
