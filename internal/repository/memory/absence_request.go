package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
)

type absenceRequestRepositoryImpl struct {
	store *Store
}

func NewAbsenceRequestRepository(store *Store) absence.AbsenceRequestRepository {
	return &absenceRequestRepositoryImpl{store: store}
}

// withNames fills the joined display fields. Callers hold store.mu.
func (r *absenceRequestRepositoryImpl) withNames(req absence.AbsenceRequest) absence.AbsenceRequest {
	if e, ok := r.store.employees[req.EmployeeID]; ok {
		req.EmployeeName = e.FullName()
		req.EmployeeEmail = e.Email
	}
	req.ApproverName = nil
	if req.ApprovedByID != nil {
		name := r.store.employeeName(*req.ApprovedByID)
		req.ApproverName = &name
	}
	return req
}

func (r *absenceRequestRepositoryImpl) hasActiveOverlap(employeeID int64, start, end time.Time) bool {
	for _, existing := range r.store.absences {
		if existing.EmployeeID == employeeID && existing.Status.IsActive() && existing.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func (r *absenceRequestRepositoryImpl) Create(ctx context.Context, request absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Mirrors the exclusion constraint of the postgres schema.
	if request.Status.IsActive() && r.hasActiveOverlap(request.EmployeeID, request.StartDate, request.EndDate) {
		return absence.AbsenceRequest{}, absence.ErrConflictingRequest
	}

	r.store.nextAbsenceID++
	now := r.store.now()
	request.ID = r.store.nextAbsenceID
	request.StartDate = absence.DateOf(request.StartDate)
	request.EndDate = absence.DateOf(request.EndDate)
	request.CreatedAt = now
	request.UpdatedAt = now
	r.store.absences[request.ID] = request
	return r.withNames(request), nil
}

func (r *absenceRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (absence.AbsenceRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	req, ok := r.store.absences[id]
	if !ok {
		return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
	}
	return r.withNames(req), nil
}

func (r *absenceRequestRepositoryImpl) filter(keep func(absence.AbsenceRequest) bool) []absence.AbsenceRequest {
	out := make([]absence.AbsenceRequest, 0)
	for _, req := range r.store.absences {
		if keep(req) {
			out = append(out, r.withNames(req))
		}
	}
	return out
}

func sortByCreatedDesc(requests []absence.AbsenceRequest) {
	sort.Slice(requests, func(i, j int) bool {
		a, b := requests[i], requests[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

func (r *absenceRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]absence.AbsenceRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := r.filter(func(req absence.AbsenceRequest) bool { return req.EmployeeID == employeeID })
	sortByCreatedDesc(out)
	return out, nil
}

func (r *absenceRequestRepositoryImpl) ListApproved(ctx context.Context) ([]absence.AbsenceRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := r.filter(func(req absence.AbsenceRequest) bool { return req.Status == absence.StatusApproved })
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.After(b.StartDate)
		}
		return a.ID > b.ID
	})
	return out, nil
}

func (r *absenceRequestRepositoryImpl) ListPending(ctx context.Context, excludeEmployeeID int64) ([]absence.AbsenceRequest, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := r.filter(func(req absence.AbsenceRequest) bool {
		return req.Status == absence.StatusPending && req.EmployeeID != excludeEmployeeID
	})
	sortByCreatedDesc(out)
	return out, nil
}

func (r *absenceRequestRepositoryImpl) HasActiveOverlap(ctx context.Context, employeeID int64, start, end time.Time) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.hasActiveOverlap(employeeID, start, end), nil
}

func (r *absenceRequestRepositoryImpl) TransitionFromPending(ctx context.Context, t absence.Transition) (absence.AbsenceRequest, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	req, ok := r.store.absences[t.ID]
	if !ok || req.Status != absence.StatusPending {
		return absence.AbsenceRequest{}, false, nil
	}
	if t.OwnerOnly && req.EmployeeID != t.ActorID {
		return absence.AbsenceRequest{}, false, nil
	}

	req.Status = t.To
	req.UpdatedAt = t.At
	if !t.OwnerOnly {
		approver := t.ActorID
		at := t.At
		req.ApprovedByID = &approver
		req.ApprovedAt = &at
		req.ApprovalNotes = t.Notes
	}
	r.store.absences[req.ID] = req
	return r.withNames(req), true, nil
}
