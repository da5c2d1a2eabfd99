package absence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/metrics"
)

type AbsenceServiceImpl struct {
	txManager database.TxManager
	absence.AbsenceRequestRepository
	employee.EmployeeRepository
	now func() time.Time
}

type Option func(*AbsenceServiceImpl)

// WithClock replaces time.Now, which decides "today" for new requests.
func WithClock(now func() time.Time) Option {
	return func(s *AbsenceServiceImpl) {
		s.now = now
	}
}

func NewAbsenceService(txManager database.TxManager, absenceRepository absence.AbsenceRequestRepository, employeeRepository employee.EmployeeRepository, opts ...Option) absence.AbsenceService {
	s := &AbsenceServiceImpl{
		txManager:                txManager,
		AbsenceRequestRepository: absenceRepository,
		EmployeeRepository:       employeeRepository,
		now:                      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// actor loads the caller's current role. An id without an employee behind it
// is not authorized to do anything.
func (s *AbsenceServiceImpl) actor(ctx context.Context, id int64) (user.Actor, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return user.Actor{}, fmt.Errorf("%w: unknown employee %d", user.ErrUnauthorized, id)
		}
		return user.Actor{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return e.Actor(), nil
}

// Create implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Create(ctx context.Context, employeeID int64, req absence.CreateAbsenceRequest) (absence.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return absence.AbsenceResponse{}, err
	}
	if _, err := s.actor(ctx, employeeID); err != nil {
		return absence.AbsenceResponse{}, err
	}

	absenceType, start, end, err := req.Parsed()
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	today := absence.DateOf(s.now().UTC())
	if start.Before(today) {
		return absence.AbsenceResponse{}, fmt.Errorf("%w: start date cannot be in the past", absence.ErrInvalidRange)
	}
	if end.Before(start) {
		return absence.AbsenceResponse{}, fmt.Errorf("%w: end date must be on or after start date", absence.ErrInvalidRange)
	}

	var created absence.AbsenceRequest
	err = s.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.EmployeeRepository.LockByID(ctx, employeeID); err != nil {
			return err
		}

		overlap, err := s.AbsenceRequestRepository.HasActiveOverlap(ctx, employeeID, start, end)
		if err != nil {
			return err
		}
		if overlap {
			return fmt.Errorf("%w: %s to %s", absence.ErrConflictingRequest, req.StartDate, req.EndDate)
		}

		created, err = s.AbsenceRequestRepository.Create(ctx, absence.AbsenceRequest{
			EmployeeID: employeeID,
			Type:       absenceType,
			StartDate:  start,
			EndDate:    end,
			Reason:     req.Reason,
			Status:     absence.StatusPending,
		})
		return err
	})
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	metrics.ObserveAbsenceTransition(string(absence.StatusPending))
	return absence.NewAbsenceResponse(created, false), nil
}

// Approve implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Approve(ctx context.Context, requestID, approverID int64, notes *string) (absence.AbsenceResponse, error) {
	return s.decide(ctx, requestID, approverID, notes, absence.StatusApproved)
}

// Decline implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Decline(ctx context.Context, requestID, approverID int64, notes *string) (absence.AbsenceResponse, error) {
	return s.decide(ctx, requestID, approverID, notes, absence.StatusRejected)
}

func (s *AbsenceServiceImpl) decide(ctx context.Context, requestID, approverID int64, notes *string, to absence.Status) (absence.AbsenceResponse, error) {
	approver, err := s.actor(ctx, approverID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if err := user.RequireApproveAbsenceRequests(approver.Role); err != nil {
		return absence.AbsenceResponse{}, err
	}

	updated, ok, err := s.AbsenceRequestRepository.TransitionFromPending(ctx, absence.Transition{
		ID:      requestID,
		To:      to,
		ActorID: approverID,
		Notes:   notes,
		At:      s.now(),
	})
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if !ok {
		current, err := s.AbsenceRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return absence.AbsenceResponse{}, err
		}
		return absence.AbsenceResponse{}, fmt.Errorf("%w: request %d is %s", absence.ErrInvalidState, requestID, current.Status)
	}

	metrics.ObserveAbsenceTransition(string(to))
	return absence.NewAbsenceResponse(updated, false), nil
}

// Cancel implements absence.AbsenceService.
func (s *AbsenceServiceImpl) Cancel(ctx context.Context, requestID, employeeID int64) (bool, error) {
	_, ok, err := s.AbsenceRequestRepository.TransitionFromPending(ctx, absence.Transition{
		ID:        requestID,
		To:        absence.StatusCancelled,
		ActorID:   employeeID,
		At:        s.now(),
		OwnerOnly: true,
	})
	if err != nil {
		return false, err
	}
	if ok {
		metrics.ObserveAbsenceTransition(string(absence.StatusCancelled))
		return true, nil
	}

	current, err := s.AbsenceRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, absence.ErrAbsenceRequestNotFound) {
			return false, nil
		}
		return false, err
	}
	if current.EmployeeID != employeeID {
		return false, nil
	}
	return false, fmt.Errorf("%w: request %d is %s", absence.ErrInvalidState, requestID, current.Status)
}

// GetByID implements absence.AbsenceService.
func (s *AbsenceServiceImpl) GetByID(ctx context.Context, requestID, requestingID int64) (absence.AbsenceResponse, error) {
	requester, err := s.actor(ctx, requestingID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}

	request, err := s.AbsenceRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return absence.AbsenceResponse{}, err
	}
	if err := user.RequireViewAbsenceRequests(requester.ID, requester.Role, request.EmployeeID); err != nil {
		return absence.AbsenceResponse{}, err
	}
	return absence.NewAbsenceResponse(request, false), nil
}

// ListMine implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ListMine(ctx context.Context, employeeID int64) ([]absence.AbsenceResponse, error) {
	requests, err := s.AbsenceRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}
	return absence.NewAbsenceResponses(requests, false), nil
}

// ListForEmployee implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ListForEmployee(ctx context.Context, employeeID, requestingID int64) ([]absence.AbsenceResponse, error) {
	requester, err := s.actor(ctx, requestingID)
	if err != nil {
		return nil, err
	}
	if err := user.RequireApproveAbsenceRequests(requester.Role); err != nil {
		return nil, err
	}

	requests, err := s.AbsenceRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list absence requests: %w", err)
	}
	return absence.NewAbsenceResponses(requests, false), nil
}

// ListApproved implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ListApproved(ctx context.Context) ([]absence.AbsenceResponse, error) {
	requests, err := s.AbsenceRequestRepository.ListApproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved absence requests: %w", err)
	}
	return absence.NewAbsenceResponses(requests, true), nil
}

// ListPendingForManager implements absence.AbsenceService.
func (s *AbsenceServiceImpl) ListPendingForManager(ctx context.Context, managerID int64) ([]absence.AbsenceResponse, error) {
	manager, err := s.actor(ctx, managerID)
	if err != nil {
		return nil, err
	}
	if err := user.RequireApproveAbsenceRequests(manager.Role); err != nil {
		return nil, err
	}

	requests, err := s.AbsenceRequestRepository.ListPending(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending absence requests: %w", err)
	}
	return absence.NewAbsenceResponses(requests, false), nil
}
