package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/employee"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/metrics"
)

type FeedbackServiceImpl struct {
	feedback.FeedbackRepository
	employee.EmployeeRepository
}

func NewFeedbackService(feedbackRepository feedback.FeedbackRepository, employeeRepository employee.EmployeeRepository) feedback.FeedbackService {
	return &FeedbackServiceImpl{
		FeedbackRepository: feedbackRepository,
		EmployeeRepository: employeeRepository,
	}
}

func (s *FeedbackServiceImpl) actor(ctx context.Context, id int64) (user.Actor, error) {
	e, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return user.Actor{}, fmt.Errorf("%w: unknown employee %d", user.ErrUnauthorized, id)
		}
		return user.Actor{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}
	return e.Actor(), nil
}

// GetReceived implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) GetReceived(ctx context.Context, employeeID, requestingID int64) ([]feedback.FeedbackListItem, error) {
	requester, err := s.actor(ctx, requestingID)
	if err != nil {
		return nil, err
	}
	if err := user.RequireViewFeedback(requester.ID, requester.Role, employeeID); err != nil {
		return nil, err
	}

	received, err := s.FeedbackRepository.ListReceived(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received feedback: %w", err)
	}

	items := make([]feedback.FeedbackListItem, 0, len(received))
	for _, f := range received {
		items = append(items, feedback.NewReceivedItem(f))
	}
	return items, nil
}

// GetGiven implements feedback.FeedbackService. Only the giver may list what they wrote.
func (s *FeedbackServiceImpl) GetGiven(ctx context.Context, employeeID, requestingID int64) ([]feedback.FeedbackListItem, error) {
	if employeeID != requestingID {
		return nil, fmt.Errorf("%w: given feedback is visible to its author only", user.ErrUnauthorized)
	}

	given, err := s.FeedbackRepository.ListGiven(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list given feedback: %w", err)
	}

	items := make([]feedback.FeedbackListItem, 0, len(given))
	for _, f := range given {
		items = append(items, feedback.NewGivenItem(f))
	}
	return items, nil
}

// GetByID implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) GetByID(ctx context.Context, id, requestingID int64) (feedback.FeedbackDetail, error) {
	requester, err := s.actor(ctx, requestingID)
	if err != nil {
		return feedback.FeedbackDetail{}, err
	}

	f, err := s.FeedbackRepository.GetByID(ctx, id)
	if err != nil {
		return feedback.FeedbackDetail{}, err
	}

	if f.FromEmployeeID != requester.ID && !user.CanViewFeedback(requester.ID, requester.Role, f.ToEmployeeID) {
		return feedback.FeedbackDetail{}, fmt.Errorf("%w: cannot view feedback %d", user.ErrUnauthorized, id)
	}
	return feedback.NewFeedbackDetail(f, requester.ID), nil
}

// Create implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) Create(ctx context.Context, fromID int64, req feedback.CreateFeedbackRequest) (feedback.FeedbackDetail, error) {
	if err := req.Validate(); err != nil {
		return feedback.FeedbackDetail{}, err
	}

	fromExists, toExists, err := s.exist(ctx, fromID, req.ToEmployeeID)
	if err != nil {
		return feedback.FeedbackDetail{}, err
	}
	if fromID != req.ToEmployeeID && !toExists {
		return feedback.FeedbackDetail{}, feedback.ErrRecipientNotFound
	}
	if err := user.RequireGiveFeedback(fromID, req.ToEmployeeID, fromExists, toExists); err != nil {
		return feedback.FeedbackDetail{}, err
	}

	created, err := s.FeedbackRepository.Create(ctx, req.ToEntity(fromID))
	if err != nil {
		return feedback.FeedbackDetail{}, err
	}

	metrics.ObserveFeedbackCreated(created.IsAnonymous)
	return feedback.NewFeedbackDetail(created, fromID), nil
}

// CanView implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) CanView(ctx context.Context, employeeID, requestingID int64) (bool, error) {
	requester, err := s.actor(ctx, requestingID)
	if err != nil {
		return false, err
	}
	return user.CanViewFeedback(requester.ID, requester.Role, employeeID), nil
}

// CanGive implements feedback.FeedbackService.
func (s *FeedbackServiceImpl) CanGive(ctx context.Context, employeeID, requestingID int64) (bool, error) {
	fromExists, toExists, err := s.exist(ctx, requestingID, employeeID)
	if err != nil {
		return false, err
	}
	return user.CanGiveFeedback(requestingID, employeeID, fromExists, toExists), nil
}

func (s *FeedbackServiceImpl) exist(ctx context.Context, fromID, toID int64) (bool, bool, error) {
	fromExists, err := s.EmployeeRepository.Exists(ctx, fromID)
	if err != nil {
		return false, false, fmt.Errorf("failed to check employee %d: %w", fromID, err)
	}
	toExists, err := s.EmployeeRepository.Exists(ctx, toID)
	if err != nil {
		return false, false, fmt.Errorf("failed to check employee %d: %w", toID, err)
	}
	return fromExists, toExists, nil
}
