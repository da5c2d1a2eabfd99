package memory

import (
	"context"
	"errors"
	"sort"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/feedback"
)

var errSelfFeedback = errors.New("feedback sender and recipient must differ")

type feedbackRepositoryImpl struct {
	store *Store
}

func NewFeedbackRepository(store *Store) feedback.FeedbackRepository {
	return &feedbackRepositoryImpl{store: store}
}

func (r *feedbackRepositoryImpl) withNames(f feedback.Feedback) feedback.Feedback {
	f.FromEmployeeName = r.store.employeeName(f.FromEmployeeID)
	f.ToEmployeeName = r.store.employeeName(f.ToEmployeeID)
	return f
}

func (r *feedbackRepositoryImpl) Create(ctx context.Context, f feedback.Feedback) (feedback.Feedback, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if f.FromEmployeeID == f.ToEmployeeID {
		return feedback.Feedback{}, errSelfFeedback
	}

	r.store.nextFeedbackID++
	now := r.store.now()
	f.ID = r.store.nextFeedbackID
	f.CreatedAt = now
	f.UpdatedAt = now
	r.store.feedbacks[f.ID] = f
	return r.withNames(f), nil
}

func (r *feedbackRepositoryImpl) GetByID(ctx context.Context, id int64) (feedback.Feedback, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := r.store.feedbacks[id]
	if !ok {
		return feedback.Feedback{}, feedback.ErrFeedbackNotFound
	}
	return r.withNames(f), nil
}

func (r *feedbackRepositoryImpl) ListReceived(ctx context.Context, toEmployeeID int64) ([]feedback.Feedback, error) {
	return r.list(func(f feedback.Feedback) bool { return f.ToEmployeeID == toEmployeeID }), nil
}

func (r *feedbackRepositoryImpl) ListGiven(ctx context.Context, fromEmployeeID int64) ([]feedback.Feedback, error) {
	return r.list(func(f feedback.Feedback) bool { return f.FromEmployeeID == fromEmployeeID }), nil
}

func (r *feedbackRepositoryImpl) list(keep func(feedback.Feedback) bool) []feedback.Feedback {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]feedback.Feedback, 0)
	for _, f := range r.store.feedbacks {
		if keep(f) {
			out = append(out, r.withNames(f))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out
}
