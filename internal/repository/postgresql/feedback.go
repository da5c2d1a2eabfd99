package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/feedback"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const feedbackSelect = `
	SELECT f.id, f.from_employee_id, f.to_employee_id, f.content, f.polished_content, f.type, f.rating,
		   f.is_anonymous, f.is_polished, f.created_at, f.updated_at,
		   fe.first_name || ' ' || fe.last_name AS from_employee_name,
		   te.first_name || ' ' || te.last_name AS to_employee_name
	FROM feedbacks f
	JOIN employees fe ON f.from_employee_id = fe.id
	JOIN employees te ON f.to_employee_id = te.id`

type feedbackRepositoryImpl struct {
	db *database.DB
}

func NewFeedbackRepository(db *database.DB) feedback.FeedbackRepository {
	return &feedbackRepositoryImpl{db: db}
}

func scanFeedback(row pgx.Row) (feedback.Feedback, error) {
	var f feedback.Feedback
	err := row.Scan(
		&f.ID, &f.FromEmployeeID, &f.ToEmployeeID, &f.Content, &f.PolishedContent, &f.Type, &f.Rating,
		&f.IsAnonymous, &f.IsPolished, &f.CreatedAt, &f.UpdatedAt,
		&f.FromEmployeeName, &f.ToEmployeeName,
	)
	return f, err
}

// Create implements feedback.FeedbackRepository.
func (r *feedbackRepositoryImpl) Create(ctx context.Context, f feedback.Feedback) (feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO feedbacks (
			from_employee_id, to_employee_id, content, polished_content, type, rating, is_anonymous, is_polished
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		f.FromEmployeeID, f.ToEmployeeID, f.Content, f.PolishedContent, string(f.Type), f.Rating, f.IsAnonymous, f.IsPolished,
	).Scan(&id)
	if err != nil {
		return feedback.Feedback{}, fmt.Errorf("failed to create feedback: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements feedback.FeedbackRepository.
func (r *feedbackRepositoryImpl) GetByID(ctx context.Context, id int64) (feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	f, err := scanFeedback(q.QueryRow(ctx, feedbackSelect+` WHERE f.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return feedback.Feedback{}, feedback.ErrFeedbackNotFound
		}
		return feedback.Feedback{}, fmt.Errorf("failed to get feedback %d: %w", id, err)
	}
	return f, nil
}

// ListReceived implements feedback.FeedbackRepository.
func (r *feedbackRepositoryImpl) ListReceived(ctx context.Context, toEmployeeID int64) ([]feedback.Feedback, error) {
	return r.list(ctx, feedbackSelect+` WHERE f.to_employee_id = $1 ORDER BY f.created_at DESC, f.id DESC`, toEmployeeID)
}

// ListGiven implements feedback.FeedbackRepository.
func (r *feedbackRepositoryImpl) ListGiven(ctx context.Context, fromEmployeeID int64) ([]feedback.Feedback, error) {
	return r.list(ctx, feedbackSelect+` WHERE f.from_employee_id = $1 ORDER BY f.created_at DESC, f.id DESC`, fromEmployeeID)
}

func (r *feedbackRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]feedback.Feedback, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]feedback.Feedback, 0)
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
