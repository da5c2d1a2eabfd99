package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/absence"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const absenceSelect = `
	SELECT ar.id, ar.employee_id, ar.type, ar.start_date, ar.end_date, ar.reason, ar.status,
		   ar.approved_by_id, ar.approved_at, ar.approval_notes, ar.created_at, ar.updated_at,
		   e.first_name || ' ' || e.last_name AS employee_name, e.email AS employee_email,
		   CASE WHEN a.id IS NULL THEN NULL ELSE a.first_name || ' ' || a.last_name END AS approver_name
	FROM absence_requests ar
	JOIN employees e ON ar.employee_id = e.id
	LEFT JOIN employees a ON ar.approved_by_id = a.id`

type absenceRequestRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRequestRepository(db *database.DB) absence.AbsenceRequestRepository {
	return &absenceRequestRepositoryImpl{db: db}
}

func scanAbsenceRequest(row pgx.Row) (absence.AbsenceRequest, error) {
	var req absence.AbsenceRequest
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate, &req.Reason, &req.Status,
		&req.ApprovedByID, &req.ApprovedAt, &req.ApprovalNotes, &req.CreatedAt, &req.UpdatedAt,
		&req.EmployeeName, &req.EmployeeEmail, &req.ApproverName,
	)
	return req, err
}

func (r *absenceRequestRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]absence.AbsenceRequest, 0)
	for rows.Next() {
		req, err := scanAbsenceRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// Create implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) Create(ctx context.Context, request absence.AbsenceRequest) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_requests (employee_id, type, start_date, end_date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := q.QueryRow(ctx, query,
		request.EmployeeID, string(request.Type), request.StartDate, request.EndDate, request.Reason, string(request.Status),
	).Scan(&id)
	if err != nil {
		if isPgError(err, pgExclusionViolation) {
			return absence.AbsenceRequest{}, absence.ErrConflictingRequest
		}
		return absence.AbsenceRequest{}, fmt.Errorf("failed to create absence request: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) GetByID(ctx context.Context, id int64) (absence.AbsenceRequest, error) {
	q := GetQuerier(ctx, r.db)

	req, err := scanAbsenceRequest(q.QueryRow(ctx, absenceSelect+` WHERE ar.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.AbsenceRequest{}, absence.ErrAbsenceRequestNotFound
		}
		return absence.AbsenceRequest{}, fmt.Errorf("failed to get absence request %d: %w", id, err)
	}
	return req, nil
}

// ListByEmployee implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]absence.AbsenceRequest, error) {
	return r.list(ctx, absenceSelect+`
		WHERE ar.employee_id = $1
		ORDER BY ar.created_at DESC, ar.id DESC`, employeeID)
}

// ListApproved implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) ListApproved(ctx context.Context) ([]absence.AbsenceRequest, error) {
	return r.list(ctx, absenceSelect+`
		WHERE ar.status = $1
		ORDER BY ar.start_date DESC, ar.id DESC`, string(absence.StatusApproved))
}

// ListPending implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) ListPending(ctx context.Context, excludeEmployeeID int64) ([]absence.AbsenceRequest, error) {
	return r.list(ctx, absenceSelect+`
		WHERE ar.status = $1 AND ar.employee_id <> $2
		ORDER BY ar.created_at DESC, ar.id DESC`, string(absence.StatusPending), excludeEmployeeID)
}

// HasActiveOverlap implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) HasActiveOverlap(ctx context.Context, employeeID int64, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM absence_requests
			WHERE employee_id = $1
			  AND status IN ($2, $3)
			  AND start_date <= $5
			  AND $4 <= end_date
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query,
		employeeID, string(absence.StatusPending), string(absence.StatusApproved), start, end,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping absence requests: %w", err)
	}
	return exists, nil
}

// TransitionFromPending implements absence.AbsenceRequestRepository.
func (r *absenceRequestRepositoryImpl) TransitionFromPending(ctx context.Context, t absence.Transition) (absence.AbsenceRequest, bool, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	var args []interface{}
	if t.OwnerOnly {
		query = `
			UPDATE absence_requests
			SET status = $2, updated_at = $3
			WHERE id = $1 AND status = 'pending' AND employee_id = $4
			RETURNING id
		`
		args = []interface{}{t.ID, string(t.To), t.At, t.ActorID}
	} else {
		query = `
			UPDATE absence_requests
			SET status = $2, approved_by_id = $4, approved_at = $3, approval_notes = $5, updated_at = $3
			WHERE id = $1 AND status = 'pending'
			RETURNING id
		`
		args = []interface{}{t.ID, string(t.To), t.At, t.ActorID, t.Notes}
	}

	var id int64
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return absence.AbsenceRequest{}, false, nil
		}
		return absence.AbsenceRequest{}, false, fmt.Errorf("failed to update absence request %d: %w", t.ID, err)
	}

	updated, err := r.GetByID(ctx, id)
	if err != nil {
		return absence.AbsenceRequest{}, false, err
	}
	return updated, true, nil
}
