package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/vacation"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type vacationRepository struct {
	db *database.DB
}

func NewVacationRepository(db *database.DB) vacation.RequestRepository {
	return &vacationRepository{db: db}
}

// Create implements vacation.RequestRepository.
func (v *vacationRepository) Create(ctx context.Context, req vacation.Request) (vacation.Request, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		INSERT INTO vacation_requests (
			user_id, start_date, end_date, working_days, reason, status
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID,
		req.StartDate,
		req.EndDate,
		req.WorkingDays,
		req.Reason,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return vacation.Request{}, fmt.Errorf("failed to create vacation request: %w", err)
	}

	return req, nil
}

// GetByID implements vacation.RequestRepository.
func (v *vacationRepository) GetByID(ctx context.Context, id string) (vacation.Request, error) {
	q := GetQuerier(ctx, v.db)

	query := `
		SELECT
			vr.id, vr.user_id, vr.start_date, vr.end_date, vr.working_days,
			vr.reason, vr.status, vr.approved_by, vr.approved_at,
			vr.rejection_reason, vr.cancelled_at, vr.created_at, vr.updated_at,
			u.full_name AS user_name
		FROM vacation_requests vr
		LEFT JOIN users u ON u.id = vr.user_id
		WHERE vr.id = $1
	`

	var req vacation.Request
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.StartDate, &req.EndDate, &req.WorkingDays,
		&req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt,
		&req.RejectionReason, &req.CancelledAt, &req.CreatedAt, &req.UpdatedAt,
		&req.UserName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return vacation.Request{}, vacation.ErrRequestNotFound
		}
		return vacation.Request{}, fmt.Errorf("failed to get vacation request by ID: %w", err)
	}

	return req, nil
}

// UpdateStatus implements vacation.RequestRepository.
func (v *vacationRepository) UpdateStatus(ctx context.Context, req vacation.Request) error {
	q := GetQuerier(ctx, v.db)

	query := `
		UPDATE vacation_requests
		SET status = $1, approved_by = $2, approved_at = $3,
		    rejection_reason = $4, cancelled_at = $5, updated_at = $6
		WHERE id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.Status, req.ApprovedBy, req.ApprovedAt,
		req.RejectionReason, req.CancelledAt, time.Now(), req.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return vacation.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update vacation request: %w", err)
	}

	return nil
}

// List implements vacation.RequestRepository.
func (v *vacationRepository) List(ctx context.Context, filter vacation.RequestFilter) ([]vacation.Request, int64, error) {
	q := GetQuerier(ctx, v.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND vr.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND vr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM vacation_requests vr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vacation requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			vr.id, vr.user_id, vr.start_date, vr.end_date, vr.working_days,
			vr.reason, vr.status, vr.approved_by, vr.approved_at,
			vr.rejection_reason, vr.cancelled_at, vr.created_at, vr.updated_at,
			u.full_name AS user_name
		FROM vacation_requests vr
		LEFT JOIN users u ON u.id = vr.user_id
		WHERE %s
		ORDER BY vr.start_date DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query vacation requests: %w", err)
	}
	defer rows.Close()

	var requests []vacation.Request
	for rows.Next() {
		var req vacation.Request
		err := rows.Scan(
			&req.ID, &req.UserID, &req.StartDate, &req.EndDate, &req.WorkingDays,
			&req.Reason, &req.Status, &req.ApprovedBy, &req.ApprovedAt,
			&req.RejectionReason, &req.CancelledAt, &req.CreatedAt, &req.UpdatedAt,
			&req.UserName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan vacation request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read vacation request rows: %w", err)
	}

	return requests, total, nil
}
