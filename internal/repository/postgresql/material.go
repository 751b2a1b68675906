package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/material"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type materialRepository struct {
	db *database.DB
}

func NewMaterialRepository(db *database.DB) material.RequestRepository {
	return &materialRepository{db: db}
}

const materialColumns = `
	mr.id, mr.user_id, mr.item_name, mr.quantity, mr.unit, mr.note, mr.needed_by,
	mr.status, mr.decided_by, mr.decided_at, mr.rejection_reason, mr.delivered_at,
	mr.created_at, mr.updated_at,
	u.full_name AS user_name
`

func scanMaterialRequest(row pgx.Row) (material.Request, error) {
	var req material.Request
	err := row.Scan(
		&req.ID, &req.UserID, &req.ItemName, &req.Quantity, &req.Unit, &req.Note, &req.NeededBy,
		&req.Status, &req.DecidedBy, &req.DecidedAt, &req.RejectionReason, &req.DeliveredAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.UserName,
	)
	return req, err
}

// Create implements material.RequestRepository.
func (m *materialRepository) Create(ctx context.Context, req material.Request) (material.Request, error) {
	q := GetQuerier(ctx, m.db)

	query := `
		INSERT INTO material_requests (
			user_id, item_name, quantity, unit, note, needed_by, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.UserID,
		req.ItemName,
		req.Quantity,
		req.Unit,
		req.Note,
		req.NeededBy,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return material.Request{}, fmt.Errorf("failed to create material request: %w", err)
	}

	return req, nil
}

// GetByID implements material.RequestRepository.
func (m *materialRepository) GetByID(ctx context.Context, id string) (material.Request, error) {
	q := GetQuerier(ctx, m.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM material_requests mr
		LEFT JOIN users u ON u.id = mr.user_id
		WHERE mr.id = $1
	`, materialColumns)

	req, err := scanMaterialRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.Request{}, material.ErrRequestNotFound
		}
		return material.Request{}, fmt.Errorf("failed to get material request by ID: %w", err)
	}

	return req, nil
}

// UpdateStatus implements material.RequestRepository.
func (m *materialRepository) UpdateStatus(ctx context.Context, req material.Request) error {
	q := GetQuerier(ctx, m.db)

	query := `
		UPDATE material_requests
		SET status = $1, decided_by = $2, decided_at = $3,
		    rejection_reason = $4, delivered_at = $5, updated_at = $6
		WHERE id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		req.Status, req.DecidedBy, req.DecidedAt,
		req.RejectionReason, req.DeliveredAt, time.Now(), req.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return material.ErrRequestNotFound
		}
		return fmt.Errorf("failed to update material request: %w", err)
	}

	return nil
}

// List implements material.RequestRepository.
func (m *materialRepository) List(ctx context.Context, filter material.RequestFilter) ([]material.Request, int64, error) {
	q := GetQuerier(ctx, m.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND mr.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND mr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM material_requests mr WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count material requests: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM material_requests mr
		LEFT JOIN users u ON u.id = mr.user_id
		WHERE %s
		ORDER BY mr.created_at DESC
		LIMIT $%d OFFSET $%d
	`, materialColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query material requests: %w", err)
	}
	defer rows.Close()

	var requests []material.Request
	for rows.Next() {
		req, err := scanMaterialRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan material request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read material request rows: %w", err)
	}

	return requests, total, nil
}
