package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/tool"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type toolRepository struct {
	db *database.DB
}

func NewToolRepository(db *database.DB) tool.ToolRepository {
	return &toolRepository{db: db}
}

const toolColumns = `
	t.id, t.name, t.serial_number, t.description,
	t.status, t.assigned_to, t.assigned_at,
	t.created_at, t.updated_at,
	u.full_name AS assignee_name
`

func scanTool(row pgx.Row) (tool.Tool, error) {
	var t tool.Tool
	err := row.Scan(
		&t.ID, &t.Name, &t.SerialNumber, &t.Description,
		&t.Status, &t.AssignedTo, &t.AssignedAt,
		&t.CreatedAt, &t.UpdatedAt,
		&t.AssigneeName,
	)
	return t, err
}

// Create implements tool.ToolRepository.
func (r *toolRepository) Create(ctx context.Context, t tool.Tool) (tool.Tool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tools (
			name, serial_number, description, status
		) VALUES (
			$1, $2, $3, $4
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.Name,
		t.SerialNumber,
		t.Description,
		t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return tool.Tool{}, fmt.Errorf("failed to create tool: %w", err)
	}

	return t, nil
}

// GetByID implements tool.ToolRepository.
func (r *toolRepository) GetByID(ctx context.Context, id string) (tool.Tool, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM tools t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE t.id = $1
	`, toolColumns)

	t, err := scanTool(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return tool.Tool{}, tool.ErrToolNotFound
		}
		return tool.Tool{}, fmt.Errorf("failed to get tool by ID: %w", err)
	}

	return t, nil
}

// Update implements tool.ToolRepository.
func (r *toolRepository) Update(ctx context.Context, t tool.Tool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tools
		SET name = $1, serial_number = $2, description = $3,
		    status = $4, assigned_to = $5, assigned_at = $6, updated_at = $7
		WHERE id = $8
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		t.Name, t.SerialNumber, t.Description,
		t.Status, t.AssignedTo, t.AssignedAt, time.Now(), t.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return tool.ErrToolNotFound
		}
		return fmt.Errorf("failed to update tool: %w", err)
	}

	return nil
}

// Delete implements tool.ToolRepository.
func (r *toolRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM tools WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete tool: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return tool.ErrToolNotFound
	}

	return nil
}

// List implements tool.ToolRepository.
func (r *toolRepository) List(ctx context.Context, filter tool.ToolFilter) ([]tool.Tool, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND t.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.AssignedTo != nil && *filter.AssignedTo != "" {
		baseWhere += fmt.Sprintf(" AND t.assigned_to = $%d", argIdx)
		args = append(args, *filter.AssignedTo)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM tools t WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tools: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM tools t
		LEFT JOIN users u ON u.id = t.assigned_to
		WHERE %s
		ORDER BY t.name ASC
		LIMIT $%d OFFSET $%d
	`, toolColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	var tools []tool.Tool
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read tool rows: %w", err)
	}

	return tools, total, nil
}
