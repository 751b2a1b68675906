package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timesheetRepository struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.RecordRepository {
	return &timesheetRepository{db: db}
}

const recordColumns = `
	r.id, r.user_id, r.work_type, r.date, r.start_date, r.end_date,
	r.total_hours, r.note, r.created_at, r.updated_at,
	u.full_name AS user_name
`

func scanRecord(row pgx.Row) (timesheet.Record, error) {
	var rec timesheet.Record
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.WorkType, &rec.Date, &rec.StartDate, &rec.EndDate,
		&rec.TotalHours, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.UserName,
	)
	return rec, err
}

// Create implements timesheet.RecordRepository.
func (t *timesheetRepository) Create(ctx context.Context, record timesheet.Record) (timesheet.Record, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO time_records (
			user_id, work_type, date, start_date, end_date, total_hours, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.UserID,
		record.WorkType,
		record.Date,
		record.StartDate,
		record.EndDate,
		record.TotalHours,
		record.Note,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return timesheet.Record{}, fmt.Errorf("failed to create time record: %w", err)
	}

	return record, nil
}

// GetByID implements timesheet.RecordRepository.
func (t *timesheetRepository) GetByID(ctx context.Context, id string) (timesheet.Record, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + recordColumns + `
		FROM time_records r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.id = $1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Record{}, timesheet.ErrRecordNotFound
		}
		return timesheet.Record{}, fmt.Errorf("failed to get time record by ID: %w", err)
	}

	return rec, nil
}

// Update implements timesheet.RecordRepository.
func (t *timesheetRepository) Update(ctx context.Context, record timesheet.Record) error {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE time_records
		SET date = $1, start_date = $2, end_date = $3, total_hours = $4,
		    note = $5, updated_at = $6
		WHERE id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.Date, record.StartDate, record.EndDate, record.TotalHours,
		record.Note, time.Now(), record.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update time record: %w", err)
	}

	return nil
}

// Delete implements timesheet.RecordRepository.
func (t *timesheetRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, t.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM time_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete time record: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return timesheet.ErrRecordNotFound
	}

	return nil
}

// List implements timesheet.RecordRepository.
func (t *timesheetRepository) List(ctx context.Context, filter timesheet.RecordFilter) ([]timesheet.Record, int64, error) {
	q := GetQuerier(ctx, t.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND r.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	if filter.WorkType != nil && *filter.WorkType != "" {
		baseWhere += fmt.Sprintf(" AND r.work_type = $%d", argIdx)
		args = append(args, *filter.WorkType)
		argIdx++
	}

	// Effective date: single-date records filter on date, range records on
	// their overlap with the filter window.
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND (r.date >= $%d OR r.end_date >= $%d)", argIdx, argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND (r.date <= $%d OR r.start_date <= $%d)", argIdx, argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM time_records r WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time records: %w", err)
	}

	orderByField := "COALESCE(r.date, r.start_date)"
	switch filter.SortBy {
	case "work_type":
		orderByField = "r.work_type"
	case "total_hours":
		orderByField = "r.total_hours"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	selectQuery := fmt.Sprintf(`
		SELECT `+recordColumns+`
		FROM time_records r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query time records: %w", err)
	}
	defer rows.Close()

	var records []timesheet.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read time record rows: %w", err)
	}

	return records, total, nil
}

// ListTouchingRange implements timesheet.RecordRepository.
func (t *timesheetRepository) ListTouchingRange(ctx context.Context, userID string, start, end time.Time) ([]timesheet.Record, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + recordColumns + `
		FROM time_records r
		LEFT JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		  AND (
			(r.date IS NOT NULL AND r.date BETWEEN $2 AND $3)
			OR (r.start_date IS NOT NULL AND r.start_date <= $3 AND r.end_date >= $2)
		  )
		ORDER BY COALESCE(r.date, r.start_date)
	`

	rows, err := q.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query time records in range: %w", err)
	}
	defer rows.Close()

	var records []timesheet.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read time record rows: %w", err)
	}

	return records, nil
}
