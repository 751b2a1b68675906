package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/invoice"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type invoiceRepository struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `
	i.id, i.invoice_number, i.created_by, i.client_name, i.client_address,
	i.issue_date, i.due_date, i.line_items, i.total_amount,
	i.status, i.sent_at, i.paid_at, i.created_at, i.updated_at,
	u.full_name AS creator_name
`

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.CreatedBy, &inv.ClientName, &inv.ClientAddress,
		&inv.IssueDate, &inv.DueDate, &inv.LineItems, &inv.TotalAmount,
		&inv.Status, &inv.SentAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
		&inv.CreatorName,
	)
	return inv, err
}

// Create implements invoice.InvoiceRepository.
func (r *invoiceRepository) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoices (
			invoice_number, created_by, client_name, client_address,
			issue_date, due_date, line_items, total_amount, status
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		inv.InvoiceNumber,
		inv.CreatedBy,
		inv.ClientName,
		inv.ClientAddress,
		inv.IssueDate,
		inv.DueDate,
		inv.LineItems,
		inv.TotalAmount,
		inv.Status,
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)

	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	return inv, nil
}

// GetByID implements invoice.InvoiceRepository.
func (r *invoiceRepository) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		LEFT JOIN users u ON u.id = i.created_by
		WHERE i.id = $1
	`, invoiceColumns)

	inv, err := scanInvoice(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice by ID: %w", err)
	}

	return inv, nil
}

// Update implements invoice.InvoiceRepository.
func (r *invoiceRepository) Update(ctx context.Context, inv invoice.Invoice) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices
		SET client_name = $1, client_address = $2, issue_date = $3, due_date = $4,
		    line_items = $5, total_amount = $6, status = $7,
		    sent_at = $8, paid_at = $9, updated_at = $10
		WHERE id = $11
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		inv.ClientName, inv.ClientAddress, inv.IssueDate, inv.DueDate,
		inv.LineItems, inv.TotalAmount, inv.Status,
		inv.SentAt, inv.PaidAt, time.Now(), inv.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoice.ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to update invoice: %w", err)
	}

	return nil
}

// Delete implements invoice.InvoiceRepository.
func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}

	return nil
}

// List implements invoice.InvoiceRepository.
func (r *invoiceRepository) List(ctx context.Context, filter invoice.InvoiceFilter) ([]invoice.Invoice, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.ClientName != nil && *filter.ClientName != "" {
		baseWhere += fmt.Sprintf(" AND i.client_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.ClientName+"%")
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM invoices i WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		LEFT JOIN users u ON u.id = i.created_by
		WHERE %s
		ORDER BY i.issue_date DESC, i.invoice_number DESC
		LIMIT $%d OFFSET $%d
	`, invoiceColumns, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read invoice rows: %w", err)
	}

	return invoices, total, nil
}
