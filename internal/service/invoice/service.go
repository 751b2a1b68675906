package invoice

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/invoice"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
)

type InvoiceServiceImpl struct {
	invoiceRepo invoice.InvoiceRepository
}

func NewInvoiceService(invoiceRepo invoice.InvoiceRepository) invoice.InvoiceService {
	return &InvoiceServiceImpl{invoiceRepo: invoiceRepo}
}

func callerFromContext(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id not found in claims")
	}

	role, _ := claims["role"].(string)
	return userID, user.Role(role), nil
}

// newInvoiceNumber builds a human-readable invoice number with a random
// suffix, e.g. INV-20260826-1A2B3C4D.
func newInvoiceNumber(issueDate time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%s-%s", issueDate.Format("20060102"), suffix)
}

func buildLineItems(items []invoice.LineItemRequest) invoice.LineItems {
	result := make(invoice.LineItems, 0, len(items))
	for _, item := range items {
		result = append(result, invoice.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Total:       item.Quantity * item.UnitPrice,
		})
	}
	return result
}

// Create implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Create(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if role != user.RoleAdmin {
		return invoice.InvoiceResponse{}, user.ErrAdminPrivilegeRequired
	}

	issueDate, _ := time.Parse("2006-01-02", req.IssueDate)
	dueDate, _ := time.Parse("2006-01-02", req.DueDate)

	lineItems := buildLineItems(req.LineItems)

	inv := invoice.Invoice{
		InvoiceNumber: newInvoiceNumber(issueDate),
		CreatedBy:     userID,
		ClientName:    req.ClientName,
		ClientAddress: req.ClientAddress,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		LineItems:     lineItems,
		TotalAmount:   lineItems.Sum(),
		Status:        invoice.StatusDraft,
	}

	created, err := s.invoiceRepo.Create(ctx, inv)
	if err != nil {
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	return toInvoiceResponse(created), nil
}

// Get implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Get(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	if _, _, err := callerFromContext(ctx); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	return toInvoiceResponse(inv), nil
}

// Update implements invoice.InvoiceService. Only draft invoices can change.
func (s *InvoiceServiceImpl) Update(ctx context.Context, req invoice.UpdateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	_, role, err := callerFromContext(ctx)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if role != user.RoleAdmin {
		return invoice.InvoiceResponse{}, user.ErrAdminPrivilegeRequired
	}

	inv, err := s.invoiceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if inv.Status != invoice.StatusDraft {
		return invoice.InvoiceResponse{}, invoice.ErrInvoiceNotDraft
	}

	if req.ClientName != nil {
		inv.ClientName = *req.ClientName
	}
	if req.ClientAddress != nil {
		inv.ClientAddress = req.ClientAddress
	}
	if req.IssueDate != nil {
		issueDate, _ := time.Parse("2006-01-02", *req.IssueDate)
		inv.IssueDate = issueDate
	}
	if req.DueDate != nil {
		dueDate, _ := time.Parse("2006-01-02", *req.DueDate)
		inv.DueDate = dueDate
	}
	if req.LineItems != nil {
		inv.LineItems = buildLineItems(*req.LineItems)
		inv.TotalAmount = inv.LineItems.Sum()
	}
	if inv.DueDate.Before(inv.IssueDate) {
		return invoice.InvoiceResponse{}, validator.ValidationErrors{{
			Field:   "due_date",
			Message: "due_date must not be before issue_date",
		}}
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to update invoice: %w", err)
	}

	updated, err := s.invoiceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	return toInvoiceResponse(updated), nil
}

// Delete implements invoice.InvoiceService. Only draft invoices can be removed.
func (s *InvoiceServiceImpl) Delete(ctx context.Context, id string) error {
	_, role, err := callerFromContext(ctx)
	if err != nil {
		return err
	}
	if role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != invoice.StatusDraft {
		return invoice.ErrInvoiceNotDraft
	}

	return s.invoiceRepo.Delete(ctx, id)
}

// List implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) List(ctx context.Context, filter invoice.InvoiceFilter) (invoice.ListInvoicesResponse, error) {
	if err := filter.Validate(); err != nil {
		return invoice.ListInvoicesResponse{}, err
	}

	_, role, err := callerFromContext(ctx)
	if err != nil {
		return invoice.ListInvoicesResponse{}, err
	}
	if role != user.RoleAdmin {
		return invoice.ListInvoicesResponse{}, user.ErrAdminPrivilegeRequired
	}

	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return invoice.ListInvoicesResponse{}, fmt.Errorf("failed to list invoices: %w", err)
	}

	responses := make([]invoice.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		responses = append(responses, toInvoiceResponse(inv))
	}

	return invoice.ListInvoicesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Invoices:   responses,
	}, nil
}

// MarkSent implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) MarkSent(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	return s.transition(ctx, id, func(inv *invoice.Invoice) error {
		switch inv.Status {
		case invoice.StatusPaid:
			return invoice.ErrInvoiceAlreadyPaid
		case invoice.StatusSent:
			return invoice.ErrInvoiceNotDraft
		}
		now := time.Now()
		inv.Status = invoice.StatusSent
		inv.SentAt = &now
		return nil
	})
}

// MarkPaid implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) MarkPaid(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	return s.transition(ctx, id, func(inv *invoice.Invoice) error {
		switch inv.Status {
		case invoice.StatusPaid:
			return invoice.ErrInvoiceAlreadyPaid
		case invoice.StatusDraft:
			return invoice.ErrInvoiceNotSent
		}
		now := time.Now()
		inv.Status = invoice.StatusPaid
		inv.PaidAt = &now
		return nil
	})
}

func (s *InvoiceServiceImpl) transition(ctx context.Context, id string, apply func(*invoice.Invoice) error) (invoice.InvoiceResponse, error) {
	_, role, err := callerFromContext(ctx)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if role != user.RoleAdmin {
		return invoice.InvoiceResponse{}, user.ErrAdminPrivilegeRequired
	}

	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if err := apply(&inv); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	if err := s.invoiceRepo.Update(ctx, inv); err != nil {
		return invoice.InvoiceResponse{}, fmt.Errorf("failed to update invoice status: %w", err)
	}

	return toInvoiceResponse(inv), nil
}

func toInvoiceResponse(inv invoice.Invoice) invoice.InvoiceResponse {
	items := make([]invoice.LineItemResponse, 0, len(inv.LineItems))
	for _, item := range inv.LineItems {
		items = append(items, invoice.LineItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		})
	}

	resp := invoice.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CreatedBy:     inv.CreatedBy,
		ClientName:    inv.ClientName,
		ClientAddress: inv.ClientAddress,
		IssueDate:     inv.IssueDate.Format("2006-01-02"),
		DueDate:       inv.DueDate.Format("2006-01-02"),
		LineItems:     items,
		TotalAmount:   inv.TotalAmount,
		Status:        string(inv.Status),
		CreatedAt:     inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     inv.UpdatedAt.Format(time.RFC3339),
	}
	if inv.CreatorName != nil {
		resp.CreatorName = *inv.CreatorName
	}
	if inv.SentAt != nil {
		s := inv.SentAt.Format(time.RFC3339)
		resp.SentAt = &s
	}
	if inv.PaidAt != nil {
		s := inv.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &s
	}
	return resp
}
