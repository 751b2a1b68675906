package invoice

import (
	"fmt"
	"strings"

	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
)

type LineItemRequest struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	ClientName    string            `json:"client_name"`
	ClientAddress *string           `json:"client_address,omitempty"`
	IssueDate     string            `json:"issue_date"` // YYYY-MM-DD
	DueDate       string            `json:"due_date"`   // YYYY-MM-DD
	LineItems     []LineItemRequest `json:"line_items"`
}

func (r *CreateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ClientName) {
		errs = append(errs, validator.ValidationError{
			Field:   "client_name",
			Message: "client_name is required",
		})
	}

	issue, okIssue := validator.IsValidDate(r.IssueDate)
	if !okIssue {
		errs = append(errs, validator.ValidationError{
			Field:   "issue_date",
			Message: "issue_date must be in YYYY-MM-DD format",
		})
	}
	due, okDue := validator.IsValidDate(r.DueDate)
	if !okDue {
		errs = append(errs, validator.ValidationError{
			Field:   "due_date",
			Message: "due_date must be in YYYY-MM-DD format",
		})
	}
	if okIssue && okDue && due.Before(issue) {
		errs = append(errs, validator.ValidationError{
			Field:   "due_date",
			Message: "due_date must not be before issue_date",
		})
	}

	if len(r.LineItems) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "line_items",
			Message: "at least one line item is required",
		})
	}
	for i, item := range r.LineItems {
		if validator.IsEmpty(item.Description) {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("line_items[%d].description", i),
				Message: "description is required",
			})
		}
		if item.Quantity <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("line_items[%d].quantity", i),
				Message: "quantity must be greater than zero",
			})
		}
		if item.UnitPrice < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("line_items[%d].unit_price", i),
				Message: "unit_price must not be negative",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateInvoiceRequest struct {
	ID            string             `json:"-"`
	ClientName    *string            `json:"client_name,omitempty"`
	ClientAddress *string            `json:"client_address,omitempty"`
	IssueDate     *string            `json:"issue_date,omitempty"`
	DueDate       *string            `json:"due_date,omitempty"`
	LineItems     *[]LineItemRequest `json:"line_items,omitempty"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClientName != nil && validator.IsEmpty(*r.ClientName) {
		errs = append(errs, validator.ValidationError{
			Field:   "client_name",
			Message: "client_name must not be empty",
		})
	}
	if r.IssueDate != nil {
		if _, ok := validator.IsValidDate(*r.IssueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "issue_date",
				Message: "issue_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "due_date",
				Message: "due_date must be in YYYY-MM-DD format",
			})
		}
	}
	if r.LineItems != nil && len(*r.LineItems) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "line_items",
			Message: "line_items must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LineItemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit,omitempty"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type InvoiceResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber string             `json:"invoice_number"`
	CreatedBy     string             `json:"created_by"`
	CreatorName   string             `json:"creator_name,omitempty"`
	ClientName    string             `json:"client_name"`
	ClientAddress *string            `json:"client_address,omitempty"`
	IssueDate     string             `json:"issue_date"`
	DueDate       string             `json:"due_date"`
	LineItems     []LineItemResponse `json:"line_items"`
	TotalAmount   float64            `json:"total_amount"`
	Status        string             `json:"status"`
	SentAt        *string            `json:"sent_at,omitempty"`
	PaidAt        *string            `json:"paid_at,omitempty"`
	CreatedAt     string             `json:"created_at"`
	UpdatedAt     string             `json:"updated_at"`
}

type InvoiceFilter struct {
	Status     *string `json:"status,omitempty"`
	ClientName *string `json:"client_name,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *InvoiceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{
			string(StatusDraft),
			string(StatusSent),
			string(StatusPaid),
		}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: draft, sent, paid",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListInvoicesResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Invoices   []InvoiceResponse `json:"invoices"`
}
