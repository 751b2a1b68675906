package tool

import (
	"strings"

	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
)

type CreateToolRequest struct {
	Name         string  `json:"name"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Description  *string `json:"description,omitempty"`
}

func (r *CreateToolRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateToolRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Description  *string `json:"description,omitempty"`
	Status       *string `json:"status,omitempty"`
}

func (r *UpdateToolRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Status != nil {
		validStatuses := []string{
			string(StatusAvailable),
			string(StatusMaintenance),
			string(StatusRetired),
		}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: available, maintenance, retired",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignToolRequest struct {
	ID     string `json:"-"`
	UserID string `json:"user_id"`
}

func (r *AssignToolRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ToolResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SerialNumber *string `json:"serial_number,omitempty"`
	Description  *string `json:"description,omitempty"`
	Status       string  `json:"status"`
	AssignedTo   *string `json:"assigned_to,omitempty"`
	AssigneeName string  `json:"assignee_name,omitempty"`
	AssignedAt   *string `json:"assigned_at,omitempty"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type ToolFilter struct {
	Status     *string `json:"status,omitempty"`
	AssignedTo *string `json:"assigned_to,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ToolFilter) Validate() error {
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
			string(StatusAvailable),
			string(StatusAssigned),
			string(StatusMaintenance),
			string(StatusRetired),
		}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: available, assigned, maintenance, retired",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListToolsResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Tools      []ToolResponse `json:"tools"`
}
