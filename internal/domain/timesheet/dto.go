package timesheet

import (
	"strings"

	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// TIME RECORD DTOs
// ========================================

type CreateRecordRequest struct {
	UserID     string   `json:"-"`
	WorkType   string   `json:"work_type"`
	Date       *string  `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string  `json:"start_date,omitempty"` // YYYY-MM-DD, range types only
	EndDate    *string  `json:"end_date,omitempty"`   // YYYY-MM-DD, range types only
	TotalHours *float64 `json:"total_hours,omitempty"`
	Note       *string  `json:"note,omitempty"`
}

func (r *CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.WorkType, AllWorkTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_type",
			Message: "work_type must be one of: " + strings.Join(AllWorkTypes, ", "),
		})
		if len(errs) > 0 {
			return errs
		}
	}

	workType := WorkType(r.WorkType)

	if workType.IsRange() {
		if r.StartDate == nil || r.EndDate == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date and end_date are required for vacation and sick records",
			})
		} else {
			start, okStart := validator.IsValidDate(*r.StartDate)
			end, okEnd := validator.IsValidDate(*r.EndDate)
			if !okStart || !okEnd {
				errs = append(errs, validator.ValidationError{
					Field:   "start_date",
					Message: "start_date and end_date must be in YYYY-MM-DD format",
				})
			} else if end.Before(start) {
				errs = append(errs, validator.ValidationError{
					Field:   "end_date",
					Message: "end_date must not be before start_date",
				})
			}
		}
		if r.Date != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must not be set for vacation and sick records",
			})
		}
	} else {
		if r.Date == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date is required for this work type",
			})
		} else if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if r.StartDate != nil || r.EndDate != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date and end_date must not be set for this work type",
			})
		}
	}

	if workType.IsWork() {
		if r.TotalHours == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "total_hours",
				Message: "total_hours is required for work records",
			})
		} else if *r.TotalHours < 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "total_hours",
				Message: "total_hours must not be negative",
			})
		}
	} else if r.TotalHours != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours is only meaningful for work records",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRecordRequest struct {
	ID         string   `json:"-"`
	Date       *string  `json:"date,omitempty"`
	StartDate  *string  `json:"start_date,omitempty"`
	EndDate    *string  `json:"end_date,omitempty"`
	TotalHours *float64 `json:"total_hours,omitempty"`
	Note       *string  `json:"note,omitempty"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	for field, value := range map[string]*string{
		"date":       r.Date,
		"start_date": r.StartDate,
		"end_date":   r.EndDate,
	} {
		if value != nil {
			if _, ok := validator.IsValidDate(*value); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if r.TotalHours != nil && *r.TotalHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ValidateForType enforces the per-type field rules against the stored
// record's work type: a record holds either a single date or a range, never
// both, and only work records carry hours.
func (r *UpdateRecordRequest) ValidateForType(workType WorkType) error {
	var errs validator.ValidationErrors

	if workType.IsRange() {
		if r.Date != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must not be set for vacation and sick records",
			})
		}
	} else if r.StartDate != nil || r.EndDate != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date and end_date must not be set for this work type",
		})
	}

	if !workType.IsWork() && r.TotalHours != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours is only meaningful for work records",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID         string   `json:"id"`
	UserID     string   `json:"user_id"`
	UserName   string   `json:"user_name,omitempty"`
	WorkType   string   `json:"work_type"`
	Date       *string  `json:"date,omitempty"`
	StartDate  *string  `json:"start_date,omitempty"`
	EndDate    *string  `json:"end_date,omitempty"`
	TotalHours *float64 `json:"total_hours,omitempty"`
	Note       *string  `json:"note,omitempty"`
	CreatedAt  string   `json:"created_at"`
	UpdatedAt  string   `json:"updated_at"`
}

type RecordFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	WorkType  *string `json:"work_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, work_type, total_hours
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *RecordFilter) Validate() error {
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

	if f.WorkType != nil && !validator.IsInSlice(*f.WorkType, AllWorkTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "work_type",
			Message: "work_type must be one of: " + strings.Join(AllWorkTypes, ", "),
		})
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "work_type", "total_hours"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, work_type, total_hours",
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc"
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// StatisticsResponse is the per-period summary used by the dashboard and the
// timesheet calendar.
type StatisticsResponse struct {
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`

	WorkingDays int `json:"working_days"`
	FilledDays  int `json:"filled_days"`

	RegularHours float64 `json:"regular_hours"`
	ReducedHours float64 `json:"reduced_hours"`
	WeekendHours float64 `json:"weekend_hours"`

	VacationDays int `json:"vacation_days"`
	SickDays     int `json:"sick_days"`
	AbsentDays   int `json:"absent_days"`

	Records []RecordResponse `json:"records"`
}
