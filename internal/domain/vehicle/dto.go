package vehicle

import (
	"strings"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
)

type CreateVehicleRequest struct {
	PlateNumber string  `json:"plate_number"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        *int    `json:"year,omitempty"`
	Odometer    float64 `json:"odometer"`
}

func (r *CreateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPlateNumber(r.PlateNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "plate_number",
			Message: "plate_number must be 2-12 letters, digits or dashes",
		})
	}
	if validator.IsEmpty(r.Make) {
		errs = append(errs, validator.ValidationError{
			Field:   "make",
			Message: "make is required",
		})
	}
	if validator.IsEmpty(r.Model) {
		errs = append(errs, validator.ValidationError{
			Field:   "model",
			Message: "model is required",
		})
	}
	if r.Year != nil && (*r.Year < 1950 || *r.Year > time.Now().Year()+1) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}
	if r.Odometer < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "odometer",
			Message: "odometer must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateVehicleRequest struct {
	ID     string  `json:"-"`
	Make   *string `json:"make,omitempty"`
	Model  *string `json:"model,omitempty"`
	Year   *int    `json:"year,omitempty"`
	Status *string `json:"status,omitempty"`
}

func (r *UpdateVehicleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Make != nil && validator.IsEmpty(*r.Make) {
		errs = append(errs, validator.ValidationError{
			Field:   "make",
			Message: "make must not be empty",
		})
	}
	if r.Model != nil && validator.IsEmpty(*r.Model) {
		errs = append(errs, validator.ValidationError{
			Field:   "model",
			Message: "model must not be empty",
		})
	}
	if r.Status != nil {
		validStatuses := []string{
			string(StatusActive),
			string(StatusMaintenance),
			string(StatusRetired),
		}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, maintenance, retired",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CreateTripLogRequest struct {
	VehicleID   string  `json:"-"`
	Date        string  `json:"date"` // YYYY-MM-DD
	OdometerEnd float64 `json:"odometer_end"`
	Purpose     *string `json:"purpose,omitempty"`
}

func (r *CreateTripLogRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if r.OdometerEnd < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "odometer_end",
			Message: "odometer_end must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type VehicleResponse struct {
	ID          string  `json:"id"`
	PlateNumber string  `json:"plate_number"`
	Make        string  `json:"make"`
	Model       string  `json:"model"`
	Year        *int    `json:"year,omitempty"`
	Status      string  `json:"status"`
	Odometer    float64 `json:"odometer"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type TripLogResponse struct {
	ID            string  `json:"id"`
	VehicleID     string  `json:"vehicle_id"`
	PlateNumber   string  `json:"plate_number,omitempty"`
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name,omitempty"`
	Date          string  `json:"date"`
	OdometerStart float64 `json:"odometer_start"`
	OdometerEnd   float64 `json:"odometer_end"`
	Distance      float64 `json:"distance"`
	Purpose       *string `json:"purpose,omitempty"`
	CreatedAt     string  `json:"created_at"`
}

type VehicleFilter struct {
	Status *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *VehicleFilter) Validate() error {
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
			string(StatusActive),
			string(StatusMaintenance),
			string(StatusRetired),
		}
		if !validator.IsInSlice(strings.ToLower(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, maintenance, retired",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TripLogFilter struct {
	VehicleID *string `json:"vehicle_id,omitempty"`
	UserID    *string `json:"user_id,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TripLogFilter) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListVehiclesResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Vehicles   []VehicleResponse `json:"vehicles"`
}

type ListTripLogsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	TripLogs   []TripLogResponse `json:"trip_logs"`
}
