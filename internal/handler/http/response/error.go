package response

import (
	"errors"
	"net/http"

	"github.com/fieldworks/workforce-backend-go/internal/domain/auth"
	"github.com/fieldworks/workforce-backend-go/internal/domain/invoice"
	"github.com/fieldworks/workforce-backend-go/internal/domain/material"
	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
	"github.com/fieldworks/workforce-backend-go/internal/domain/tool"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/fieldworks/workforce-backend-go/internal/domain/vacation"
	"github.com/fieldworks/workforce-backend-go/internal/domain/vehicle"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrRecordNotFound):
		NotFound(w, "Time record not found")
	case errors.Is(err, timesheet.ErrInvalidRange):
		BadRequest(w, "Range start exceeds range end", nil)
	case errors.Is(err, timesheet.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this time record")

	// Vacation domain errors
	case errors.Is(err, vacation.ErrRequestNotFound):
		NotFound(w, "Vacation request not found")
	case errors.Is(err, vacation.ErrRequestAlreadyProcessed):
		Conflict(w, "Vacation request already processed")
	case errors.Is(err, vacation.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this vacation request")

	// Invoice domain errors
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, invoice.ErrInvoiceNotDraft):
		Conflict(w, "Invoice already sent")
	case errors.Is(err, invoice.ErrInvoiceAlreadyPaid):
		Conflict(w, "Invoice already paid")
	case errors.Is(err, invoice.ErrInvoiceNotSent):
		Conflict(w, "Invoice has not been sent yet")

	// Material domain errors
	case errors.Is(err, material.ErrRequestNotFound):
		NotFound(w, "Material request not found")
	case errors.Is(err, material.ErrRequestAlreadyProcessed):
		Conflict(w, "Material request already processed")
	case errors.Is(err, material.ErrRequestNotApproved):
		Conflict(w, "Material request is not approved")
	case errors.Is(err, material.ErrUnauthorized):
		Forbidden(w, "Not allowed to access this material request")

	// Tool domain errors
	case errors.Is(err, tool.ErrToolNotFound):
		NotFound(w, "Tool not found")
	case errors.Is(err, tool.ErrToolNotAvailable):
		Conflict(w, "Tool is not available")
	case errors.Is(err, tool.ErrToolNotAssigned):
		Conflict(w, "Tool is not assigned")
	case errors.Is(err, tool.ErrToolRetired):
		Conflict(w, "Tool has been retired")

	// Vehicle domain errors
	case errors.Is(err, vehicle.ErrVehicleNotFound):
		NotFound(w, "Vehicle not found")
	case errors.Is(err, vehicle.ErrPlateNumberExists):
		Conflict(w, "Plate number already registered")
	case errors.Is(err, vehicle.ErrVehicleNotActive):
		Conflict(w, "Vehicle is not active")
	case errors.Is(err, vehicle.ErrTripLogNotFound):
		NotFound(w, "Trip log not found")
	case errors.Is(err, vehicle.ErrOdometerOutOfOrder):
		BadRequest(w, "Odometer end is below odometer start", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
