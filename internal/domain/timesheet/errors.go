package timesheet

import "errors"

var (
	ErrRecordNotFound = errors.New("time record not found")
	ErrUnauthorized   = errors.New("unauthorized to access this time record")

	// ErrInvalidRange signals a date range whose start exceeds its end. It
	// indicates a data-integrity problem upstream and is never recovered
	// locally.
	ErrInvalidRange = errors.New("range start exceeds range end")
)
