package vacation

import "errors"

var (
	ErrRequestNotFound         = errors.New("vacation request not found")
	ErrRequestAlreadyProcessed = errors.New("vacation request has already been processed")
	ErrUnauthorized            = errors.New("unauthorized to access this vacation request")
)
