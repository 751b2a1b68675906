package material

import "errors"

var (
	ErrRequestNotFound         = errors.New("material request not found")
	ErrRequestAlreadyProcessed = errors.New("material request has already been processed")
	ErrRequestNotApproved      = errors.New("material request is not approved")
	ErrUnauthorized            = errors.New("unauthorized to access this material request")
)
