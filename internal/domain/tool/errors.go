package tool

import "errors"

var (
	ErrToolNotFound     = errors.New("tool not found")
	ErrToolNotAvailable = errors.New("tool is not available for assignment")
	ErrToolNotAssigned  = errors.New("tool is not currently assigned")
	ErrToolRetired      = errors.New("tool has been retired")
)
