package invoice

import "errors"

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvoiceNotDraft    = errors.New("invoice has already been sent")
	ErrInvoiceAlreadyPaid = errors.New("invoice has already been paid")
	ErrInvoiceNotSent     = errors.New("invoice has not been sent yet")
	ErrUnauthorized       = errors.New("unauthorized to access this invoice")
)
