package material

import "time"

type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusDelivered RequestStatus = "delivered"
)

// Request is a material order raised from the field. Lifecycle:
// pending -> approved -> delivered, or pending -> rejected.
type Request struct {
	ID     string
	UserID string

	ItemName string
	Quantity float64
	Unit     string
	Note     *string

	NeededBy *time.Time

	Status          RequestStatus
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string
	DeliveredAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName *string
}
