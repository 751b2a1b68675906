package vacation

import "time"

type RequestStatus string

const (
	StatusWaitingApproval RequestStatus = "waiting_approval"
	StatusApproved        RequestStatus = "approved"
	StatusRejected        RequestStatus = "rejected"
	StatusCancelled       RequestStatus = "cancelled"
)

// Request is a vacation request over an inclusive date range. Approval
// materializes a vacation time record covering the same range.
type Request struct {
	ID     string
	UserID string

	StartDate time.Time
	EndDate   time.Time

	// WorkingDays is the Mon-Fri day count of the range, fixed at submission.
	WorkingDays int

	Reason string

	Status          RequestStatus
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CancelledAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	UserName *string
}
