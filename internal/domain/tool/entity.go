package tool

import "time"

type Status string

const (
	StatusAvailable   Status = "available"
	StatusAssigned    Status = "assigned"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

// Tool is a tracked piece of equipment. At most one active assignment
// exists per tool; AssignedTo is set while the tool is checked out.
type Tool struct {
	ID           string
	Name         string
	SerialNumber *string
	Description  *string

	Status     Status
	AssignedTo *string
	AssignedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	AssigneeName *string
}
