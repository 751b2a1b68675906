package vehicle

import "time"

type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
	StatusRetired     Status = "retired"
)

// Vehicle is a fleet vehicle identified by its plate number.
type Vehicle struct {
	ID          string
	PlateNumber string
	Make        string
	Model       string
	Year        *int

	Status   Status
	Odometer float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TripLog is a single journey entry for a vehicle. OdometerEnd is never
// below OdometerStart; logging a trip advances the vehicle's odometer.
type TripLog struct {
	ID        string
	VehicleID string
	UserID    string

	Date          time.Time
	OdometerStart float64
	OdometerEnd   float64
	Purpose       *string

	CreatedAt time.Time

	// DTO
	UserName    *string
	PlateNumber *string
}

// Distance returns the kilometers covered by the trip.
func (t TripLog) Distance() float64 {
	return t.OdometerEnd - t.OdometerStart
}
