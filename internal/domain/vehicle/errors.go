package vehicle

import "errors"

var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrPlateNumberExists  = errors.New("plate number already registered")
	ErrVehicleNotActive   = errors.New("vehicle is not active")
	ErrTripLogNotFound    = errors.New("trip log not found")
	ErrOdometerOutOfOrder = errors.New("odometer end is below odometer start")
)
