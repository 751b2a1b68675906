package vehicle

import "context"

type VehicleRepository interface {
	Create(ctx context.Context, v Vehicle) (Vehicle, error)
	GetByID(ctx context.Context, id string) (Vehicle, error)
	GetByPlateNumber(ctx context.Context, plate string) (Vehicle, error)
	Update(ctx context.Context, v Vehicle) error
	List(ctx context.Context, filter VehicleFilter) ([]Vehicle, int64, error)

	CreateTripLog(ctx context.Context, log TripLog) (TripLog, error)
	ListTripLogs(ctx context.Context, filter TripLogFilter) ([]TripLog, int64, error)
}

type VehicleService interface {
	Create(ctx context.Context, req CreateVehicleRequest) (VehicleResponse, error)
	Get(ctx context.Context, id string) (VehicleResponse, error)
	Update(ctx context.Context, req UpdateVehicleRequest) (VehicleResponse, error)
	List(ctx context.Context, filter VehicleFilter) (ListVehiclesResponse, error)

	LogTrip(ctx context.Context, req CreateTripLogRequest) (TripLogResponse, error)
	ListTripLogs(ctx context.Context, filter TripLogFilter) (ListTripLogsResponse, error)
}
