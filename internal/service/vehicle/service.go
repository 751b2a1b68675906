package vehicle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/fieldworks/workforce-backend-go/internal/domain/vehicle"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/fieldworks/workforce-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type VehicleServiceImpl struct {
	db          database.TxBeginner
	vehicleRepo vehicle.VehicleRepository
}

func NewVehicleService(db database.TxBeginner, vehicleRepo vehicle.VehicleRepository) vehicle.VehicleService {
	return &VehicleServiceImpl{
		db:          db,
		vehicleRepo: vehicleRepo,
	}
}

func callerFromContext(ctx context.Context) (string, user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id not found in claims")
	}

	role, _ := claims["role"].(string)
	return userID, user.Role(role), nil
}

// Create implements vehicle.VehicleService. Plate numbers are stored
// uppercased and must be unique.
func (s *VehicleServiceImpl) Create(ctx context.Context, req vehicle.CreateVehicleRequest) (vehicle.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return vehicle.VehicleResponse{}, err
	}

	_, role, err := callerFromContext(ctx)
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}
	if role != user.RoleAdmin {
		return vehicle.VehicleResponse{}, user.ErrAdminPrivilegeRequired
	}

	plate := strings.ToUpper(strings.TrimSpace(req.PlateNumber))

	_, err = s.vehicleRepo.GetByPlateNumber(ctx, plate)
	if err == nil {
		return vehicle.VehicleResponse{}, vehicle.ErrPlateNumberExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to check plate number: %w", err)
	}

	v := vehicle.Vehicle{
		PlateNumber: plate,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		Status:      vehicle.StatusActive,
		Odometer:    req.Odometer,
	}

	created, err := s.vehicleRepo.Create(ctx, v)
	if err != nil {
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return toVehicleResponse(created), nil
}

// Get implements vehicle.VehicleService.
func (s *VehicleServiceImpl) Get(ctx context.Context, id string) (vehicle.VehicleResponse, error) {
	if _, _, err := callerFromContext(ctx); err != nil {
		return vehicle.VehicleResponse{}, err
	}

	v, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}

	return toVehicleResponse(v), nil
}

// Update implements vehicle.VehicleService.
func (s *VehicleServiceImpl) Update(ctx context.Context, req vehicle.UpdateVehicleRequest) (vehicle.VehicleResponse, error) {
	if err := req.Validate(); err != nil {
		return vehicle.VehicleResponse{}, err
	}

	_, role, err := callerFromContext(ctx)
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}
	if role != user.RoleAdmin {
		return vehicle.VehicleResponse{}, user.ErrAdminPrivilegeRequired
	}

	v, err := s.vehicleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return vehicle.VehicleResponse{}, err
	}

	if req.Make != nil {
		v.Make = *req.Make
	}
	if req.Model != nil {
		v.Model = *req.Model
	}
	if req.Year != nil {
		v.Year = req.Year
	}
	if req.Status != nil {
		v.Status = vehicle.Status(strings.ToLower(*req.Status))
	}

	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		return vehicle.VehicleResponse{}, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return toVehicleResponse(v), nil
}

// List implements vehicle.VehicleService.
func (s *VehicleServiceImpl) List(ctx context.Context, filter vehicle.VehicleFilter) (vehicle.ListVehiclesResponse, error) {
	if err := filter.Validate(); err != nil {
		return vehicle.ListVehiclesResponse{}, err
	}

	vehicles, total, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		return vehicle.ListVehiclesResponse{}, fmt.Errorf("failed to list vehicles: %w", err)
	}

	responses := make([]vehicle.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		responses = append(responses, toVehicleResponse(v))
	}

	return vehicle.ListVehiclesResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Vehicles:   responses,
	}, nil
}

// LogTrip implements vehicle.VehicleService. The trip starts at the
// vehicle's current odometer reading; logging advances the odometer to
// the trip's end reading in the same transaction.
func (s *VehicleServiceImpl) LogTrip(ctx context.Context, req vehicle.CreateTripLogRequest) (vehicle.TripLogResponse, error) {
	if err := req.Validate(); err != nil {
		return vehicle.TripLogResponse{}, err
	}

	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return vehicle.TripLogResponse{}, err
	}

	v, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return vehicle.TripLogResponse{}, err
	}
	if v.Status != vehicle.StatusActive {
		return vehicle.TripLogResponse{}, vehicle.ErrVehicleNotActive
	}
	if req.OdometerEnd < v.Odometer {
		return vehicle.TripLogResponse{}, vehicle.ErrOdometerOutOfOrder
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	log := vehicle.TripLog{
		VehicleID:     v.ID,
		UserID:        userID,
		Date:          date,
		OdometerStart: v.Odometer,
		OdometerEnd:   req.OdometerEnd,
		Purpose:       req.Purpose,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err := s.vehicleRepo.CreateTripLog(txCtx, log)
		if err != nil {
			return err
		}
		log = created

		v.Odometer = req.OdometerEnd
		return s.vehicleRepo.Update(txCtx, v)
	})
	if err != nil {
		return vehicle.TripLogResponse{}, fmt.Errorf("failed to log trip: %w", err)
	}

	return toTripLogResponse(log), nil
}

// ListTripLogs implements vehicle.VehicleService. Employees only see their
// own trips; admins see everything.
func (s *VehicleServiceImpl) ListTripLogs(ctx context.Context, filter vehicle.TripLogFilter) (vehicle.ListTripLogsResponse, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return vehicle.ListTripLogsResponse{}, err
	}
	if role != user.RoleAdmin {
		filter.UserID = &userID
	}

	if err := filter.Validate(); err != nil {
		return vehicle.ListTripLogsResponse{}, err
	}

	logs, total, err := s.vehicleRepo.ListTripLogs(ctx, filter)
	if err != nil {
		return vehicle.ListTripLogsResponse{}, fmt.Errorf("failed to list trip logs: %w", err)
	}

	responses := make([]vehicle.TripLogResponse, 0, len(logs))
	for _, log := range logs {
		responses = append(responses, toTripLogResponse(log))
	}

	return vehicle.ListTripLogsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		TripLogs:   responses,
	}, nil
}

func toVehicleResponse(v vehicle.Vehicle) vehicle.VehicleResponse {
	return vehicle.VehicleResponse{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Make:        v.Make,
		Model:       v.Model,
		Year:        v.Year,
		Status:      string(v.Status),
		Odometer:    v.Odometer,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   v.UpdatedAt.Format(time.RFC3339),
	}
}

func toTripLogResponse(log vehicle.TripLog) vehicle.TripLogResponse {
	resp := vehicle.TripLogResponse{
		ID:            log.ID,
		VehicleID:     log.VehicleID,
		UserID:        log.UserID,
		Date:          log.Date.Format("2006-01-02"),
		OdometerStart: log.OdometerStart,
		OdometerEnd:   log.OdometerEnd,
		Distance:      log.Distance(),
		Purpose:       log.Purpose,
		CreatedAt:     log.CreatedAt.Format(time.RFC3339),
	}
	if log.UserName != nil {
		resp.UserName = *log.UserName
	}
	if log.PlateNumber != nil {
		resp.PlateNumber = *log.PlateNumber
	}
	return resp
}
