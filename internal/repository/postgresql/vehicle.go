package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/vehicle"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type vehicleRepository struct {
	db *database.DB
}

func NewVehicleRepository(db *database.DB) vehicle.VehicleRepository {
	return &vehicleRepository{db: db}
}

func scanVehicle(row pgx.Row) (vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(
		&v.ID, &v.PlateNumber, &v.Make, &v.Model, &v.Year,
		&v.Status, &v.Odometer, &v.CreatedAt, &v.UpdatedAt,
	)
	return v, err
}

// Create implements vehicle.VehicleRepository.
func (r *vehicleRepository) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vehicles (
			plate_number, make, model, year, status, odometer
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		v.PlateNumber,
		v.Make,
		v.Model,
		v.Year,
		v.Status,
		v.Odometer,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		return vehicle.Vehicle{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return v, nil
}

// GetByID implements vehicle.VehicleRepository.
func (r *vehicleRepository) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, plate_number, make, model, year, status, odometer, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	v, err := scanVehicle(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return vehicle.Vehicle{}, vehicle.ErrVehicleNotFound
		}
		return vehicle.Vehicle{}, fmt.Errorf("failed to get vehicle by ID: %w", err)
	}

	return v, nil
}

// GetByPlateNumber implements vehicle.VehicleRepository. Callers check for
// pgx.ErrNoRows to detect a free plate number.
func (r *vehicleRepository) GetByPlateNumber(ctx context.Context, plate string) (vehicle.Vehicle, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, plate_number, make, model, year, status, odometer, created_at, updated_at
		FROM vehicles
		WHERE plate_number = $1
	`

	return scanVehicle(q.QueryRow(ctx, query, plate))
}

// Update implements vehicle.VehicleRepository.
func (r *vehicleRepository) Update(ctx context.Context, v vehicle.Vehicle) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE vehicles
		SET make = $1, model = $2, year = $3, status = $4, odometer = $5, updated_at = $6
		WHERE id = $7
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		v.Make, v.Model, v.Year, v.Status, v.Odometer, time.Now(), v.ID,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return vehicle.ErrVehicleNotFound
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	return nil
}

// List implements vehicle.VehicleRepository.
func (r *vehicleRepository) List(ctx context.Context, filter vehicle.VehicleFilter) ([]vehicle.Vehicle, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM vehicles WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT id, plate_number, make, model, year, status, odometer, created_at, updated_at
		FROM vehicles
		WHERE %s
		ORDER BY plate_number ASC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []vehicle.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read vehicle rows: %w", err)
	}

	return vehicles, total, nil
}

// CreateTripLog implements vehicle.VehicleRepository.
func (r *vehicleRepository) CreateTripLog(ctx context.Context, log vehicle.TripLog) (vehicle.TripLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO vehicle_trip_logs (
			vehicle_id, user_id, date, odometer_start, odometer_end, purpose
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		log.VehicleID,
		log.UserID,
		log.Date,
		log.OdometerStart,
		log.OdometerEnd,
		log.Purpose,
	).Scan(&log.ID, &log.CreatedAt)

	if err != nil {
		return vehicle.TripLog{}, fmt.Errorf("failed to create trip log: %w", err)
	}

	return log, nil
}

// ListTripLogs implements vehicle.VehicleRepository.
func (r *vehicleRepository) ListTripLogs(ctx context.Context, filter vehicle.TripLogFilter) ([]vehicle.TripLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1 = 1"
	args := []interface{}{}
	argIdx := 1

	if filter.VehicleID != nil && *filter.VehicleID != "" {
		baseWhere += fmt.Sprintf(" AND tl.vehicle_id = $%d", argIdx)
		args = append(args, *filter.VehicleID)
		argIdx++
	}
	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND tl.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}

	countQuery := "SELECT COUNT(*) FROM vehicle_trip_logs tl WHERE " + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count trip logs: %w", err)
	}

	selectQuery := fmt.Sprintf(`
		SELECT
			tl.id, tl.vehicle_id, tl.user_id, tl.date,
			tl.odometer_start, tl.odometer_end, tl.purpose, tl.created_at,
			u.full_name AS user_name,
			v.plate_number
		FROM vehicle_trip_logs tl
		LEFT JOIN users u ON u.id = tl.user_id
		LEFT JOIN vehicles v ON v.id = tl.vehicle_id
		WHERE %s
		ORDER BY tl.date DESC, tl.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}
	offset := (filter.Page - 1) * limit
	args = append(args, limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query trip logs: %w", err)
	}
	defer rows.Close()

	var logs []vehicle.TripLog
	for rows.Next() {
		var log vehicle.TripLog
		err := rows.Scan(
			&log.ID, &log.VehicleID, &log.UserID, &log.Date,
			&log.OdometerStart, &log.OdometerEnd, &log.Purpose, &log.CreatedAt,
			&log.UserName,
			&log.PlateNumber,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan trip log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read trip log rows: %w", err)
	}

	return logs, total, nil
}
