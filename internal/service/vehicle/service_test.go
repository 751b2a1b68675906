package vehicle

import (
	"context"
	"testing"

	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/fieldworks/workforce-backend-go/internal/domain/vehicle"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { t.rolledBack = true; return nil }

type fakeDB struct {
	tx fakeTx
}

func (d *fakeDB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return &d.tx, nil
}

type fakeVehicleRepo struct {
	vehicles    map[string]vehicle.Vehicle
	logs        []vehicle.TripLog
	logsInTx    []bool
	updatesInTx []bool
}

func (f *fakeVehicleRepo) Create(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	v.ID = "veh-new"
	f.vehicles[v.ID] = v
	return v, nil
}

func (f *fakeVehicleRepo) GetByID(ctx context.Context, id string) (vehicle.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return vehicle.Vehicle{}, vehicle.ErrVehicleNotFound
	}
	return v, nil
}

func (f *fakeVehicleRepo) GetByPlateNumber(ctx context.Context, plate string) (vehicle.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.PlateNumber == plate {
			return v, nil
		}
	}
	return vehicle.Vehicle{}, pgx.ErrNoRows
}

func (f *fakeVehicleRepo) Update(ctx context.Context, v vehicle.Vehicle) error {
	f.updatesInTx = append(f.updatesInTx, ctx.Value("tx") != nil)
	f.vehicles[v.ID] = v
	return nil
}

func (f *fakeVehicleRepo) List(ctx context.Context, filter vehicle.VehicleFilter) ([]vehicle.Vehicle, int64, error) {
	return nil, 0, nil
}

func (f *fakeVehicleRepo) CreateTripLog(ctx context.Context, log vehicle.TripLog) (vehicle.TripLog, error) {
	f.logsInTx = append(f.logsInTx, ctx.Value("tx") != nil)
	log.ID = "trip-new"
	f.logs = append(f.logs, log)
	return log, nil
}

func (f *fakeVehicleRepo) ListTripLogs(ctx context.Context, filter vehicle.TripLogFilter) ([]vehicle.TripLog, int64, error) {
	return nil, 0, nil
}

func authedContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("role", string(role)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func activeVan() vehicle.Vehicle {
	return vehicle.Vehicle{
		ID:          "veh-1",
		PlateNumber: "AB-1234",
		Make:        "Ford",
		Model:       "Transit",
		Status:      vehicle.StatusActive,
		Odometer:    1200,
	}
}

func TestVehicleService_LogTrip_AdvancesOdometerInTransaction(t *testing.T) {
	db := &fakeDB{}
	repo := &fakeVehicleRepo{vehicles: map[string]vehicle.Vehicle{"veh-1": activeVan()}}
	svc := NewVehicleService(db, repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	resp, err := svc.LogTrip(ctx, vehicle.CreateTripLogRequest{
		VehicleID:   "veh-1",
		Date:        "2024-03-04",
		OdometerEnd: 1260.5,
	})
	require.NoError(t, err)

	// The trip starts at the vehicle's current reading.
	assert.Equal(t, 1200.0, resp.OdometerStart)
	assert.Equal(t, 1260.5, resp.OdometerEnd)
	assert.Equal(t, 60.5, resp.Distance)
	assert.Equal(t, "user-1", resp.UserID)

	assert.Equal(t, 1260.5, repo.vehicles["veh-1"].Odometer)

	// Log insert and odometer update share one committed transaction.
	assert.Equal(t, []bool{true}, repo.logsInTx)
	assert.Equal(t, []bool{true}, repo.updatesInTx)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestVehicleService_LogTrip_RejectsOdometerBelowCurrent(t *testing.T) {
	repo := &fakeVehicleRepo{vehicles: map[string]vehicle.Vehicle{"veh-1": activeVan()}}
	svc := NewVehicleService(&fakeDB{}, repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := svc.LogTrip(ctx, vehicle.CreateTripLogRequest{
		VehicleID:   "veh-1",
		Date:        "2024-03-04",
		OdometerEnd: 1100,
	})

	assert.ErrorIs(t, err, vehicle.ErrOdometerOutOfOrder)
	assert.Empty(t, repo.logs)
	assert.Equal(t, 1200.0, repo.vehicles["veh-1"].Odometer)
}

func TestVehicleService_LogTrip_AllowsZeroDistance(t *testing.T) {
	repo := &fakeVehicleRepo{vehicles: map[string]vehicle.Vehicle{"veh-1": activeVan()}}
	svc := NewVehicleService(&fakeDB{}, repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	resp, err := svc.LogTrip(ctx, vehicle.CreateTripLogRequest{
		VehicleID:   "veh-1",
		Date:        "2024-03-04",
		OdometerEnd: 1200,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Distance)
}

func TestVehicleService_LogTrip_RejectsInactiveVehicle(t *testing.T) {
	v := activeVan()
	v.Status = vehicle.StatusMaintenance
	repo := &fakeVehicleRepo{vehicles: map[string]vehicle.Vehicle{"veh-1": v}}
	svc := NewVehicleService(&fakeDB{}, repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := svc.LogTrip(ctx, vehicle.CreateTripLogRequest{
		VehicleID:   "veh-1",
		Date:        "2024-03-04",
		OdometerEnd: 1300,
	})

	assert.ErrorIs(t, err, vehicle.ErrVehicleNotActive)
	assert.Empty(t, repo.logs)
}

func TestVehicleService_Create_RejectsDuplicatePlate(t *testing.T) {
	repo := &fakeVehicleRepo{vehicles: map[string]vehicle.Vehicle{"veh-1": activeVan()}}
	svc := NewVehicleService(&fakeDB{}, repo)
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	year := 2022
	_, err := svc.Create(ctx, vehicle.CreateVehicleRequest{
		PlateNumber: "ab-1234",
		Make:        "Ford",
		Model:       "Transit",
		Year:        &year,
	})

	assert.ErrorIs(t, err, vehicle.ErrPlateNumberExists)
}
