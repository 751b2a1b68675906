package vacation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/fieldworks/workforce-backend-go/internal/domain/vacation"
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

type fakeRequestRepo struct {
	requests    map[string]vacation.Request
	updatedInTx []bool
}

func (f *fakeRequestRepo) Create(ctx context.Context, req vacation.Request) (vacation.Request, error) {
	req.ID = "req-new"
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (vacation.Request, error) {
	req, ok := f.requests[id]
	if !ok {
		return vacation.Request{}, vacation.ErrRequestNotFound
	}
	return req, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, req vacation.Request) error {
	f.updatedInTx = append(f.updatedInTx, ctx.Value("tx") != nil)
	f.requests[req.ID] = req
	return nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter vacation.RequestFilter) ([]vacation.Request, int64, error) {
	return nil, 0, nil
}

type fakeRecordRepo struct {
	timesheet.RecordRepository
	created     []timesheet.Record
	createdInTx []bool
	createErr   error
}

func (f *fakeRecordRepo) Create(ctx context.Context, rec timesheet.Record) (timesheet.Record, error) {
	if f.createErr != nil {
		return timesheet.Record{}, f.createErr
	}
	f.createdInTx = append(f.createdInTx, ctx.Value("tx") != nil)
	rec.ID = "rec-new"
	f.created = append(f.created, rec)
	return rec, nil
}

func authedContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("role", string(role)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func waitingRequest() vacation.Request {
	return vacation.Request{
		ID:          "req-1",
		UserID:      "user-1",
		StartDate:   day(2024, time.July, 1),
		EndDate:     day(2024, time.July, 5),
		WorkingDays: 5,
		Reason:      "summer trip",
		Status:      vacation.StatusWaitingApproval,
	}
}

func TestRequestService_Submit_FixesWorkingDays(t *testing.T) {
	requestRepo := &fakeRequestRepo{requests: map[string]vacation.Request{}}
	svc := NewRequestService(&fakeDB{}, requestRepo, &fakeRecordRepo{})
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	// 2024-07-01 is a Monday; the range spans one weekend.
	resp, err := svc.Submit(ctx, vacation.CreateRequest{
		StartDate: "2024-07-01",
		EndDate:   "2024-07-08",
		Reason:    "summer trip",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.WorkingDays)
	assert.Equal(t, string(vacation.StatusWaitingApproval), resp.Status)
}

func TestRequestService_Approve_CreatesVacationRecordInTransaction(t *testing.T) {
	db := &fakeDB{}
	requestRepo := &fakeRequestRepo{requests: map[string]vacation.Request{"req-1": waitingRequest()}}
	recordRepo := &fakeRecordRepo{}
	svc := NewRequestService(db, requestRepo, recordRepo)
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	resp, err := svc.Approve(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, string(vacation.StatusApproved), resp.Status)

	stored := requestRepo.requests["req-1"]
	assert.Equal(t, vacation.StatusApproved, stored.Status)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, "admin-1", *stored.ApprovedBy)

	require.Len(t, recordRepo.created, 1)
	rec := recordRepo.created[0]
	assert.Equal(t, "user-1", rec.UserID)
	assert.Equal(t, timesheet.WorkTypeVacation, rec.WorkType)
	require.NotNil(t, rec.StartDate)
	require.NotNil(t, rec.EndDate)
	assert.Equal(t, day(2024, time.July, 1), *rec.StartDate)
	assert.Equal(t, day(2024, time.July, 5), *rec.EndDate)
	require.NotNil(t, rec.Note)
	assert.Equal(t, "summer trip", *rec.Note)

	// Both writes ran inside the same transaction, and it committed.
	assert.Equal(t, []bool{true}, requestRepo.updatedInTx)
	assert.Equal(t, []bool{true}, recordRepo.createdInTx)
	assert.True(t, db.tx.committed)
	assert.False(t, db.tx.rolledBack)
}

func TestRequestService_Approve_RollsBackWhenRecordCreationFails(t *testing.T) {
	db := &fakeDB{}
	boom := errors.New("record insert failed")
	requestRepo := &fakeRequestRepo{requests: map[string]vacation.Request{"req-1": waitingRequest()}}
	recordRepo := &fakeRecordRepo{createErr: boom}
	svc := NewRequestService(db, requestRepo, recordRepo)
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	_, err := svc.Approve(ctx, "req-1")
	assert.ErrorIs(t, err, boom)
	assert.True(t, db.tx.rolledBack)
	assert.False(t, db.tx.committed)
}

func TestRequestService_Approve_RejectsProcessedRequest(t *testing.T) {
	processed := waitingRequest()
	processed.Status = vacation.StatusApproved
	requestRepo := &fakeRequestRepo{requests: map[string]vacation.Request{"req-1": processed}}
	recordRepo := &fakeRecordRepo{}
	svc := NewRequestService(&fakeDB{}, requestRepo, recordRepo)
	ctx := authedContext(t, "admin-1", user.RoleAdmin)

	_, err := svc.Approve(ctx, "req-1")
	assert.ErrorIs(t, err, vacation.ErrRequestAlreadyProcessed)
	assert.Empty(t, recordRepo.created)
}

func TestRequestService_Approve_AdminOnly(t *testing.T) {
	requestRepo := &fakeRequestRepo{requests: map[string]vacation.Request{"req-1": waitingRequest()}}
	svc := NewRequestService(&fakeDB{}, requestRepo, &fakeRecordRepo{})
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Approve(ctx, "req-1")
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestRequestService_Cancel_RequesterOnly(t *testing.T) {
	requestRepo := &fakeRequestRepo{requests: map[string]vacation.Request{"req-1": waitingRequest()}}
	svc := NewRequestService(&fakeDB{}, requestRepo, &fakeRecordRepo{})

	_, err := svc.Cancel(authedContext(t, "user-2", user.RoleEmployee), "req-1")
	assert.ErrorIs(t, err, vacation.ErrUnauthorized)

	resp, err := svc.Cancel(authedContext(t, "user-1", user.RoleEmployee), "req-1")
	require.NoError(t, err)
	assert.Equal(t, string(vacation.StatusCancelled), resp.Status)
}
