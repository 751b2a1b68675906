package timesheet

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordRepo struct {
	records map[string]timesheet.Record
	updated []timesheet.Record
}

func newFakeRecordRepo(records ...timesheet.Record) *fakeRecordRepo {
	m := make(map[string]timesheet.Record, len(records))
	for _, rec := range records {
		m[rec.ID] = rec
	}
	return &fakeRecordRepo{records: m}
}

func (f *fakeRecordRepo) Create(ctx context.Context, rec timesheet.Record) (timesheet.Record, error) {
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("rec-%d", len(f.records)+1)
	}
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakeRecordRepo) GetByID(ctx context.Context, id string) (timesheet.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return timesheet.Record{}, timesheet.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeRecordRepo) Update(ctx context.Context, rec timesheet.Record) error {
	f.records[rec.ID] = rec
	f.updated = append(f.updated, rec)
	return nil
}

func (f *fakeRecordRepo) Delete(ctx context.Context, id string) error {
	delete(f.records, id)
	return nil
}

func (f *fakeRecordRepo) List(ctx context.Context, filter timesheet.RecordFilter) ([]timesheet.Record, int64, error) {
	return nil, 0, nil
}

func (f *fakeRecordRepo) ListTouchingRange(ctx context.Context, userID string, start, end time.Time) ([]timesheet.Record, error) {
	return nil, nil
}

func authedContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("user_id", userID))
	require.NoError(t, tok.Set("role", string(role)))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func strPtr(s string) *string { return &s }

func TestRecordService_Update_RejectsRangeFieldsOnSingleDateRecord(t *testing.T) {
	repo := newFakeRecordRepo(timesheet.Record{
		ID:         "rec-1",
		UserID:     "user-1",
		WorkType:   timesheet.WorkTypeRegular,
		Date:       datePtr(day(2024, time.March, 4)),
		TotalHours: hoursPtr(8),
	})
	svc := NewRecordService(repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Update(ctx, timesheet.UpdateRecordRequest{
		ID:        "rec-1",
		StartDate: strPtr("2024-03-10"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "start_date", verrs[0].Field)
	assert.Empty(t, repo.updated)

	// The stored record stays a single-date record.
	stored := repo.records["rec-1"]
	assert.Nil(t, stored.StartDate)
	assert.Nil(t, stored.EndDate)
	require.NotNil(t, stored.Date)
	assert.Equal(t, day(2024, time.March, 4), *stored.Date)
}

func TestRecordService_Update_RejectsDateOnRangeRecord(t *testing.T) {
	repo := newFakeRecordRepo(timesheet.Record{
		ID:        "rec-1",
		UserID:    "user-1",
		WorkType:  timesheet.WorkTypeVacation,
		StartDate: datePtr(day(2024, time.July, 1)),
		EndDate:   datePtr(day(2024, time.July, 5)),
	})
	svc := NewRecordService(repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Update(ctx, timesheet.UpdateRecordRequest{
		ID:   "rec-1",
		Date: strPtr("2024-07-03"),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "date", verrs[0].Field)
	assert.Nil(t, repo.records["rec-1"].Date)
}

func TestRecordService_Update_RejectsHoursOnNonWorkRecord(t *testing.T) {
	repo := newFakeRecordRepo(timesheet.Record{
		ID:       "rec-1",
		UserID:   "user-1",
		WorkType: timesheet.WorkTypeAbsence,
		Date:     datePtr(day(2024, time.March, 4)),
	})
	svc := NewRecordService(repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Update(ctx, timesheet.UpdateRecordRequest{
		ID:         "rec-1",
		TotalHours: hoursPtr(8),
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "total_hours", verrs[0].Field)
}

func TestRecordService_Update_RejectsInvertedRange(t *testing.T) {
	repo := newFakeRecordRepo(timesheet.Record{
		ID:        "rec-1",
		UserID:    "user-1",
		WorkType:  timesheet.WorkTypeSick,
		StartDate: datePtr(day(2024, time.July, 1)),
		EndDate:   datePtr(day(2024, time.July, 5)),
	})
	svc := NewRecordService(repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	_, err := svc.Update(ctx, timesheet.UpdateRecordRequest{
		ID:        "rec-1",
		StartDate: strPtr("2024-07-10"),
	})

	assert.ErrorIs(t, err, timesheet.ErrInvalidRange)
	assert.Empty(t, repo.updated)
}

func TestRecordService_Update_MovesSingleDate(t *testing.T) {
	repo := newFakeRecordRepo(timesheet.Record{
		ID:         "rec-1",
		UserID:     "user-1",
		WorkType:   timesheet.WorkTypeRegular,
		Date:       datePtr(day(2024, time.March, 4)),
		TotalHours: hoursPtr(8),
	})
	svc := NewRecordService(repo)
	ctx := authedContext(t, "user-1", user.RoleEmployee)

	resp, err := svc.Update(ctx, timesheet.UpdateRecordRequest{
		ID:         "rec-1",
		Date:       strPtr("2024-03-05"),
		TotalHours: hoursPtr(6),
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2024-03-05", *resp.Date)
	assert.Nil(t, resp.StartDate)
	assert.Nil(t, resp.EndDate)

	stored := repo.records["rec-1"]
	require.NotNil(t, stored.TotalHours)
	assert.Equal(t, 6.0, *stored.TotalHours)
}

func TestRecordService_Update_OwnerOnly(t *testing.T) {
	repo := newFakeRecordRepo(timesheet.Record{
		ID:       "rec-1",
		UserID:   "user-1",
		WorkType: timesheet.WorkTypeRegular,
		Date:     datePtr(day(2024, time.March, 4)),
	})
	svc := NewRecordService(repo)
	ctx := authedContext(t, "user-2", user.RoleEmployee)

	_, err := svc.Update(ctx, timesheet.UpdateRecordRequest{
		ID:   "rec-1",
		Note: strPtr("not mine"),
	})

	assert.ErrorIs(t, err, timesheet.ErrUnauthorized)
}
