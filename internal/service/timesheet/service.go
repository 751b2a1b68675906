package timesheet

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type RecordServiceImpl struct {
	recordRepo timesheet.RecordRepository
}

func NewRecordService(recordRepo timesheet.RecordRepository) timesheet.RecordService {
	return &RecordServiceImpl{recordRepo: recordRepo}
}

// callerFromContext extracts user_id and role from JWT claims
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

// Create implements timesheet.RecordService.
func (s *RecordServiceImpl) Create(ctx context.Context, req timesheet.CreateRecordRequest) (timesheet.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.RecordResponse{}, err
	}

	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.RecordResponse{}, err
	}

	record := timesheet.Record{
		UserID:     userID,
		WorkType:   timesheet.WorkType(req.WorkType),
		TotalHours: req.TotalHours,
		Note:       req.Note,
	}
	record.Date = parseDatePtr(req.Date)
	record.StartDate = parseDatePtr(req.StartDate)
	record.EndDate = parseDatePtr(req.EndDate)

	created, err := s.recordRepo.Create(ctx, record)
	if err != nil {
		return timesheet.RecordResponse{}, fmt.Errorf("failed to create time record: %w", err)
	}

	return toRecordResponse(created), nil
}

// Get implements timesheet.RecordService.
func (s *RecordServiceImpl) Get(ctx context.Context, id string) (timesheet.RecordResponse, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.RecordResponse{}, err
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return timesheet.RecordResponse{}, err
	}

	if role != user.RoleAdmin && record.UserID != userID {
		return timesheet.RecordResponse{}, timesheet.ErrUnauthorized
	}

	return toRecordResponse(record), nil
}

// Update implements timesheet.RecordService.
func (s *RecordServiceImpl) Update(ctx context.Context, req timesheet.UpdateRecordRequest) (timesheet.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.RecordResponse{}, err
	}

	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.RecordResponse{}, err
	}

	record, err := s.recordRepo.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.RecordResponse{}, err
	}
	if role != user.RoleAdmin && record.UserID != userID {
		return timesheet.RecordResponse{}, timesheet.ErrUnauthorized
	}

	if err := req.ValidateForType(record.WorkType); err != nil {
		return timesheet.RecordResponse{}, err
	}

	if d := parseDatePtr(req.Date); d != nil {
		record.Date = d
	}
	if d := parseDatePtr(req.StartDate); d != nil {
		record.StartDate = d
	}
	if d := parseDatePtr(req.EndDate); d != nil {
		record.EndDate = d
	}
	if record.StartDate != nil && record.EndDate != nil && record.EndDate.Before(*record.StartDate) {
		return timesheet.RecordResponse{}, timesheet.ErrInvalidRange
	}
	if req.TotalHours != nil {
		record.TotalHours = req.TotalHours
	}
	if req.Note != nil {
		record.Note = req.Note
	}

	if err := s.recordRepo.Update(ctx, record); err != nil {
		return timesheet.RecordResponse{}, fmt.Errorf("failed to update time record: %w", err)
	}

	updated, err := s.recordRepo.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.RecordResponse{}, err
	}

	return toRecordResponse(updated), nil
}

// Delete implements timesheet.RecordService.
func (s *RecordServiceImpl) Delete(ctx context.Context, id string) error {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return err
	}

	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if role != user.RoleAdmin && record.UserID != userID {
		return timesheet.ErrUnauthorized
	}

	return s.recordRepo.Delete(ctx, id)
}

// List implements timesheet.RecordService.
func (s *RecordServiceImpl) List(ctx context.Context, filter timesheet.RecordFilter) (timesheet.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListRecordsResponse{}, err
	}

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return timesheet.ListRecordsResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	return buildListResponse(records, total, filter), nil
}

// MyRecords implements timesheet.RecordService.
func (s *RecordServiceImpl) MyRecords(ctx context.Context, filter timesheet.RecordFilter) (timesheet.ListRecordsResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.ListRecordsResponse{}, err
	}
	filter.UserID = &userID

	if err := filter.Validate(); err != nil {
		return timesheet.ListRecordsResponse{}, err
	}

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return timesheet.ListRecordsResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	return buildListResponse(records, total, filter), nil
}

// Statistics implements timesheet.RecordService. The reference date comes from
// the caller so the computation is deterministic; handlers default it to now.
func (s *RecordServiceImpl) Statistics(ctx context.Context, ref time.Time) (timesheet.StatisticsResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return timesheet.StatisticsResponse{}, err
	}

	period := ReportingPeriodFor(ref)

	records, err := s.recordRepo.ListTouchingRange(ctx, userID, period.Start, period.End)
	if err != nil {
		return timesheet.StatisticsResponse{}, fmt.Errorf("failed to load records for period: %w", err)
	}

	stats, err := ComputePeriodStatistics(records, period)
	if err != nil {
		return timesheet.StatisticsResponse{}, err
	}

	return toStatisticsResponse(period, stats), nil
}

func buildListResponse(records []timesheet.Record, total int64, filter timesheet.RecordFilter) timesheet.ListRecordsResponse {
	responses := make([]timesheet.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}

	return timesheet.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}
}

func toStatisticsResponse(period Period, stats Statistics) timesheet.StatisticsResponse {
	records := make([]timesheet.RecordResponse, 0, len(stats.Records))
	for _, rec := range stats.Records {
		records = append(records, toRecordResponse(rec))
	}

	return timesheet.StatisticsResponse{
		PeriodStart:  period.Start.Format("2006-01-02"),
		PeriodEnd:    period.End.Format("2006-01-02"),
		WorkingDays:  stats.WorkingDays,
		FilledDays:   stats.FilledDays,
		RegularHours: stats.RegularHours,
		ReducedHours: stats.ReducedHours,
		WeekendHours: stats.WeekendHours,
		VacationDays: stats.VacationDays,
		SickDays:     stats.SickDays,
		AbsentDays:   stats.AbsentDays,
		Records:      records,
	}
}

func toRecordResponse(rec timesheet.Record) timesheet.RecordResponse {
	resp := timesheet.RecordResponse{
		ID:         rec.ID,
		UserID:     rec.UserID,
		WorkType:   string(rec.WorkType),
		TotalHours: rec.TotalHours,
		Note:       rec.Note,
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.UserName != nil {
		resp.UserName = *rec.UserName
	}
	resp.Date = formatDatePtr(rec.Date)
	resp.StartDate = formatDatePtr(rec.StartDate)
	resp.EndDate = formatDatePtr(rec.EndDate)
	return resp
}

// parseDatePtr converts a validated YYYY-MM-DD string to a date, nil for nil.
func parseDatePtr(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
