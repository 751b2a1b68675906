package timesheet

import (
	"context"
	"time"
)

type RecordService interface {
	Create(ctx context.Context, req CreateRecordRequest) (RecordResponse, error)
	Get(ctx context.Context, id string) (RecordResponse, error)
	Update(ctx context.Context, req UpdateRecordRequest) (RecordResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
	MyRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)

	// Statistics aggregates the caller's records over the reporting period
	// containing ref.
	Statistics(ctx context.Context, ref time.Time) (StatisticsResponse, error)
}
