package timesheet

import (
	"context"
	"time"
)

// RecordRepository defines data access for time records.
type RecordRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	Update(ctx context.Context, record Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)

	// ListTouchingRange returns every record of a user whose effective date(s)
	// can intersect [start, end]: single-date records dated inside the range
	// and range records overlapping it. Used for period statistics.
	ListTouchingRange(ctx context.Context, userID string, start, end time.Time) ([]Record, error)
}
