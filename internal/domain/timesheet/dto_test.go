package timesheet

import (
	"errors"
	"testing"

	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateRecordRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateRecordRequest
		wantField string
	}{
		{
			name: "valid regular day",
			req:  CreateRecordRequest{WorkType: "regular", Date: strPtr("2024-03-08"), TotalHours: floatPtr(8)},
		},
		{
			name: "valid vacation range",
			req:  CreateRecordRequest{WorkType: "vacation", StartDate: strPtr("2024-03-11"), EndDate: strPtr("2024-03-15")},
		},
		{
			name:      "unknown work type",
			req:       CreateRecordRequest{WorkType: "overtime", Date: strPtr("2024-03-08")},
			wantField: "work_type",
		},
		{
			name:      "range type without dates",
			req:       CreateRecordRequest{WorkType: "sick"},
			wantField: "start_date",
		},
		{
			name:      "range type with inverted range",
			req:       CreateRecordRequest{WorkType: "vacation", StartDate: strPtr("2024-03-15"), EndDate: strPtr("2024-03-11")},
			wantField: "end_date",
		},
		{
			name:      "range type with single date set",
			req:       CreateRecordRequest{WorkType: "vacation", StartDate: strPtr("2024-03-11"), EndDate: strPtr("2024-03-15"), Date: strPtr("2024-03-11")},
			wantField: "date",
		},
		{
			name:      "single-date type without date",
			req:       CreateRecordRequest{WorkType: "regular", TotalHours: floatPtr(8)},
			wantField: "date",
		},
		{
			name:      "single-date type with range set",
			req:       CreateRecordRequest{WorkType: "weekend", Date: strPtr("2024-03-09"), StartDate: strPtr("2024-03-09"), TotalHours: floatPtr(4)},
			wantField: "start_date",
		},
		{
			name:      "work type without hours",
			req:       CreateRecordRequest{WorkType: "reduced", Date: strPtr("2024-03-08")},
			wantField: "total_hours",
		},
		{
			name:      "negative hours",
			req:       CreateRecordRequest{WorkType: "regular", Date: strPtr("2024-03-08"), TotalHours: floatPtr(-1)},
			wantField: "total_hours",
		},
		{
			name:      "hours on absence record",
			req:       CreateRecordRequest{WorkType: "absence", Date: strPtr("2024-03-08"), TotalHours: floatPtr(8)},
			wantField: "total_hours",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.Contains(t, verrs.ToMap(), tt.wantField)
		})
	}
}
