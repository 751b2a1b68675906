package vacation

import (
	"errors"
	"testing"

	"github.com/fieldworks/workforce-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateRequest
		wantField string
	}{
		{
			name: "valid",
			req:  CreateRequest{StartDate: "2024-07-01", EndDate: "2024-07-05", Reason: "summer vacation"},
		},
		{
			name:      "end before start",
			req:       CreateRequest{StartDate: "2024-07-05", EndDate: "2024-07-01", Reason: "x"},
			wantField: "end_date",
		},
		{
			name:      "bad start date format",
			req:       CreateRequest{StartDate: "01.07.2024", EndDate: "2024-07-05", Reason: "x"},
			wantField: "start_date",
		},
		{
			name:      "missing reason",
			req:       CreateRequest{StartDate: "2024-07-01", EndDate: "2024-07-05", Reason: "  "},
			wantField: "reason",
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

func TestRequestFilter_Validate(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		var filter RequestFilter
		require.NoError(t, filter.Validate())
		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 20, filter.Limit)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		status := "done"
		filter := RequestFilter{Status: &status}
		assert.Error(t, filter.Validate())
	})

	t.Run("limit cap", func(t *testing.T) {
		filter := RequestFilter{Limit: 500}
		assert.Error(t, filter.Validate())
	})
}
