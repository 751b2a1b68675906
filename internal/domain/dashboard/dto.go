package dashboard

import (
	"context"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
)

// PendingCounts summarizes the caller's open items across the modules.
type PendingCounts struct {
	VacationRequests int64 `json:"vacation_requests"`
	MaterialRequests int64 `json:"material_requests"`
	AssignedTools    int64 `json:"assigned_tools"`
}

// DashboardResponse combines the current and previous reporting-period
// statistics with open-item counters for a single user.
type DashboardResponse struct {
	CurrentPeriod  timesheet.StatisticsResponse `json:"current_period"`
	PreviousPeriod timesheet.StatisticsResponse `json:"previous_period"`
	Pending        PendingCounts                `json:"pending"`
}

type DashboardService interface {
	// GetDashboard aggregates the periods containing ref and the one before it.
	GetDashboard(ctx context.Context, ref time.Time) (*DashboardResponse, error)
}
