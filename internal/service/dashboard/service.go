package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/dashboard"
	"github.com/fieldworks/workforce-backend-go/internal/domain/material"
	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
	"github.com/fieldworks/workforce-backend-go/internal/domain/tool"
	"github.com/fieldworks/workforce-backend-go/internal/domain/vacation"
	timesheetservice "github.com/fieldworks/workforce-backend-go/internal/service/timesheet"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	recordService timesheet.RecordService
	vacationRepo  vacation.RequestRepository
	materialRepo  material.RequestRepository
	toolRepo      tool.ToolRepository
}

func NewDashboardService(
	recordService timesheet.RecordService,
	vacationRepo vacation.RequestRepository,
	materialRepo material.RequestRepository,
	toolRepo tool.ToolRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		recordService: recordService,
		vacationRepo:  vacationRepo,
		materialRepo:  materialRepo,
		toolRepo:      toolRepo,
	}
}

func callerID(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id not found in claims")
	}
	return userID, nil
}

// GetDashboard returns combined dashboard data using parallel goroutines:
// the current and previous reporting-period statistics plus open-item counts.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, ref time.Time) (*dashboard.DashboardResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	currentPeriod := timesheetservice.ReportingPeriodFor(ref)

	var (
		current  timesheet.StatisticsResponse
		previous timesheet.StatisticsResponse
		pending  dashboard.PendingCounts
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.recordService.Statistics(gCtx, ref)
		if err != nil {
			return err
		}
		current = stats
		return nil
	})

	// The current period starts on the 21st, which sits inside the
	// previous period's month window.
	g.Go(func() error {
		stats, err := s.recordService.Statistics(gCtx, currentPeriod.Start)
		if err != nil {
			return err
		}
		previous = stats
		return nil
	})

	g.Go(func() error {
		status := string(vacation.StatusWaitingApproval)
		_, total, err := s.vacationRepo.List(gCtx, vacation.RequestFilter{
			UserID: &userID,
			Status: &status,
			Page:   1,
			Limit:  1,
		})
		if err != nil {
			return err
		}
		pending.VacationRequests = total
		return nil
	})

	g.Go(func() error {
		status := string(material.StatusPending)
		_, total, err := s.materialRepo.List(gCtx, material.RequestFilter{
			UserID: &userID,
			Status: &status,
			Page:   1,
			Limit:  1,
		})
		if err != nil {
			return err
		}
		pending.MaterialRequests = total
		return nil
	})

	g.Go(func() error {
		status := string(tool.StatusAssigned)
		_, total, err := s.toolRepo.List(gCtx, tool.ToolFilter{
			Status:     &status,
			AssignedTo: &userID,
			Page:       1,
			Limit:      1,
		})
		if err != nil {
			return err
		}
		pending.AssignedTools = total
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	return &dashboard.DashboardResponse{
		CurrentPeriod:  current,
		PreviousPeriod: previous,
		Pending:        pending,
	}, nil
}
