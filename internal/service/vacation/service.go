package vacation

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/timesheet"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/fieldworks/workforce-backend-go/internal/domain/vacation"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/fieldworks/workforce-backend-go/internal/repository/postgresql"
	timesheetservice "github.com/fieldworks/workforce-backend-go/internal/service/timesheet"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type RequestServiceImpl struct {
	db          database.TxBeginner
	requestRepo vacation.RequestRepository
	recordRepo  timesheet.RecordRepository
}

func NewRequestService(db database.TxBeginner, requestRepo vacation.RequestRepository, recordRepo timesheet.RecordRepository) vacation.RequestService {
	return &RequestServiceImpl{
		db:          db,
		requestRepo: requestRepo,
		recordRepo:  recordRepo,
	}
}

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

// Submit implements vacation.RequestService. The working-day count of the
// range is fixed at submission time.
func (s *RequestServiceImpl) Submit(ctx context.Context, req vacation.CreateRequest) (vacation.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.RequestResponse{}, err
	}

	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	workingDays, err := timesheetservice.CountWorkingDays(start, end)
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	request := vacation.Request{
		UserID:      userID,
		StartDate:   start,
		EndDate:     end,
		WorkingDays: workingDays,
		Reason:      req.Reason,
		Status:      vacation.StatusWaitingApproval,
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to create vacation request: %w", err)
	}

	return toRequestResponse(created), nil
}

// Get implements vacation.RequestService.
func (s *RequestServiceImpl) Get(ctx context.Context, id string) (vacation.RequestResponse, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	if role != user.RoleAdmin && request.UserID != userID {
		return vacation.RequestResponse{}, vacation.ErrUnauthorized
	}

	return toRequestResponse(request), nil
}

// List implements vacation.RequestService.
func (s *RequestServiceImpl) List(ctx context.Context, filter vacation.RequestFilter) (vacation.ListRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return vacation.ListRequestsResponse{}, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return vacation.ListRequestsResponse{}, fmt.Errorf("failed to list vacation requests: %w", err)
	}

	return buildListResponse(requests, total, filter), nil
}

// MyRequests implements vacation.RequestService.
func (s *RequestServiceImpl) MyRequests(ctx context.Context, filter vacation.RequestFilter) (vacation.ListRequestsResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return vacation.ListRequestsResponse{}, err
	}
	filter.UserID = &userID

	if err := filter.Validate(); err != nil {
		return vacation.ListRequestsResponse{}, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return vacation.ListRequestsResponse{}, fmt.Errorf("failed to list vacation requests: %w", err)
	}

	return buildListResponse(requests, total, filter), nil
}

// Approve implements vacation.RequestService. Approval also materializes a
// vacation time record covering the requested range, in the same transaction
// as the status change.
func (s *RequestServiceImpl) Approve(ctx context.Context, id string) (vacation.RequestResponse, error) {
	approverID, role, err := callerFromContext(ctx)
	if err != nil {
		return vacation.RequestResponse{}, err
	}
	if role != user.RoleAdmin {
		return vacation.RequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return vacation.RequestResponse{}, err
	}
	if request.Status != vacation.StatusWaitingApproval {
		return vacation.RequestResponse{}, vacation.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	request.Status = vacation.StatusApproved
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.requestRepo.UpdateStatus(txCtx, request); err != nil {
			return err
		}

		start := request.StartDate
		end := request.EndDate
		record := timesheet.Record{
			UserID:    request.UserID,
			WorkType:  timesheet.WorkTypeVacation,
			StartDate: &start,
			EndDate:   &end,
			Note:      &request.Reason,
		}
		if _, err := s.recordRepo.Create(txCtx, record); err != nil {
			return fmt.Errorf("failed to create vacation time record: %w", err)
		}

		return nil
	})
	if err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to approve vacation request: %w", err)
	}

	return toRequestResponse(request), nil
}

// Reject implements vacation.RequestService.
func (s *RequestServiceImpl) Reject(ctx context.Context, req vacation.RejectRequest) (vacation.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return vacation.RequestResponse{}, err
	}

	approverID, role, err := callerFromContext(ctx)
	if err != nil {
		return vacation.RequestResponse{}, err
	}
	if role != user.RoleAdmin {
		return vacation.RequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	request, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return vacation.RequestResponse{}, err
	}
	if request.Status != vacation.StatusWaitingApproval {
		return vacation.RequestResponse{}, vacation.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	request.Status = vacation.StatusRejected
	request.ApprovedBy = &approverID
	request.ApprovedAt = &now
	request.RejectionReason = &req.Reason

	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to reject vacation request: %w", err)
	}

	return toRequestResponse(request), nil
}

// Cancel implements vacation.RequestService. Only the requester can cancel,
// and only while the request is still waiting for approval.
func (s *RequestServiceImpl) Cancel(ctx context.Context, id string) (vacation.RequestResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return vacation.RequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return vacation.RequestResponse{}, err
	}
	if request.UserID != userID {
		return vacation.RequestResponse{}, vacation.ErrUnauthorized
	}
	if request.Status != vacation.StatusWaitingApproval {
		return vacation.RequestResponse{}, vacation.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	request.Status = vacation.StatusCancelled
	request.CancelledAt = &now

	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		return vacation.RequestResponse{}, fmt.Errorf("failed to cancel vacation request: %w", err)
	}

	return toRequestResponse(request), nil
}

func buildListResponse(requests []vacation.Request, total int64, filter vacation.RequestFilter) vacation.ListRequestsResponse {
	responses := make([]vacation.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toRequestResponse(req))
	}

	return vacation.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}
}

func toRequestResponse(req vacation.Request) vacation.RequestResponse {
	resp := vacation.RequestResponse{
		ID:              req.ID,
		UserID:          req.UserID,
		StartDate:       req.StartDate.Format("2006-01-02"),
		EndDate:         req.EndDate.Format("2006-01-02"),
		WorkingDays:     req.WorkingDays,
		Reason:          req.Reason,
		Status:          string(req.Status),
		ApprovedBy:      req.ApprovedBy,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       req.UpdatedAt.Format(time.RFC3339),
	}
	if req.UserName != nil {
		resp.UserName = *req.UserName
	}
	if req.ApprovedAt != nil {
		s := req.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	return resp
}
