package material

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/material"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type RequestServiceImpl struct {
	requestRepo material.RequestRepository
}

func NewRequestService(requestRepo material.RequestRepository) material.RequestService {
	return &RequestServiceImpl{requestRepo: requestRepo}
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

// Submit implements material.RequestService.
func (s *RequestServiceImpl) Submit(ctx context.Context, req material.CreateRequest) (material.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return material.RequestResponse{}, err
	}

	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return material.RequestResponse{}, err
	}

	request := material.Request{
		UserID:   userID,
		ItemName: req.ItemName,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Note:     req.Note,
		Status:   material.StatusPending,
	}
	if req.NeededBy != nil {
		neededBy, _ := time.Parse("2006-01-02", *req.NeededBy)
		request.NeededBy = &neededBy
	}

	created, err := s.requestRepo.Create(ctx, request)
	if err != nil {
		return material.RequestResponse{}, fmt.Errorf("failed to create material request: %w", err)
	}

	return toRequestResponse(created), nil
}

// Get implements material.RequestService.
func (s *RequestServiceImpl) Get(ctx context.Context, id string) (material.RequestResponse, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return material.RequestResponse{}, err
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return material.RequestResponse{}, err
	}

	if role != user.RoleAdmin && request.UserID != userID {
		return material.RequestResponse{}, material.ErrUnauthorized
	}

	return toRequestResponse(request), nil
}

// List implements material.RequestService.
func (s *RequestServiceImpl) List(ctx context.Context, filter material.RequestFilter) (material.ListRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return material.ListRequestsResponse{}, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return material.ListRequestsResponse{}, fmt.Errorf("failed to list material requests: %w", err)
	}

	return buildListResponse(requests, total, filter), nil
}

// MyRequests implements material.RequestService.
func (s *RequestServiceImpl) MyRequests(ctx context.Context, filter material.RequestFilter) (material.ListRequestsResponse, error) {
	userID, _, err := callerFromContext(ctx)
	if err != nil {
		return material.ListRequestsResponse{}, err
	}
	filter.UserID = &userID

	if err := filter.Validate(); err != nil {
		return material.ListRequestsResponse{}, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return material.ListRequestsResponse{}, fmt.Errorf("failed to list material requests: %w", err)
	}

	return buildListResponse(requests, total, filter), nil
}

// Approve implements material.RequestService.
func (s *RequestServiceImpl) Approve(ctx context.Context, id string) (material.RequestResponse, error) {
	deciderID, role, err := callerFromContext(ctx)
	if err != nil {
		return material.RequestResponse{}, err
	}
	if role != user.RoleAdmin {
		return material.RequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return material.RequestResponse{}, err
	}
	if request.Status != material.StatusPending {
		return material.RequestResponse{}, material.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	request.Status = material.StatusApproved
	request.DecidedBy = &deciderID
	request.DecidedAt = &now

	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		return material.RequestResponse{}, fmt.Errorf("failed to approve material request: %w", err)
	}

	return toRequestResponse(request), nil
}

// Reject implements material.RequestService.
func (s *RequestServiceImpl) Reject(ctx context.Context, req material.RejectRequest) (material.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return material.RequestResponse{}, err
	}

	deciderID, role, err := callerFromContext(ctx)
	if err != nil {
		return material.RequestResponse{}, err
	}
	if role != user.RoleAdmin {
		return material.RequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	request, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return material.RequestResponse{}, err
	}
	if request.Status != material.StatusPending {
		return material.RequestResponse{}, material.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	request.Status = material.StatusRejected
	request.DecidedBy = &deciderID
	request.DecidedAt = &now
	request.RejectionReason = &req.Reason

	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		return material.RequestResponse{}, fmt.Errorf("failed to reject material request: %w", err)
	}

	return toRequestResponse(request), nil
}

// MarkDelivered implements material.RequestService. Only approved requests
// can be marked as delivered.
func (s *RequestServiceImpl) MarkDelivered(ctx context.Context, id string) (material.RequestResponse, error) {
	_, role, err := callerFromContext(ctx)
	if err != nil {
		return material.RequestResponse{}, err
	}
	if role != user.RoleAdmin {
		return material.RequestResponse{}, user.ErrAdminPrivilegeRequired
	}

	request, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return material.RequestResponse{}, err
	}
	if request.Status != material.StatusApproved {
		return material.RequestResponse{}, material.ErrRequestNotApproved
	}

	now := time.Now()
	request.Status = material.StatusDelivered
	request.DeliveredAt = &now

	if err := s.requestRepo.UpdateStatus(ctx, request); err != nil {
		return material.RequestResponse{}, fmt.Errorf("failed to mark material request delivered: %w", err)
	}

	return toRequestResponse(request), nil
}

func buildListResponse(requests []material.Request, total int64, filter material.RequestFilter) material.ListRequestsResponse {
	responses := make([]material.RequestResponse, 0, len(requests))
	for _, req := range requests {
		responses = append(responses, toRequestResponse(req))
	}

	return material.ListRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   responses,
	}
}

func toRequestResponse(req material.Request) material.RequestResponse {
	resp := material.RequestResponse{
		ID:              req.ID,
		UserID:          req.UserID,
		ItemName:        req.ItemName,
		Quantity:        req.Quantity,
		Unit:            req.Unit,
		Note:            req.Note,
		Status:          string(req.Status),
		DecidedBy:       req.DecidedBy,
		RejectionReason: req.RejectionReason,
		CreatedAt:       req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       req.UpdatedAt.Format(time.RFC3339),
	}
	if req.UserName != nil {
		resp.UserName = *req.UserName
	}
	if req.NeededBy != nil {
		s := req.NeededBy.Format("2006-01-02")
		resp.NeededBy = &s
	}
	if req.DecidedAt != nil {
		s := req.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &s
	}
	if req.DeliveredAt != nil {
		s := req.DeliveredAt.Format(time.RFC3339)
		resp.DeliveredAt = &s
	}
	return resp
}
