package tool

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fieldworks/workforce-backend-go/internal/domain/tool"
	"github.com/fieldworks/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

type ToolServiceImpl struct {
	toolRepo tool.ToolRepository
	userRepo user.UserRepository
}

func NewToolService(toolRepo tool.ToolRepository, userRepo user.UserRepository) tool.ToolService {
	return &ToolServiceImpl{
		toolRepo: toolRepo,
		userRepo: userRepo,
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

// Create implements tool.ToolService.
func (s *ToolServiceImpl) Create(ctx context.Context, req tool.CreateToolRequest) (tool.ToolResponse, error) {
	if err := req.Validate(); err != nil {
		return tool.ToolResponse{}, err
	}

	_, role, err := callerFromContext(ctx)
	if err != nil {
		return tool.ToolResponse{}, err
	}
	if role != user.RoleAdmin {
		return tool.ToolResponse{}, user.ErrAdminPrivilegeRequired
	}

	t := tool.Tool{
		Name:         req.Name,
		SerialNumber: req.SerialNumber,
		Description:  req.Description,
		Status:       tool.StatusAvailable,
	}

	created, err := s.toolRepo.Create(ctx, t)
	if err != nil {
		return tool.ToolResponse{}, fmt.Errorf("failed to create tool: %w", err)
	}

	return toToolResponse(created), nil
}

// Get implements tool.ToolService.
func (s *ToolServiceImpl) Get(ctx context.Context, id string) (tool.ToolResponse, error) {
	if _, _, err := callerFromContext(ctx); err != nil {
		return tool.ToolResponse{}, err
	}

	t, err := s.toolRepo.GetByID(ctx, id)
	if err != nil {
		return tool.ToolResponse{}, err
	}

	return toToolResponse(t), nil
}

// Update implements tool.ToolService. A status change via update never
// touches an active assignment; assigned tools must be returned first.
func (s *ToolServiceImpl) Update(ctx context.Context, req tool.UpdateToolRequest) (tool.ToolResponse, error) {
	if err := req.Validate(); err != nil {
		return tool.ToolResponse{}, err
	}

	_, role, err := callerFromContext(ctx)
	if err != nil {
		return tool.ToolResponse{}, err
	}
	if role != user.RoleAdmin {
		return tool.ToolResponse{}, user.ErrAdminPrivilegeRequired
	}

	t, err := s.toolRepo.GetByID(ctx, req.ID)
	if err != nil {
		return tool.ToolResponse{}, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.SerialNumber != nil {
		t.SerialNumber = req.SerialNumber
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Status != nil {
		if t.Status == tool.StatusAssigned {
			return tool.ToolResponse{}, tool.ErrToolNotAvailable
		}
		t.Status = tool.Status(strings.ToLower(*req.Status))
	}

	if err := s.toolRepo.Update(ctx, t); err != nil {
		return tool.ToolResponse{}, fmt.Errorf("failed to update tool: %w", err)
	}

	return toToolResponse(t), nil
}

// Delete implements tool.ToolService.
func (s *ToolServiceImpl) Delete(ctx context.Context, id string) error {
	_, role, err := callerFromContext(ctx)
	if err != nil {
		return err
	}
	if role != user.RoleAdmin {
		return user.ErrAdminPrivilegeRequired
	}

	t, err := s.toolRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Status == tool.StatusAssigned {
		return tool.ErrToolNotAvailable
	}

	return s.toolRepo.Delete(ctx, id)
}

// List implements tool.ToolService.
func (s *ToolServiceImpl) List(ctx context.Context, filter tool.ToolFilter) (tool.ListToolsResponse, error) {
	if err := filter.Validate(); err != nil {
		return tool.ListToolsResponse{}, err
	}

	tools, total, err := s.toolRepo.List(ctx, filter)
	if err != nil {
		return tool.ListToolsResponse{}, fmt.Errorf("failed to list tools: %w", err)
	}

	responses := make([]tool.ToolResponse, 0, len(tools))
	for _, t := range tools {
		responses = append(responses, toToolResponse(t))
	}

	return tool.ListToolsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Tools:      responses,
	}, nil
}

// Assign implements tool.ToolService.
func (s *ToolServiceImpl) Assign(ctx context.Context, req tool.AssignToolRequest) (tool.ToolResponse, error) {
	if err := req.Validate(); err != nil {
		return tool.ToolResponse{}, err
	}

	_, role, err := callerFromContext(ctx)
	if err != nil {
		return tool.ToolResponse{}, err
	}
	if role != user.RoleAdmin {
		return tool.ToolResponse{}, user.ErrAdminPrivilegeRequired
	}

	t, err := s.toolRepo.GetByID(ctx, req.ID)
	if err != nil {
		return tool.ToolResponse{}, err
	}
	if t.Status == tool.StatusRetired {
		return tool.ToolResponse{}, tool.ErrToolRetired
	}
	if t.Status != tool.StatusAvailable {
		return tool.ToolResponse{}, tool.ErrToolNotAvailable
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return tool.ToolResponse{}, err
	}

	now := time.Now()
	t.Status = tool.StatusAssigned
	t.AssignedTo = &req.UserID
	t.AssignedAt = &now

	if err := s.toolRepo.Update(ctx, t); err != nil {
		return tool.ToolResponse{}, fmt.Errorf("failed to assign tool: %w", err)
	}

	return toToolResponse(t), nil
}

// Return implements tool.ToolService. The assignee or an admin can return
// an assigned tool, which makes it available again.
func (s *ToolServiceImpl) Return(ctx context.Context, id string) (tool.ToolResponse, error) {
	userID, role, err := callerFromContext(ctx)
	if err != nil {
		return tool.ToolResponse{}, err
	}

	t, err := s.toolRepo.GetByID(ctx, id)
	if err != nil {
		return tool.ToolResponse{}, err
	}
	if t.Status != tool.StatusAssigned || t.AssignedTo == nil {
		return tool.ToolResponse{}, tool.ErrToolNotAssigned
	}
	if role != user.RoleAdmin && *t.AssignedTo != userID {
		return tool.ToolResponse{}, user.ErrAdminPrivilegeRequired
	}

	t.Status = tool.StatusAvailable
	t.AssignedTo = nil
	t.AssignedAt = nil
	t.AssigneeName = nil

	if err := s.toolRepo.Update(ctx, t); err != nil {
		return tool.ToolResponse{}, fmt.Errorf("failed to return tool: %w", err)
	}

	return toToolResponse(t), nil
}

func toToolResponse(t tool.Tool) tool.ToolResponse {
	resp := tool.ToolResponse{
		ID:           t.ID,
		Name:         t.Name,
		SerialNumber: t.SerialNumber,
		Description:  t.Description,
		Status:       string(t.Status),
		AssignedTo:   t.AssignedTo,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    t.UpdatedAt.Format(time.RFC3339),
	}
	if t.AssigneeName != nil {
		resp.AssigneeName = *t.AssigneeName
	}
	if t.AssignedAt != nil {
		s := t.AssignedAt.Format(time.RFC3339)
		resp.AssignedAt = &s
	}
	return resp
}
