package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldworks/workforce-backend-go/internal/domain/tool"
	"github.com/fieldworks/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ToolHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Return(w http.ResponseWriter, r *http.Request)
}

type ToolHandlerImpl struct {
	toolService tool.ToolService
}

func NewToolHandler(toolService tool.ToolService) ToolHandler {
	return &ToolHandlerImpl{toolService: toolService}
}

// Create implements ToolHandler.
func (h *ToolHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req tool.CreateToolRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTool decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	t, err := h.toolService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tool created successfully", t)
}

// Get implements ToolHandler.
func (h *ToolHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Tool ID is required", nil)
		return
	}

	t, err := h.toolService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, t)
}

// Update implements ToolHandler.
func (h *ToolHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Tool ID is required", nil)
		return
	}

	var req tool.UpdateToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTool decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	t, err := h.toolService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tool updated successfully", t)
}

// Delete implements ToolHandler.
func (h *ToolHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Tool ID is required", nil)
		return
	}

	if err := h.toolService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tool deleted successfully", nil)
}

// List implements ToolHandler.
func (h *ToolHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter tool.ToolFilter

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if assignedTo := r.URL.Query().Get("assigned_to"); assignedTo != "" {
		filter.AssignedTo = &assignedTo
	}
	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}

	tools, err := h.toolService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, tools.Tools, &response.Meta{
		Page:       tools.Page,
		Limit:      tools.Limit,
		TotalItems: tools.TotalCount,
		TotalPages: tools.TotalPages,
	})
}

// Assign implements ToolHandler.
func (h *ToolHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Tool ID is required", nil)
		return
	}

	var req tool.AssignToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AssignTool decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	t, err := h.toolService.Assign(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Tool assigned", "tool_id", id, "user_id", req.UserID)
	response.SuccessWithMessage(w, "Tool assigned successfully", t)
}

// Return implements ToolHandler.
func (h *ToolHandlerImpl) Return(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Tool ID is required", nil)
		return
	}

	t, err := h.toolService.Return(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Tool returned", "tool_id", id)
	response.SuccessWithMessage(w, "Tool returned successfully", t)
}
