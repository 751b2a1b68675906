package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldworks/workforce-backend-go/internal/domain/material"
	"github.com/fieldworks/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type MaterialHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	MarkDelivered(w http.ResponseWriter, r *http.Request)
}

type MaterialHandlerImpl struct {
	requestService material.RequestService
}

func NewMaterialHandler(requestService material.RequestService) MaterialHandler {
	return &MaterialHandlerImpl{requestService: requestService}
}

// Submit implements MaterialHandler.
func (h *MaterialHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req material.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitMaterial decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Material request submitted successfully", request)
}

// Get implements MaterialHandler.
func (h *MaterialHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.requestService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// List implements MaterialHandler.
func (h *MaterialHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := materialFilterFromQuery(r)

	requests, err := h.requestService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests.Requests, &response.Meta{
		Page:       requests.Page,
		Limit:      requests.Limit,
		TotalItems: requests.TotalCount,
		TotalPages: requests.TotalPages,
	})
}

// MyRequests implements MaterialHandler.
func (h *MaterialHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	filter := materialFilterFromQuery(r)

	requests, err := h.requestService.MyRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests.Requests, &response.Meta{
		Page:       requests.Page,
		Limit:      requests.Limit,
		TotalItems: requests.TotalCount,
		TotalPages: requests.TotalPages,
	})
}

// Approve implements MaterialHandler.
func (h *MaterialHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.requestService.Approve(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Material request approved", "request_id", id)
	response.SuccessWithMessage(w, "Material request approved", request)
}

// Reject implements MaterialHandler.
func (h *MaterialHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req material.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectMaterial decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	request, err := h.requestService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Material request rejected", "request_id", id)
	response.SuccessWithMessage(w, "Material request rejected", request)
}

// MarkDelivered implements MaterialHandler.
func (h *MaterialHandlerImpl) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.requestService.MarkDelivered(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Material request delivered", "request_id", id)
	response.SuccessWithMessage(w, "Material request marked as delivered", request)
}

func materialFilterFromQuery(r *http.Request) material.RequestFilter {
	var filter material.RequestFilter

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
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

	return filter
}
