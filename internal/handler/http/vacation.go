package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldworks/workforce-backend-go/internal/domain/vacation"
	"github.com/fieldworks/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VacationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type VacationHandlerImpl struct {
	requestService vacation.RequestService
}

func NewVacationHandler(requestService vacation.RequestService) VacationHandler {
	return &VacationHandlerImpl{requestService: requestService}
}

// Submit implements VacationHandler.
func (h *VacationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req vacation.CreateRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitVacation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vacation request submitted successfully", request)
}

// Get implements VacationHandler.
func (h *VacationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
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

// List implements VacationHandler.
func (h *VacationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := vacationFilterFromQuery(r)

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

// MyRequests implements VacationHandler.
func (h *VacationHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	filter := vacationFilterFromQuery(r)

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

// Approve implements VacationHandler.
func (h *VacationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
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

	slog.Info("Vacation request approved", "request_id", id)
	response.SuccessWithMessage(w, "Vacation request approved", request)
}

// Reject implements VacationHandler.
func (h *VacationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	var req vacation.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectVacation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	request, err := h.requestService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Vacation request rejected", "request_id", id)
	response.SuccessWithMessage(w, "Vacation request rejected", request)
}

// Cancel implements VacationHandler.
func (h *VacationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.requestService.Cancel(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request cancelled", request)
}

func vacationFilterFromQuery(r *http.Request) vacation.RequestFilter {
	var filter vacation.RequestFilter

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
