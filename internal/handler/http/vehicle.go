package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldworks/workforce-backend-go/internal/domain/vehicle"
	"github.com/fieldworks/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type VehicleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	LogTrip(w http.ResponseWriter, r *http.Request)
	ListTripLogs(w http.ResponseWriter, r *http.Request)
}

type VehicleHandlerImpl struct {
	vehicleService vehicle.VehicleService
}

func NewVehicleHandler(vehicleService vehicle.VehicleService) VehicleHandler {
	return &VehicleHandlerImpl{vehicleService: vehicleService}
}

// Create implements VehicleHandler.
func (h *VehicleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req vehicle.CreateVehicleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateVehicle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	v, err := h.vehicleService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Vehicle registered", "plate_number", v.PlateNumber)
	response.Created(w, "Vehicle registered successfully", v)
}

// Get implements VehicleHandler.
func (h *VehicleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vehicle ID is required", nil)
		return
	}

	v, err := h.vehicleService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, v)
}

// Update implements VehicleHandler.
func (h *VehicleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vehicle ID is required", nil)
		return
	}

	var req vehicle.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateVehicle decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	v, err := h.vehicleService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vehicle updated successfully", v)
}

// List implements VehicleHandler.
func (h *VehicleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter vehicle.VehicleFilter

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

	vehicles, err := h.vehicleService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, vehicles.Vehicles, &response.Meta{
		Page:       vehicles.Page,
		Limit:      vehicles.Limit,
		TotalItems: vehicles.TotalCount,
		TotalPages: vehicles.TotalPages,
	})
}

// LogTrip implements VehicleHandler.
func (h *VehicleHandlerImpl) LogTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Vehicle ID is required", nil)
		return
	}

	var req vehicle.CreateTripLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("LogTrip decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.VehicleID = id

	log, err := h.vehicleService.LogTrip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Trip logged", "vehicle_id", id, "distance", log.Distance)
	response.Created(w, "Trip logged successfully", log)
}

// ListTripLogs implements VehicleHandler.
func (h *VehicleHandlerImpl) ListTripLogs(w http.ResponseWriter, r *http.Request) {
	var filter vehicle.TripLogFilter

	if vehicleID := chi.URLParam(r, "id"); vehicleID != "" {
		filter.VehicleID = &vehicleID
	}
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
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

	logs, err := h.vehicleService.ListTripLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, logs.TripLogs, &response.Meta{
		Page:       logs.Page,
		Limit:      logs.Limit,
		TotalItems: logs.TotalCount,
		TotalPages: logs.TotalPages,
	})
}
