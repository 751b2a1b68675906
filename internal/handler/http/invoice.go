package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldworks/workforce-backend-go/internal/domain/invoice"
	"github.com/fieldworks/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InvoiceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MarkSent(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)
}

type InvoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &InvoiceHandlerImpl{invoiceService: invoiceService}
}

// Create implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req invoice.CreateInvoiceRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateInvoice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	inv, err := h.invoiceService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Invoice created", "invoice_number", inv.InvoiceNumber)
	response.Created(w, "Invoice created successfully", inv)
}

// Get implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	inv, err := h.invoiceService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, inv)
}

// Update implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	var req invoice.UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateInvoice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	inv, err := h.invoiceService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice updated successfully", inv)
}

// Delete implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	if err := h.invoiceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice deleted successfully", nil)
}

// List implements InvoiceHandler.
func (h *InvoiceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter invoice.InvoiceFilter

	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = &status
	}
	if clientName := r.URL.Query().Get("client_name"); clientName != "" {
		filter.ClientName = &clientName
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

	invoices, err := h.invoiceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, invoices.Invoices, &response.Meta{
		Page:       invoices.Page,
		Limit:      invoices.Limit,
		TotalItems: invoices.TotalCount,
		TotalPages: invoices.TotalPages,
	})
}

// MarkSent implements InvoiceHandler.
func (h *InvoiceHandlerImpl) MarkSent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	inv, err := h.invoiceService.MarkSent(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Invoice marked as sent", "invoice_id", id)
	response.SuccessWithMessage(w, "Invoice marked as sent", inv)
}

// MarkPaid implements InvoiceHandler.
func (h *InvoiceHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	inv, err := h.invoiceService.MarkPaid(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Invoice marked as paid", "invoice_id", id)
	response.SuccessWithMessage(w, "Invoice marked as paid", inv)
}
