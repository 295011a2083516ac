package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// InvoiceService defines the behavior needed by InvoiceHandler.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input usecase.CreateInvoiceInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, number string) (*domain.Invoice, error)
	AcceptInvoice(ctx context.Context, number, fromAccountID string) (*domain.Invoice, error)
	RejectInvoice(ctx context.Context, number string) (*domain.Invoice, error)
	PayInvoice(ctx context.Context, number string) (*usecase.TransferResult, error)
}

// InvoiceHandler handles invoice HTTP requests.
type InvoiceHandler struct {
	invoiceUC InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceUC InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceUC: invoiceUC}
}

// Create issues an invoice.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInvoiceRequest
	if !decode(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUC.CreateInvoice(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create invoice", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvoiceFromDomain(invoice))
}

// Get retrieves an invoice by number.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceUC.GetInvoice(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeDomainError(w, "failed to get invoice", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Accept binds the paying account to an invoice.
func (h *InvoiceHandler) Accept(w http.ResponseWriter, r *http.Request) {
	var req dto.AcceptInvoiceRequest
	if !decode(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUC.AcceptInvoice(r.Context(), chi.URLParam(r, "number"), req.FromAccountID)
	if err != nil {
		writeDomainError(w, "failed to accept invoice", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Reject refuses an invoice.
func (h *InvoiceHandler) Reject(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceUC.RejectInvoice(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeDomainError(w, "failed to reject invoice", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Pay settles an accepted invoice.
func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	result, err := h.invoiceUC.PayInvoice(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		writeDomainError(w, "failed to pay invoice", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromResult(result))
}
