package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// CustomerService defines the behavior needed by CustomerHandler.
type CustomerService interface {
	AddCustomer(ctx context.Context, input usecase.AddCustomerInput) (*domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, input usecase.ListCustomersInput) ([]*domain.Customer, error)
	RemoveCustomer(ctx context.Context, id string) error
	NotifyCustomer(ctx context.Context, id, message string, channel domain.NotificationChannel) error
	GetTierReport(ctx context.Context, id string) (*usecase.TierReport, error)
}

// CustomerHandler handles customer-related HTTP requests.
type CustomerHandler struct {
	customerUC CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerUC CustomerService) *CustomerHandler {
	return &CustomerHandler{customerUC: customerUC}
}

// Create registers a customer.
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCustomerRequest
	if !decode(w, r, &req) {
		return
	}

	customer, err := h.customerUC.AddCustomer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to add customer", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CustomerFromDomain(customer))
}

// Get retrieves a customer by ID.
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customerUC.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get customer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomerFromDomain(customer))
}

// List lists customers.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerUC.ListCustomers(r.Context(), usecase.ListCustomersInput{
		Limit:  parseIntQuery(r, "limit", usecase.DefaultListLimit),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to list customers", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CustomersFromDomain(customers))
}

// Delete closes every account of a customer and removes them.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customerUC.RemoveCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, "failed to remove customer", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Notify sends a message to a customer.
func (h *CustomerHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req dto.NotifyRequest
	if !decode(w, r, &req) {
		return
	}

	channel, err := domain.ParseChannel(req.Channel)
	if err != nil {
		writeDomainError(w, "invalid channel", err)
		return
	}

	if err := h.customerUC.NotifyCustomer(r.Context(), chi.URLParam(r, "id"), req.Message, channel); err != nil {
		writeDomainError(w, "failed to notify customer", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Tier reports the customer's tier and the policy it implies.
func (h *CustomerHandler) Tier(w http.ResponseWriter, r *http.Request) {
	report, err := h.customerUC.GetTierReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to classify customer", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TierFromReport(*report))
}
