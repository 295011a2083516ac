package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/usecase"
)

// ExchangeService defines the behavior needed by ExchangeHandler.
type ExchangeService interface {
	ListRates() []usecase.RateView
	GetRate(from, to string) (*usecase.RateView, error)
	Convert(from, to string, amount decimal.Decimal) (decimal.Decimal, error)
	ChangeRate(from, to string, rate decimal.Decimal) error
	Disable(a, b string) error
	Enable(a, b string) error
}

// ExchangeHandler handles exchange rate HTTP requests.
type ExchangeHandler struct {
	exchangeUC ExchangeService
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeUC ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeUC: exchangeUC}
}

// List lists every rate.
func (h *ExchangeHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.RatesFromViews(h.exchangeUC.ListRates()))
}

// Get retrieves the rate of one directed pair.
func (h *ExchangeHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.exchangeUC.GetRate(chi.URLParam(r, "from"), chi.URLParam(r, "to"))
	if err != nil {
		writeDomainError(w, "failed to get rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RateFromView(view))
}

// Convert converts the amount query parameter between two currencies.
func (h *ExchangeHandler) Convert(w http.ResponseWriter, r *http.Request) {
	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	from, to := chi.URLParam(r, "from"), chi.URLParam(r, "to")
	result, err := h.exchangeUC.Convert(from, to, amount)
	if err != nil {
		writeDomainError(w, "conversion failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ConversionResponse{From: from, To: to, Amount: amount, Result: result})
}

// Change replaces a directed rate.
func (h *ExchangeHandler) Change(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangeRateRequest
	if !decode(w, r, &req) {
		return
	}

	if err := h.exchangeUC.ChangeRate(req.From, req.To, req.Rate); err != nil {
		writeDomainError(w, "failed to change rate", err)
		return
	}

	view, err := h.exchangeUC.GetRate(req.From, req.To)
	if err != nil {
		writeDomainError(w, "failed to get rate", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RateFromView(view))
}

// Disable blocks conversion between a pair of currencies.
func (h *ExchangeHandler) Disable(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "disable", h.exchangeUC.Disable)
}

// Enable lifts a block set by Disable.
func (h *ExchangeHandler) Enable(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, "enable", h.exchangeUC.Enable)
}

func (h *ExchangeHandler) toggle(w http.ResponseWriter, r *http.Request, operation string, apply func(a, b string) error) {
	var req dto.CurrencyPairRequest
	if !decode(w, r, &req) {
		return
	}

	if err := apply(req.A, req.B); err != nil {
		writeDomainError(w, "failed to "+operation+" rate", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
