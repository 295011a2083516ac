package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// CardService defines the behavior needed by CardHandler.
type CardService interface {
	IssueCard(ctx context.Context, input usecase.IssueCardInput) (*domain.Card, error)
	GetCard(ctx context.Context, id string) (*domain.Card, error)
	Purchase(ctx context.Context, input usecase.PurchaseInput) (*usecase.TransferResult, error)
	SetLimit(ctx context.Context, cardID string, limit decimal.Decimal, pin string) (*domain.Card, error)
	UnsetLimit(ctx context.Context, cardID, pin string) (*domain.Card, error)
}

// CardHandler handles card-related HTTP requests.
type CardHandler struct {
	cardUC CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardUC CardService) *CardHandler {
	return &CardHandler{cardUC: cardUC}
}

// Create issues a card.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.IssueCardRequest
	if !decode(w, r, &req) {
		return
	}

	card, err := h.cardUC.IssueCard(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to issue card", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CardFromDomain(card))
}

// Get retrieves a card by ID.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	card, err := h.cardUC.GetCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get card", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromDomain(card))
}

// Purchase pays a merchant with a card.
func (h *CardHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req dto.PurchaseRequest
	if !decode(w, r, &req) {
		return
	}

	result, err := h.cardUC.Purchase(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, "purchase failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransferFromResult(result))
}

// SetLimit caps single purchases. A zero limit removes the cap.
func (h *CardHandler) SetLimit(w http.ResponseWriter, r *http.Request) {
	var req dto.CardLimitRequest
	if !decode(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")

	var (
		card *domain.Card
		err  error
	)
	if req.Limit.IsZero() {
		card, err = h.cardUC.UnsetLimit(r.Context(), id, req.PIN)
	} else {
		card, err = h.cardUC.SetLimit(r.Context(), id, req.Limit, req.PIN)
	}
	if err != nil {
		writeDomainError(w, "failed to change limit", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromDomain(card))
}
