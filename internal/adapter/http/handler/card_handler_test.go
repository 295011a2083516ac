package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

type cardServiceStub struct {
	CardService
	card       *domain.Card
	purchaseFn func(ctx context.Context, input usecase.PurchaseInput) (*usecase.TransferResult, error)
	setLimit   decimal.Decimal
	unset      bool
}

func (s *cardServiceStub) IssueCard(ctx context.Context, input usecase.IssueCardInput) (*domain.Card, error) {
	return s.card, nil
}

func (s *cardServiceStub) Purchase(ctx context.Context, input usecase.PurchaseInput) (*usecase.TransferResult, error) {
	return s.purchaseFn(ctx, input)
}

func (s *cardServiceStub) SetLimit(ctx context.Context, cardID string, limit decimal.Decimal, pin string) (*domain.Card, error) {
	s.setLimit = limit
	return s.card, nil
}

func (s *cardServiceStub) UnsetLimit(ctx context.Context, cardID, pin string) (*domain.Card, error) {
	s.unset = true
	return s.card, nil
}

func testCard(t *testing.T) *domain.Card {
	t.Helper()
	card, err := domain.NewCard("card-1", domain.CardTypeDebit, testAccount(t), "1234")
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}
	return card
}

func TestCardHandler_Create(t *testing.T) {
	h := NewCardHandler(&cardServiceStub{card: testCard(t)})

	tests := []struct {
		name string
		req  dto.IssueCardRequest
		want int
	}{
		{name: "issued", req: dto.IssueCardRequest{AccountID: "acc-1", Type: "debit", PIN: "1234"}, want: http.StatusCreated},
		{name: "short pin", req: dto.IssueCardRequest{AccountID: "acc-1", Type: "debit", PIN: "12"}, want: http.StatusBadRequest},
		{name: "non-numeric pin", req: dto.IssueCardRequest{AccountID: "acc-1", Type: "debit", PIN: "abcd"}, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Create(rec, postJSON(t, tt.req))

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCardHandler_CreateHidesPIN(t *testing.T) {
	h := NewCardHandler(&cardServiceStub{card: testCard(t)})

	rec := httptest.NewRecorder()
	h.Create(rec, postJSON(t, dto.IssueCardRequest{AccountID: "acc-1", Type: "debit", PIN: "1234"}))

	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := raw["pin"]; ok {
		t.Fatalf("pin leaked in response: %s", rec.Body.String())
	}
	if _, ok := raw["limit"]; ok {
		t.Fatalf("expected no limit on a new card")
	}
}

func TestCardHandler_Purchase(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "paid", want: http.StatusCreated},
		{name: "bad pin", err: domain.ErrInvalidPIN, want: http.StatusUnauthorized},
		{name: "over limit", err: domain.ErrLimitExceeded, want: http.StatusUnprocessableEntity},
		{name: "unknown merchant", err: domain.ErrCustomerNotFound, want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got usecase.PurchaseInput
			stub := &cardServiceStub{purchaseFn: func(ctx context.Context, input usecase.PurchaseInput) (*usecase.TransferResult, error) {
				got = input
				if tt.err != nil {
					return nil, tt.err
				}
				return &usecase.TransferResult{}, nil
			}}
			h := NewCardHandler(stub)

			req := withURLParams(postJSON(t, dto.PurchaseRequest{MerchantID: "cus-2", Amount: dec("50"), Currency: "EUR", PIN: "1234"}), "id", "card-1")
			rec := httptest.NewRecorder()
			h.Purchase(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if got.CardID != "card-1" || !got.Amount.Equal(dec("50")) {
				t.Fatalf("unexpected input %+v", got)
			}
		})
	}
}

func TestCardHandler_SetLimit(t *testing.T) {
	t.Run("positive limit sets it", func(t *testing.T) {
		stub := &cardServiceStub{card: testCard(t)}
		h := NewCardHandler(stub)

		rec := httptest.NewRecorder()
		h.SetLimit(rec, withURLParams(postJSON(t, dto.CardLimitRequest{Limit: dec("200"), PIN: "1234"}), "id", "card-1"))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.setLimit.Equal(dec("200")) || stub.unset {
			t.Fatalf("expected SetLimit(200), got limit=%s unset=%v", stub.setLimit, stub.unset)
		}
	})

	t.Run("zero limit removes it", func(t *testing.T) {
		stub := &cardServiceStub{card: testCard(t)}
		h := NewCardHandler(stub)

		rec := httptest.NewRecorder()
		h.SetLimit(rec, withURLParams(postJSON(t, dto.CardLimitRequest{PIN: "1234"}), "id", "card-1"))

		if rec.Code != http.StatusOK || !stub.unset {
			t.Fatalf("expected UnsetLimit, got code=%d unset=%v", rec.Code, stub.unset)
		}
	})
}
