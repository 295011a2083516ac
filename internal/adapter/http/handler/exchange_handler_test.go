package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/adapter/http/dto"
	"github.com/iho/gobank/internal/exchange"
	"github.com/iho/gobank/internal/usecase"
)

func newExchangeHandler() *ExchangeHandler {
	return NewExchangeHandler(usecase.NewExchangeUseCase(exchange.NewTable(), nil, zerolog.Nop()))
}

func TestExchangeHandler_Convert(t *testing.T) {
	handler := newExchangeHandler()

	tests := []struct {
		name   string
		target string
		from   string
		to     string
		want   int
		result string
	}{
		{name: "eur to usd", target: "/?amount=100", from: "EUR", to: "USD", want: http.StatusOK, result: "110"},
		{name: "bad amount", target: "/?amount=lots", from: "EUR", to: "USD", want: http.StatusBadRequest},
		{name: "unknown currency", target: "/?amount=1", from: "EUR", to: "CZK", want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.Convert(rec, withURLParams(httptest.NewRequest(http.MethodGet, tt.target, nil), "from", tt.from, "to", tt.to))

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			if tt.result == "" {
				return
			}
			var resp dto.ConversionResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if !resp.Result.Equal(dec(tt.result)) {
				t.Fatalf("expected %s, got %s", tt.result, resp.Result)
			}
		})
	}
}

func TestExchangeHandler_DisableThenConvert(t *testing.T) {
	handler := newExchangeHandler()

	rec := httptest.NewRecorder()
	handler.Disable(rec, postJSON(t, dto.CurrencyPairRequest{A: "USD", B: "EUR"}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.Disable(rec, postJSON(t, dto.CurrencyPairRequest{A: "EUR", B: "USD"}))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for repeated disable, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Convert(rec, withURLParams(httptest.NewRequest(http.MethodGet, "/?amount=1", nil), "from", "EUR", "to", "USD"))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for disabled pair, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Enable(rec, postJSON(t, dto.CurrencyPairRequest{A: "EUR", B: "USD"}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestExchangeHandler_Change(t *testing.T) {
	handler := newExchangeHandler()

	rec := httptest.NewRecorder()
	handler.Change(rec, postJSON(t, dto.ChangeRateRequest{From: "EUR", To: "GBP", Rate: dec("0.9")}))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.RateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Rate.Equal(dec("0.9")) {
		t.Fatalf("expected rate 0.9, got %s", resp.Rate)
	}

	rec = httptest.NewRecorder()
	handler.Change(rec, postJSON(t, dto.ChangeRateRequest{From: "EUR", To: "GBP", Rate: dec("-1")}))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative rate, got %d", rec.Code)
	}
}
