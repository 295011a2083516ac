package usecase

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// ExchangeUseCase manages the shared exchange rate table.
type ExchangeUseCase struct {
	rates   RateTable
	metrics MetricsRecorder
	logger  zerolog.Logger
}

// NewExchangeUseCase creates a new ExchangeUseCase.
func NewExchangeUseCase(rates RateTable, metrics MetricsRecorder, logger zerolog.Logger) *ExchangeUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	return &ExchangeUseCase{
		rates:   rates,
		metrics: metrics,
		logger:  logger,
	}
}

// RateView is a directed rate as seen by clients.
type RateView struct {
	From     domain.Currency
	To       domain.Currency
	Rate     decimal.Decimal
	Disabled bool
}

// ListRates returns every defined rate in a stable order.
func (uc *ExchangeUseCase) ListRates() []RateView {
	rates := uc.rates.Rates()
	views := make([]RateView, 0, len(rates))
	for _, r := range rates {
		views = append(views, RateView{
			From:     r.From,
			To:       r.To,
			Rate:     r.Rate,
			Disabled: uc.rates.IsDisabled(r.From, r.To),
		})
	}
	return views
}

// GetRate returns the rate for one currency pair.
func (uc *ExchangeUseCase) GetRate(from, to string) (*RateView, error) {
	f, t, err := parsePair(from, to)
	if err != nil {
		return nil, err
	}

	rate, err := uc.rates.Rate(f, t)
	if err != nil {
		return nil, err
	}
	return &RateView{From: f, To: t, Rate: rate, Disabled: uc.rates.IsDisabled(f, t)}, nil
}

// Convert converts amount between two currencies.
func (uc *ExchangeUseCase) Convert(from, to string, amount decimal.Decimal) (decimal.Decimal, error) {
	f, t, err := parsePair(from, to)
	if err != nil {
		return decimal.Zero, err
	}

	converted, err := uc.rates.Convert(f, t, amount)
	uc.metrics.RateOperation("convert", resultLabel(err))
	return converted, err
}

// ChangeRate replaces the rate of a directed pair.
func (uc *ExchangeUseCase) ChangeRate(from, to string, rate decimal.Decimal) error {
	f, t, err := parsePair(from, to)
	if err != nil {
		return err
	}

	err = uc.rates.ChangeRate(f, t, rate)
	uc.metrics.RateOperation("change", resultLabel(err))
	if err != nil {
		return err
	}

	uc.logger.Info().
		Str("from", f.String()).
		Str("to", t.String()).
		Str("rate", rate.String()).
		Msg("exchange rate changed")
	return nil
}

// Disable blocks conversion between two currencies in both directions.
func (uc *ExchangeUseCase) Disable(a, b string) error {
	return uc.toggle("disable", a, b, uc.rates.Disable)
}

// Enable lifts a block set by Disable.
func (uc *ExchangeUseCase) Enable(a, b string) error {
	return uc.toggle("enable", a, b, uc.rates.Enable)
}

func (uc *ExchangeUseCase) toggle(operation, a, b string, apply func(a, b domain.Currency) error) error {
	x, y, err := parsePair(a, b)
	if err != nil {
		return err
	}

	err = apply(x, y)
	uc.metrics.RateOperation(operation, resultLabel(err))
	if err != nil {
		return err
	}

	uc.logger.Info().Str("a", x.String()).Str("b", y.String()).Msgf("exchange pair %sd", operation)
	return nil
}

func parsePair(from, to string) (domain.Currency, domain.Currency, error) {
	f, err := domain.ParseCurrency(from)
	if err != nil {
		return "", "", err
	}
	t, err := domain.ParseCurrency(to)
	if err != nil {
		return "", "", err
	}
	return f, t, nil
}
