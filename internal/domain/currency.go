package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 code supported by the bank.
type Currency string

const (
	EUR Currency = "EUR"
	USD Currency = "USD"
	GBP Currency = "GBP"
)

// ReferenceCurrency is the currency aggregate balances are classified in.
const ReferenceCurrency = EUR

var validCurrencies = map[Currency]bool{
	EUR: true,
	USD: true,
	GBP: true,
}

// Currencies returns the supported currencies in a fixed order.
func Currencies() []Currency {
	return []Currency{EUR, USD, GBP}
}

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool {
	return validCurrencies[c]
}

func (c Currency) String() string {
	return string(c)
}

// ParseCurrency normalizes and validates a currency code.
func ParseCurrency(code string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return c, nil
}

// Converter converts amounts between currencies.
type Converter interface {
	Convert(from, to Currency, amount decimal.Decimal) (decimal.Decimal, error)
}
