package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/exchange"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newCustomer(t *testing.T, id string, rates domain.Converter) *domain.Customer {
	t.Helper()
	return domain.NewCustomer(id, "Jan", "Novak", id+"@example.com", "+420123456789", rates)
}

func openAccount(t *testing.T, id string, owner *domain.Customer, currency domain.Currency, rates domain.Converter) *domain.Account {
	t.Helper()
	acc, err := domain.NewAccount(id, owner, currency, rates)
	require.NoError(t, err)
	return acc
}

func fundedAccount(t *testing.T, id string, owner *domain.Customer, currency domain.Currency, rates domain.Converter, balance string) *domain.Account {
	t.Helper()
	acc := openAccount(t, id, owner, currency, rates)
	if balance != "0" {
		require.NoError(t, acc.Deposit(dec(balance), currency))
	}
	return acc
}

func newCard(t *testing.T, id string, acc *domain.Account, pin string) *domain.Card {
	t.Helper()
	card, err := domain.NewCard(id, domain.CardTypeDebit, acc, pin)
	require.NoError(t, err)
	return card
}

func newRates() *exchange.Table {
	return exchange.NewTable()
}
