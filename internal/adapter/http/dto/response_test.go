package dto

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/exchange"
	"github.com/iho/gobank/internal/usecase"
)

func fixture(t *testing.T) (*domain.Customer, *domain.Account) {
	t.Helper()
	customer := domain.NewCustomer("cus-1", "Jan", "Novak", "jan@example.com", "", exchange.NewTable())
	account, err := domain.NewAccount("acc-1", customer, domain.EUR, exchange.NewTable())
	if err != nil {
		t.Fatalf("NewAccount: %v", err)
	}
	if err := account.Deposit(decimal.RequireFromString("123.45"), domain.EUR); err != nil {
		t.Fatalf("Deposit: %v", err)
	}
	return customer, account
}

func TestCustomerFromDomain(t *testing.T) {
	customer, account := fixture(t)

	resp := CustomerFromDomain(customer)
	if resp.ID != "cus-1" || resp.Email != "jan@example.com" {
		t.Fatalf("unexpected customer response: %+v", resp)
	}
	if len(resp.AccountIDs) != 1 || resp.AccountIDs[0] != account.ID() {
		t.Fatalf("AccountIDs = %v", resp.AccountIDs)
	}

	list := CustomersFromDomain([]*domain.Customer{customer})
	if len(list) != 1 || list[0].ID != customer.ID {
		t.Fatalf("CustomersFromDomain returned %+v", list)
	}
}

func TestAccountFromDomain(t *testing.T) {
	_, account := fixture(t)

	resp := AccountFromDomain(account)
	if resp.ID != "acc-1" || resp.CustomerID != "cus-1" || resp.Currency != "EUR" {
		t.Fatalf("unexpected account response: %+v", resp)
	}
	if !resp.Balance.Equal(decimal.RequireFromString("123.45")) || !resp.Open {
		t.Fatalf("unexpected account state: %+v", resp)
	}
}

func TestTransferFromResult(t *testing.T) {
	_, account := fixture(t)

	tx, err := domain.NewTransaction(nil, account, decimal.NewFromInt(10), domain.EUR, "Deposit")
	if err != nil {
		t.Fatalf("NewTransaction: %v", err)
	}
	n := 0
	entries := domain.EntriesFor(tx, "atm-1", func() string { n++; return "e" })

	resp := TransferFromResult(&usecase.TransferResult{Transaction: tx, Entries: entries})
	if resp.Transaction == nil || resp.Transaction.FromAccountID != "" || resp.Transaction.ToAccountID != "acc-1" {
		t.Fatalf("unexpected transaction: %+v", resp.Transaction)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].DeviceID != "atm-1" || resp.Entries[0].Description != "Deposit" {
		t.Fatalf("unexpected entries: %+v", resp.Entries)
	}

	empty := TransferFromResult(&usecase.TransferResult{})
	if empty.Transaction != nil || len(empty.Entries) != 0 {
		t.Fatalf("empty result converted to %+v", empty)
	}
}

func TestCardFromDomain(t *testing.T) {
	_, account := fixture(t)

	card, err := domain.NewCard("card-1", domain.CardTypeDebit, account, "1234")
	if err != nil {
		t.Fatalf("NewCard: %v", err)
	}

	resp := CardFromDomain(card)
	if resp.ID != "card-1" || resp.AccountID != "acc-1" || resp.Limit != nil {
		t.Fatalf("unexpected card response: %+v", resp)
	}

	if err := card.SetLimit(decimal.NewFromInt(50), "1234"); err != nil {
		t.Fatalf("SetLimit: %v", err)
	}
	resp = CardFromDomain(card)
	if resp.Limit == nil || !resp.Limit.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("Limit = %v, want 50", resp.Limit)
	}
}

func TestDeviceFromDomain(t *testing.T) {
	atm := domain.NewATM("atm-1", "Prague", decimal.NewFromInt(500))

	resp := DeviceFromDomain(atm)
	if resp.Kind != "atm" || resp.Location != "Prague" || !resp.Active {
		t.Fatalf("unexpected device response: %+v", resp)
	}
}

func TestRatesFromViews(t *testing.T) {
	views := []usecase.RateView{
		{From: domain.EUR, To: domain.USD, Rate: decimal.RequireFromString("1.1")},
		{From: domain.USD, To: domain.EUR, Rate: decimal.RequireFromString("0.9"), Disabled: true},
	}

	list := RatesFromViews(views)
	if len(list) != 2 || list[0].From != "EUR" || list[1].To != "EUR" || !list[1].Disabled {
		t.Fatalf("RatesFromViews returned %+v", list)
	}
}
