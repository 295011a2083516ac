package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/adapter/repository/memory"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/exchange"
	"github.com/iho/gobank/internal/usecase"
)

// bank wires every use case over in-memory repositories.
type bank struct {
	customers *memory.CustomerRepository
	accounts  *memory.AccountRepository
	cards     *memory.CardRepository
	devices   *memory.DeviceRepository
	invoices  *memory.InvoiceRepository
	entries   *memory.EntryRepository
	rates     *exchange.Table
	capital   *domain.CapitalPool

	customerUC *usecase.CustomerUseCase
	accountUC  *usecase.AccountUseCase
	transferUC *usecase.TransferUseCase
	entryUC    *usecase.EntryUseCase
	cardUC     *usecase.CardUseCase
	deviceUC   *usecase.DeviceUseCase
	invoiceUC  *usecase.InvoiceUseCase
	exchangeUC *usecase.ExchangeUseCase
}

func newBank(t *testing.T, capital int64) *bank {
	t.Helper()

	pool, err := domain.NewCapitalPool(decimal.NewFromInt(capital))
	require.NoError(t, err)

	b := &bank{
		customers: memory.NewCustomerRepository(),
		accounts:  memory.NewAccountRepository(),
		cards:     memory.NewCardRepository(),
		devices:   memory.NewDeviceRepository(),
		invoices:  memory.NewInvoiceRepository(),
		entries:   memory.NewEntryRepository(),
		rates:     exchange.NewTable(),
		capital:   pool,
	}
	ids := memory.NewULIDGenerator()
	logger := zerolog.Nop()

	b.customerUC = usecase.NewCustomerUseCase(b.customers, b.cards, b.rates, ids, nil, logger)
	b.accountUC = usecase.NewAccountUseCase(b.accounts, b.customers, b.cards, b.entries, b.rates, ids, nil, logger)
	b.transferUC = usecase.NewTransferUseCase(b.accounts, b.entries, ids, nil, logger)
	b.entryUC = usecase.NewEntryUseCase(b.entries)
	b.cardUC = usecase.NewCardUseCase(b.cards, b.accounts, b.customers, b.entries, ids, nil, logger)
	b.deviceUC = usecase.NewDeviceUseCase(b.devices, b.cards, b.customers, b.accounts, b.entries, pool, ids, nil, logger)
	b.invoiceUC = usecase.NewInvoiceUseCase(b.invoices, b.customers, b.accounts, b.entries, ids, nil, logger)
	b.exchangeUC = usecase.NewExchangeUseCase(b.rates, nil, logger)

	return b
}

func (b *bank) customer(t *testing.T, first string) *domain.Customer {
	t.Helper()

	c, err := b.customerUC.AddCustomer(context.Background(), usecase.AddCustomerInput{
		FirstName: first,
		LastName:  "Tester",
		Email:     first + "@example.com",
	})
	require.NoError(t, err)
	return c
}

func (b *bank) account(t *testing.T, owner *domain.Customer, currency domain.Currency, balance int64) *domain.Account {
	t.Helper()
	ctx := context.Background()

	a, err := b.accountUC.OpenAccount(ctx, usecase.OpenAccountInput{CustomerID: owner.ID, Currency: currency.String()})
	require.NoError(t, err)

	if balance > 0 {
		_, err = b.accountUC.Deposit(ctx, usecase.MoneyInput{
			AccountID: a.ID(),
			Amount:    decimal.NewFromInt(balance),
			Currency:  currency.String(),
		})
		require.NoError(t, err)
	}
	return a
}

func (b *bank) card(t *testing.T, account *domain.Account, pin string) *domain.Card {
	t.Helper()

	c, err := b.cardUC.IssueCard(context.Background(), usecase.IssueCardInput{
		AccountID: account.ID(),
		Type:      "debit",
		PIN:       pin,
	})
	require.NoError(t, err)
	return c
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
