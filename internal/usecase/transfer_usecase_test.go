package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/gobank/internal/adapter/repository/memory"
	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
	"github.com/iho/gobank/internal/usecase/mocks"
)

func TestTransferUseCase_CreateTransfer(t *testing.T) {
	tests := []struct {
		name        string
		fromBalance int64
		toCurrency  domain.Currency
		amount      string
		sameAccount bool
		expectError error
		wantFrom    string
		wantTo      string
	}{
		{
			name:        "successful transfer",
			fromBalance: 500,
			toCurrency:  domain.EUR,
			amount:      "100",
			wantFrom:    "400",
			wantTo:      "100",
		},
		{
			name:        "converted to destination currency",
			fromBalance: 500,
			toCurrency:  domain.USD,
			amount:      "100",
			wantFrom:    "400",
			wantTo:      "110",
		},
		{
			name:        "reject same account transfer",
			fromBalance: 500,
			toCurrency:  domain.EUR,
			amount:      "100",
			sameAccount: true,
			expectError: domain.ErrSameAccount,
			wantFrom:    "500",
		},
		{
			name:        "reject insufficient funds",
			fromBalance: 50,
			toCurrency:  domain.EUR,
			amount:      "100",
			expectError: domain.ErrInsufficientFunds,
			wantFrom:    "50",
			wantTo:      "0",
		},
		{
			name:        "reject zero amount",
			fromBalance: 50,
			toCurrency:  domain.EUR,
			amount:      "0",
			expectError: domain.ErrInvalidAmount,
			wantFrom:    "50",
			wantTo:      "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBank(t, 0)
			ctx := context.Background()
			from := b.account(t, b.customer(t, "ada"), domain.EUR, tt.fromBalance)
			to := b.account(t, b.customer(t, "bob"), tt.toCurrency, 0)
			toID := to.ID()
			if tt.sameAccount {
				toID = from.ID()
			}

			result, err := b.transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
				FromAccountID: from.ID(),
				ToAccountID:   toID,
				Amount:        dec(tt.amount),
				Description:   "rent",
			})

			if tt.expectError != nil {
				require.ErrorIs(t, err, tt.expectError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "rent", result.Transaction.Description())
				require.Len(t, result.Entries, 2)
				assert.True(t, result.Entries[0].Amount.Equal(dec(tt.amount).Neg()))
				assert.Equal(t, from.ID(), result.Entries[0].AccountID)
				assert.Equal(t, to.ID(), result.Entries[1].AccountID)
			}

			assert.True(t, from.Balance().Equal(dec(tt.wantFrom)), "from balance %s", from.Balance())
			if tt.wantTo != "" {
				assert.True(t, to.Balance().Equal(dec(tt.wantTo)), "to balance %s", to.Balance())
			}
		})
	}
}

func TestTransferUseCase_ClosedDestinationRollsBack(t *testing.T) {
	b := newBank(t, 0)
	ctx := context.Background()
	from := b.account(t, b.customer(t, "ada"), domain.EUR, 100)
	to := b.account(t, b.customer(t, "bob"), domain.EUR, 0)
	require.NoError(t, b.accountUC.CloseAccount(ctx, to.ID()))

	_, err := b.transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
		FromAccountID: from.ID(),
		ToAccountID:   to.ID(),
		Amount:        dec("30"),
	})
	require.ErrorIs(t, err, domain.ErrAccountClosed)
	assert.True(t, from.Balance().Equal(dec("100")))
}

func TestTransferUseCase_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockMetricsRecorder(ctrl)
	b := newBank(t, 0)
	from := b.account(t, b.customer(t, "ada"), domain.EUR, 100)
	to := b.account(t, b.customer(t, "bob"), domain.EUR, 0)

	gomock.InOrder(
		metrics.EXPECT().TransferCreated(gomock.Any()),
		metrics.EXPECT().TransferFailed("not_found"),
	)

	uc := usecase.NewTransferUseCase(b.accounts, b.entries, memory.NewULIDGenerator(), metrics, zerolog.Nop())
	ctx := context.Background()

	_, err := uc.CreateTransfer(ctx, usecase.CreateTransferInput{FromAccountID: from.ID(), ToAccountID: to.ID(), Amount: dec("10")})
	require.NoError(t, err)
	_, err = uc.CreateTransfer(ctx, usecase.CreateTransferInput{FromAccountID: from.ID(), ToAccountID: "missing", Amount: dec("10")})
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestTransferUseCase_JournalFailureDoesNotFailTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	entries := mocks.NewMockEntryRepository(ctrl)
	b := newBank(t, 0)
	from := b.account(t, b.customer(t, "ada"), domain.EUR, 100)
	to := b.account(t, b.customer(t, "bob"), domain.EUR, 0)

	entries.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(2)

	uc := usecase.NewTransferUseCase(b.accounts, entries, memory.NewULIDGenerator(), nil, zerolog.Nop())

	result, err := uc.CreateTransfer(context.Background(), usecase.CreateTransferInput{
		FromAccountID: from.ID(),
		ToAccountID:   to.ID(),
		Amount:        dec("10"),
	})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
	assert.True(t, to.Balance().Equal(dec("10")))
	assert.Len(t, from.History(), 2)
}

func TestTransferUseCase_RepeatTransfer(t *testing.T) {
	b := newBank(t, 0)
	ctx := context.Background()
	from := b.account(t, b.customer(t, "ada"), domain.EUR, 100)
	to := b.account(t, b.customer(t, "bob"), domain.EUR, 0)

	first, err := b.transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{
		FromAccountID: from.ID(),
		ToAccountID:   to.ID(),
		Amount:        dec("30"),
	})
	require.NoError(t, err)

	second, err := b.transferUC.RepeatTransfer(ctx, first.Entries[0].ID)
	require.NoError(t, err)
	assert.NotSame(t, first.Transaction, second.Transaction)
	assert.True(t, from.Balance().Equal(dec("40")))
	assert.True(t, to.Balance().Equal(dec("60")))

	// Cash events cannot be repeated.
	deposit, err := b.accountUC.Deposit(ctx, usecase.MoneyInput{AccountID: to.ID(), Amount: dec("1"), Currency: "EUR"})
	require.NoError(t, err)
	_, err = b.transferUC.RepeatTransfer(ctx, deposit.Entries[0].ID)
	require.ErrorIs(t, err, domain.ErrNotRepeatable)

	_, err = b.transferUC.RepeatTransfer(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}

func TestTransferUseCase_ConcurrentOpposingTransfers(t *testing.T) {
	b := newBank(t, 0)
	ctx := context.Background()
	a := b.account(t, b.customer(t, "ada"), domain.EUR, 1000)
	c := b.account(t, b.customer(t, "bob"), domain.EUR, 1000)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = b.transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{FromAccountID: a.ID(), ToAccountID: c.ID(), Amount: dec("3")})
		}()
		go func() {
			defer wg.Done()
			_, _ = b.transferUC.CreateTransfer(ctx, usecase.CreateTransferInput{FromAccountID: c.ID(), ToAccountID: a.ID(), Amount: dec("2")})
		}()
	}
	wg.Wait()

	assert.True(t, a.Balance().Add(c.Balance()).Equal(dec("2000")))
	assert.True(t, a.Balance().Equal(dec("900")), "a balance %s", a.Balance())

	entries, err := b.entries.GetByAccount(ctx, a.ID(), 0, 0)
	require.NoError(t, err)
	// One deposit plus one line per transfer.
	assert.Len(t, entries, 201)
}
