package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/domain"
)

func TestCapitalPool_ReserveRelease(t *testing.T) {
	pool, err := domain.NewCapitalPool(dec("10000"))
	require.NoError(t, err)

	require.NoError(t, pool.Reserve(dec("2000")))
	assert.True(t, pool.Amount().Equal(dec("8000")))

	assert.ErrorIs(t, pool.Reserve(dec("8000.01")), domain.ErrInsufficientCapital)
	assert.True(t, pool.Amount().Equal(dec("8000")))

	assert.ErrorIs(t, pool.Reserve(dec("-1")), domain.ErrNegativeAmount)
	assert.ErrorIs(t, pool.Release(dec("-1")), domain.ErrNegativeAmount)

	_, err = domain.NewCapitalPool(dec("-5"))
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestDevice_DeactivateReturnsRemainingToPool(t *testing.T) {
	rates := newRates()
	pool, err := domain.NewCapitalPool(dec("10000"))
	require.NoError(t, err)
	require.NoError(t, pool.Reserve(dec("2000")))
	atm := domain.NewATM("atm-1", "Prague", dec("2000"))

	acc := fundedAccount(t, "acc-1", newCustomer(t, "cust-1", rates), domain.EUR, rates, "800")
	card := newCard(t, "card-1", acc, "1234")

	_, err = atm.WithdrawCash(card, dec("500"), domain.EUR, "1234")
	require.NoError(t, err)
	assert.True(t, atm.Balance().Equal(dec("1500")))

	remaining, err := atm.Deactivate()
	require.NoError(t, err)
	require.NoError(t, pool.Release(remaining))

	assert.True(t, pool.Amount().Equal(dec("9500")), "pool %s", pool.Amount())
	assert.False(t, atm.IsActive())
	assert.True(t, atm.Balance().IsZero())

	_, err = atm.Deactivate()
	assert.ErrorIs(t, err, domain.ErrDeviceInactive)
	_, err = atm.DepositCash(card, dec("1"), domain.EUR, "1234")
	assert.ErrorIs(t, err, domain.ErrDeviceInactive)
	_, err = atm.WithdrawCash(card, dec("1"), domain.EUR, "1234")
	assert.ErrorIs(t, err, domain.ErrDeviceInactive)
}

func TestATM_CashOperations(t *testing.T) {
	rates := newRates()
	owner := newCustomer(t, "cust-1", rates)
	acc := fundedAccount(t, "acc-1", owner, domain.EUR, rates, "1000")
	card := newCard(t, "card-1", acc, "4321")
	atm := domain.NewATM("atm-1", "Brno", dec("300"))

	tx, err := atm.WithdrawCash(card, dec("100"), domain.USD, "4321")
	require.NoError(t, err)
	assert.True(t, acc.Balance().Equal(dec("910")), "USD is converted at 0.9, got %s", acc.Balance())
	assert.True(t, atm.Balance().Equal(dec("200")))
	assert.Same(t, acc, tx.From())
	assert.Nil(t, tx.To())

	tx, err = atm.DepositCash(card, dec("80"), domain.GBP, "4321")
	require.NoError(t, err)
	assert.True(t, acc.Balance().Equal(dec("1010")), "GBP is converted at 1.25, got %s", acc.Balance())
	assert.True(t, atm.Balance().Equal(dec("280")))
	assert.Nil(t, tx.From())

	assert.Len(t, atm.History(), 2)
	assert.Len(t, acc.History(), 2)
	assert.Len(t, card.History(), 2)
}

func TestATM_WithdrawRejections(t *testing.T) {
	rates := newRates()
	tests := []struct {
		name    string
		amount  string
		pin     string
		device  string
		wantErr error
	}{
		{name: "bad pin", amount: "10", pin: "0000", device: "100", wantErr: domain.ErrInvalidPIN},
		{name: "empty pin", amount: "10", pin: "", device: "100", wantErr: domain.ErrInvalidPIN},
		{name: "device short", amount: "150", pin: "1111", device: "100", wantErr: domain.ErrInsufficientDeviceFunds},
		{name: "account short", amount: "60", pin: "1111", device: "100", wantErr: domain.ErrInsufficientFunds},
		{name: "zero amount", amount: "0", pin: "1111", device: "100", wantErr: domain.ErrInvalidAmount},
		{name: "negative amount", amount: "-3", pin: "1111", device: "100", wantErr: domain.ErrNegativeAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := fundedAccount(t, "acc-1", newCustomer(t, "cust-1", rates), domain.EUR, rates, "50")
			card := newCard(t, "card-1", acc, "1111")
			atm := domain.NewATM("atm-1", "Ostrava", dec(tt.device))

			_, err := atm.WithdrawCash(card, dec(tt.amount), domain.EUR, tt.pin)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, acc.Balance().Equal(dec("50")))
			assert.True(t, atm.Balance().Equal(dec(tt.device)))
			assert.Empty(t, atm.History())
		})
	}
}

func TestATM_CheckBalanceAndLastMessage(t *testing.T) {
	rates := newRates()
	owner := newCustomer(t, "cust-1", rates)
	acc := fundedAccount(t, "acc-1", owner, domain.GBP, rates, "42")
	card := newCard(t, "card-1", acc, "9999")
	atm := domain.NewATM("atm-1", "Plzen", dec("100"))

	balance, currency, err := atm.CheckBalance(card, "9999")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("42")))
	assert.Equal(t, domain.GBP, currency)

	msg, err := atm.LastMessage(card, "9999")
	require.NoError(t, err)
	assert.Equal(t, "No messages", msg)

	require.NoError(t, owner.Notify("first", domain.ChannelEmail))
	require.NoError(t, owner.Notify("second", domain.ChannelSMS))
	msg, err = atm.LastMessage(card, "9999")
	require.NoError(t, err)
	assert.Equal(t, "second", msg)

	_, _, err = atm.CheckBalance(card, "1")
	assert.ErrorIs(t, err, domain.ErrInvalidPIN)
}

func TestBranch_RequiresAccountCurrency(t *testing.T) {
	rates := newRates()
	acc := fundedAccount(t, "acc-1", newCustomer(t, "cust-1", rates), domain.EUR, rates, "500")
	card := newCard(t, "card-1", acc, "2468")
	branch := domain.NewBranch("br-1", "Main street", dec("1000"))

	_, err := branch.WithdrawCash(card, dec("100"), domain.USD, "2468")
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
	_, err = branch.DepositCash(card, dec("100"), domain.GBP, "2468")
	assert.ErrorIs(t, err, domain.ErrCurrencyMismatch)
	assert.True(t, acc.Balance().Equal(dec("500")))
	assert.True(t, branch.Balance().Equal(dec("1000")))

	_, err = branch.WithdrawCash(card, dec("100"), domain.EUR, "2468")
	require.NoError(t, err)
	_, err = branch.DepositCash(card, dec("40"), domain.EUR, "2468")
	require.NoError(t, err)

	assert.True(t, acc.Balance().Equal(dec("440")))
	assert.True(t, branch.Balance().Equal(dec("940")))
	assert.Equal(t, domain.DeviceKindBranch, branch.Kind())
}
