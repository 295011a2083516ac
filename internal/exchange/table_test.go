package exchange_test

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/exchange"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTable_SeededRates(t *testing.T) {
	table := exchange.NewTable()

	tests := []struct {
		from, to domain.Currency
		want     string
	}{
		{from: domain.EUR, to: domain.USD, want: "1.1"},
		{from: domain.EUR, to: domain.GBP, want: "0.8"},
		{from: domain.USD, to: domain.GBP, want: "0.72"},
		{from: domain.USD, to: domain.EUR, want: "0.9"},
		{from: domain.GBP, to: domain.EUR, want: "1.25"},
		{from: domain.GBP, to: domain.USD, want: "1.38"},
		{from: domain.EUR, to: domain.EUR, want: "1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			rate, err := table.Rate(tt.from, tt.to)
			require.NoError(t, err)
			assert.True(t, rate.Equal(dec(tt.want)), "rate %s", rate)
		})
	}

	assert.Len(t, table.Rates(), 6)
}

func TestTable_UndefinedRate(t *testing.T) {
	table, err := exchange.NewTableWithRates([]exchange.Rate{
		{From: domain.EUR, To: domain.USD, Rate: dec("1.1")},
	})
	require.NoError(t, err)

	_, err = table.Rate(domain.USD, domain.EUR)
	assert.ErrorIs(t, err, domain.ErrUndefinedRate)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = table.Convert(domain.USD, domain.EUR, dec("1"))
	assert.ErrorIs(t, err, domain.ErrUndefinedRate)
}

func TestNewTableWithRates_Invalid(t *testing.T) {
	_, err := exchange.NewTableWithRates([]exchange.Rate{{From: domain.EUR, To: domain.EUR, Rate: dec("1")}})
	assert.ErrorIs(t, err, domain.ErrSameCurrency)

	_, err = exchange.NewTableWithRates([]exchange.Rate{{From: domain.EUR, To: domain.USD, Rate: dec("0")}})
	assert.ErrorIs(t, err, domain.ErrNegativeRate)
}

func TestTable_Convert(t *testing.T) {
	table := exchange.NewTable()

	for _, r := range table.Rates() {
		zero, err := table.Convert(r.From, r.To, decimal.Zero)
		require.NoError(t, err)
		assert.True(t, zero.IsZero(), "%s->%s", r.From, r.To)
	}

	for _, c := range domain.Currencies() {
		for _, amount := range []string{"0", "0.01", "123.45", "1000000"} {
			got, err := table.Convert(c, c, dec(amount))
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(amount)))
		}
	}

	got, err := table.Convert(domain.USD, domain.EUR, dec("100"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("90")))

	_, err = table.Convert(domain.USD, domain.EUR, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrNegativeAmount)
}

func TestTable_ChangeRate(t *testing.T) {
	table := exchange.NewTable()

	require.NoError(t, table.ChangeRate(domain.EUR, domain.USD, dec("1.2")))
	rate, err := table.Rate(domain.EUR, domain.USD)
	require.NoError(t, err)
	assert.True(t, rate.Equal(dec("1.2")))

	reverse, err := table.Rate(domain.USD, domain.EUR)
	require.NoError(t, err)
	assert.True(t, reverse.Equal(dec("0.9")), "directed pairs are independent")

	assert.ErrorIs(t, table.ChangeRate(domain.EUR, domain.USD, dec("-1")), domain.ErrNegativeRate)
	assert.ErrorIs(t, table.ChangeRate(domain.EUR, domain.EUR, dec("2")), domain.ErrUndefinedRate)

	sparse, err := exchange.NewTableWithRates(nil)
	require.NoError(t, err)
	assert.ErrorIs(t, sparse.ChangeRate(domain.EUR, domain.USD, dec("1")), domain.ErrUndefinedRate)
}

func TestTable_DisableEnable(t *testing.T) {
	table := exchange.NewTable()
	before, err := table.Rate(domain.GBP, domain.USD)
	require.NoError(t, err)

	require.NoError(t, table.Disable(domain.USD, domain.GBP))
	assert.True(t, table.IsDisabled(domain.GBP, domain.USD))

	_, err = table.Rate(domain.GBP, domain.USD)
	assert.ErrorIs(t, err, domain.ErrRateDisabled)
	_, err = table.Rate(domain.USD, domain.GBP)
	assert.ErrorIs(t, err, domain.ErrRateDisabled)
	_, err = table.Rate(domain.EUR, domain.USD)
	assert.NoError(t, err, "other pairs stay enabled")

	assert.ErrorIs(t, table.Disable(domain.GBP, domain.USD), domain.ErrAlreadyDisabled)
	assert.ErrorIs(t, table.Disable(domain.GBP, domain.GBP), domain.ErrSameCurrency)

	require.NoError(t, table.Enable(domain.GBP, domain.USD))
	after, err := table.Rate(domain.GBP, domain.USD)
	require.NoError(t, err)
	assert.True(t, after.Equal(before))

	assert.ErrorIs(t, table.Enable(domain.GBP, domain.USD), domain.ErrNotDisabled)
}

func TestTable_ConcurrentAccess(t *testing.T) {
	table := exchange.NewTable()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			rate := decimal.NewFromInt(int64(i + 1)).Div(decimal.NewFromInt(10))
			_ = table.ChangeRate(domain.EUR, domain.USD, rate)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = table.Convert(domain.EUR, domain.USD, dec("10"))
		}()
	}
	wg.Wait()

	rate, err := table.Rate(domain.EUR, domain.USD)
	require.NoError(t, err)
	assert.True(t, rate.IsPositive())
}
