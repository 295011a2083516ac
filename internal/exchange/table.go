// Package exchange holds the bank's directed currency rates.
//
// One Table is built by whatever composes the ledger and shared by every
// account, customer and device that converts money.
package exchange

import (
	"fmt"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// Rate is the price of one unit of From expressed in To.
type Rate struct {
	From domain.Currency
	To   domain.Currency
	Rate decimal.Decimal
}

// DefaultRates are the seeded directed pairs.
func DefaultRates() []Rate {
	return []Rate{
		{From: domain.EUR, To: domain.USD, Rate: decimal.RequireFromString("1.1")},
		{From: domain.EUR, To: domain.GBP, Rate: decimal.RequireFromString("0.8")},
		{From: domain.USD, To: domain.GBP, Rate: decimal.RequireFromString("0.72")},
		{From: domain.USD, To: domain.EUR, Rate: decimal.RequireFromString("0.9")},
		{From: domain.GBP, To: domain.EUR, Rate: decimal.RequireFromString("1.25")},
		{From: domain.GBP, To: domain.USD, Rate: decimal.RequireFromString("1.38")},
	}
}

// Table is a concurrency-safe set of directed rates with a disabled mask
// over unordered pairs.
type Table struct {
	mu       sync.RWMutex
	rates    *treemap.Map // directedKey -> Rate
	disabled *hashset.Set // pairKey
}

// NewTable returns a table seeded with DefaultRates.
func NewTable() *Table {
	t, err := NewTableWithRates(DefaultRates())
	if err != nil {
		panic(err)
	}
	return t
}

// NewTableWithRates builds a table from rates. Identity pairs are rejected
// since they are implicit.
func NewTableWithRates(rates []Rate) (*Table, error) {
	t := &Table{
		rates:    treemap.NewWithStringComparator(),
		disabled: hashset.New(),
	}
	for _, r := range rates {
		if r.From == r.To {
			return nil, fmt.Errorf("%w: %s", domain.ErrSameCurrency, r.From)
		}
		if !r.Rate.IsPositive() {
			return nil, fmt.Errorf("%w: %s->%s", domain.ErrNegativeRate, r.From, r.To)
		}
		t.rates.Put(directedKey(r.From, r.To), r)
	}
	return t, nil
}

// Rate returns the directed rate from -> to.
func (t *Table) Rate(from, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.rate(from, to)
}

// rate requires t.mu to be held.
func (t *Table) rate(from, to domain.Currency) (decimal.Decimal, error) {
	if t.disabled.Contains(pairKey(from, to)) {
		return decimal.Zero, fmt.Errorf("%w: %s and %s", domain.ErrRateDisabled, from, to)
	}
	v, ok := t.rates.Get(directedKey(from, to))
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s->%s", domain.ErrUndefinedRate, from, to)
	}
	return v.(Rate).Rate, nil
}

// Convert prices amount of from in to.
func (t *Table) Convert(from, to domain.Currency, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, domain.ErrNegativeAmount
	}
	rate, err := t.Rate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

// ChangeRate replaces an existing directed rate.
func (t *Table) ChangeRate(from, to domain.Currency, rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return domain.ErrNegativeRate
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := directedKey(from, to)
	if _, ok := t.rates.Get(key); !ok {
		return fmt.Errorf("%w: %s->%s", domain.ErrUndefinedRate, from, to)
	}
	t.rates.Put(key, Rate{From: from, To: to, Rate: rate})
	return nil
}

// Disable suppresses lookups in both directions between a and b.
func (t *Table) Disable(a, b domain.Currency) error {
	if a == b {
		return domain.ErrSameCurrency
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := pairKey(a, b)
	if t.disabled.Contains(key) {
		return domain.ErrAlreadyDisabled
	}
	t.disabled.Add(key)
	return nil
}

// Enable lifts a previous Disable of the pair.
func (t *Table) Enable(a, b domain.Currency) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := pairKey(a, b)
	if !t.disabled.Contains(key) {
		return domain.ErrNotDisabled
	}
	t.disabled.Remove(key)
	return nil
}

// IsDisabled reports whether the unordered pair is disabled.
func (t *Table) IsDisabled(a, b domain.Currency) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.disabled.Contains(pairKey(a, b))
}

// Rates lists the stored directed rates ordered by pair.
func (t *Table) Rates() []Rate {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Rate, 0, t.rates.Size())
	it := t.rates.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Rate))
	}
	return out
}

func directedKey(from, to domain.Currency) string {
	return string(from) + "->" + string(to)
}

func pairKey(a, b domain.Currency) string {
	if b < a {
		a, b = b, a
	}
	return string(a) + "/" + string(b)
}
