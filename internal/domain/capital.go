package domain

import (
	"sync"

	"github.com/shopspring/decimal"
)

// CapitalPool is the bank-wide cash reserve that backs ATMs and branches.
type CapitalPool struct {
	mu     sync.Mutex
	amount decimal.Decimal
}

// NewCapitalPool creates a pool holding amount.
func NewCapitalPool(amount decimal.Decimal) (*CapitalPool, error) {
	if amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &CapitalPool{amount: amount}, nil
}

// Amount returns the unreserved capital.
func (p *CapitalPool) Amount() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.amount
}

// Reserve deducts amount from the pool.
func (p *CapitalPool) Reserve(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if amount.GreaterThan(p.amount) {
		return ErrInsufficientCapital
	}
	p.amount = p.amount.Sub(amount)
	return nil
}

// Release returns amount to the pool.
func (p *CapitalPool) Release(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.amount = p.amount.Add(amount)
	return nil
}
