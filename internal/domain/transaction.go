package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the record of a completed money movement.
//
// A nil source is a cash-in event, a nil destination a cash-out event.
// Fee, fraud flag, interest rate and tier are derived from the current
// state of the payer's owner each time they are asked for.
type Transaction struct {
	mu sync.RWMutex

	from        *Account
	to          *Account
	amount      decimal.Decimal
	currency    Currency
	createdAt   time.Time
	description string
}

// NewTransaction validates and creates a record.
func NewTransaction(from, to *Account, amount decimal.Decimal, currency Currency, description string) (*Transaction, error) {
	if from == nil && to == nil {
		return nil, ErrInvalidTransaction
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !currency.IsValid() {
		return nil, ErrInvalidCurrency
	}

	return &Transaction{
		from:        from,
		to:          to,
		amount:      amount,
		currency:    currency,
		createdAt:   time.Now().UTC(),
		description: description,
	}, nil
}

func (t *Transaction) From() *Account { return t.from }
func (t *Transaction) To() *Account { return t.to }
func (t *Transaction) Amount() decimal.Decimal { return t.amount }
func (t *Transaction) Currency() Currency { return t.currency }
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

func (t *Transaction) Description() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.description
}

func (t *Transaction) SetDescription(description string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.description = description
}

// payer is the account whose owner drives policy: the source, or the
// destination for cash-in events.
func (t *Transaction) payer() *Account {
	if t.from != nil {
		return t.from
	}
	return t.to
}

// Tier returns the payer owner's current tier.
func (t *Transaction) Tier() (Tier, error) {
	return t.payer().Owner().Tier()
}

// Fee is the charge for this transaction under the payer's current tier.
func (t *Transaction) Fee() (decimal.Decimal, error) {
	tier, err := t.Tier()
	if err != nil {
		return decimal.Zero, err
	}
	return t.amount.Mul(FeePercentage(tier)), nil
}

// IsFraud reports whether the amount exceeds the payer's fraud threshold.
func (t *Transaction) IsFraud() (bool, error) {
	tier, err := t.Tier()
	if err != nil {
		return false, err
	}
	return t.amount.GreaterThan(FraudThreshold(tier)), nil
}

// InterestRate is the rate offered to the payer's current tier.
func (t *Transaction) InterestRate() (decimal.Decimal, error) {
	tier, err := t.Tier()
	if err != nil {
		return decimal.Zero, err
	}
	return InterestRate(tier), nil
}

// Repeat runs the same transfer again and returns the new record.
func (t *Transaction) Repeat() (*Transaction, error) {
	if t.from == nil || t.to == nil {
		return nil, ErrNotRepeatable
	}
	tx, err := Transfer(t.from, t.to, t.amount)
	if err != nil {
		return nil, fmt.Errorf("repeat transaction: %w", err)
	}
	return tx, nil
}

// SendDetails notifies the payer's owner with the record description.
func (t *Transaction) SendDetails(channel NotificationChannel) error {
	if err := t.payer().Owner().Notify(t.Description(), channel); err != nil {
		return fmt.Errorf("send transaction details: %w", err)
	}
	return nil
}
