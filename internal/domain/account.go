package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Account is a single-currency balance owned by a customer.
//
// The balance never goes negative. All mutations go through Deposit, Withdraw,
// AddInterest, Close or Transfer, each of which holds the account lock.
type Account struct {
	mu sync.Mutex

	id           string
	owner        *Customer
	currency     Currency
	balance      decimal.Decimal
	interestRate decimal.Decimal
	open         bool
	rates        Converter
	history      []*Transaction
	createdAt    time.Time
}

// NewAccount creates an open account with zero balance and registers it
// under owner.
func NewAccount(id string, owner *Customer, currency Currency, rates Converter) (*Account, error) {
	if owner == nil {
		return nil, ErrCustomerNotFound
	}
	if !currency.IsValid() {
		return nil, ErrInvalidCurrency
	}

	a := &Account{
		id:           id,
		owner:        owner,
		currency:     currency,
		balance:      decimal.Zero,
		interestRate: decimal.Zero,
		open:         true,
		rates:        rates,
		createdAt:    time.Now().UTC(),
	}
	owner.addAccount(a)

	return a, nil
}

func (a *Account) ID() string { return a.id }
func (a *Account) Owner() *Customer { return a.owner }
func (a *Account) Currency() Currency { return a.currency }
func (a *Account) CreatedAt() time.Time { return a.createdAt }

// Balance returns the current balance in the account currency.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// InterestRate returns the rate applied by AddInterest.
func (a *Account) InterestRate() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.interestRate
}

// IsOpen reports whether the account accepts operations.
func (a *Account) IsOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

// History returns the records of money movements touching the account.
func (a *Account) History() []*Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]*Transaction, len(a.history))
	copy(out, a.history)
	return out
}

// SetInterestRate changes the rate applied by AddInterest.
func (a *Account) SetInterestRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return ErrNegativeInterestRate
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.interestRate = rate
	return nil
}

// Deposit credits amount, given in currency, converted to the account currency.
func (a *Account) Deposit(amount decimal.Decimal, currency Currency) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.deposit(amount, currency)
}

// Withdraw debits amount, given in currency, converted to the account currency.
func (a *Account) Withdraw(amount decimal.Decimal, currency Currency) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.withdraw(amount, currency)
}

// AddInterest grows the balance by balance * interest rate.
func (a *Account) AddInterest() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.open {
		return ErrAccountClosed
	}
	a.balance = a.balance.Add(a.balance.Mul(a.interestRate))
	return nil
}

// Close closes an empty open account and removes it from the owner's
// active accounts.
func (a *Account) Close() error {
	a.mu.Lock()
	if a.balance.IsPositive() {
		a.mu.Unlock()
		return ErrPositiveBalance
	}
	if !a.open {
		a.mu.Unlock()
		return ErrAccountAlreadyClosed
	}
	a.open = false
	a.mu.Unlock()

	a.owner.removeAccount(a)
	return nil
}

// deposit requires a.mu to be held.
func (a *Account) deposit(amount decimal.Decimal, currency Currency) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !a.open {
		return ErrAccountClosed
	}

	converted, err := a.convert(amount, currency)
	if err != nil {
		return err
	}

	a.balance = a.balance.Add(converted)
	return nil
}

// withdraw requires a.mu to be held.
func (a *Account) withdraw(amount decimal.Decimal, currency Currency) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !a.open {
		return ErrAccountClosed
	}

	converted, err := a.convert(amount, currency)
	if err != nil {
		return err
	}
	if converted.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}

	a.balance = a.balance.Sub(converted)
	return nil
}

func (a *Account) convert(amount decimal.Decimal, from Currency) (decimal.Decimal, error) {
	if from == a.currency {
		return amount, nil
	}
	if a.rates == nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrConversionFailed, ErrUndefinedRate)
	}
	converted, err := a.rates.Convert(from, a.currency, amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	return converted, nil
}

// appendHistory requires a.mu to be held.
func (a *Account) appendHistory(tx *Transaction) {
	a.history = append(a.history, tx)
}

// Record appends tx to the account history.
func (a *Account) Record(tx *Transaction) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.appendHistory(tx)
}
