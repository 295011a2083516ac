package domain

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// CardType distinguishes debit and credit cards.
type CardType string

const (
	CardTypeDebit  CardType = "DEBIT"
	CardTypeCredit CardType = "CREDIT"
)

// ParseCardType validates a card type name.
func ParseCardType(s string) (CardType, error) {
	switch t := CardType(strings.ToUpper(strings.TrimSpace(s))); t {
	case CardTypeDebit, CardTypeCredit:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCardType, s)
	}
}

// pinHashCost is a variable so tests can lower it.
var pinHashCost = bcrypt.DefaultCost

// Authorizer validates a secret presented by a customer.
type Authorizer interface {
	ValidatePIN(pin string) bool
}

// CashCard is what a cash device needs from a card.
type CashCard interface {
	Authorizer
	Account() *Account
	Record(tx *Transaction)
}

// Card is a payment card linked to one account.
type Card struct {
	mu sync.Mutex

	id      string
	typ     CardType
	account *Account
	pinHash []byte
	limit   decimal.Decimal
	history []*Transaction
}

// NewCard issues a card for account protected by pin.
func NewCard(id string, typ CardType, account *Account, pin string) (*Card, error) {
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if pin == "" {
		return nil, ErrInvalidPIN
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), pinHashCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	return &Card{
		id:      id,
		typ:     typ,
		account: account,
		pinHash: hash,
		limit:   decimal.Zero,
	}, nil
}

func (c *Card) ID() string { return c.id }
func (c *Card) Type() CardType { return c.typ }
func (c *Card) Account() *Account { return c.account }
func (c *Card) Owner() *Customer { return c.account.Owner() }
func (c *Card) Tier() (Tier, error) { return c.Owner().Tier() }

// Limit returns the per-purchase limit; zero means no limit.
func (c *Card) Limit() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit
}

// ValidatePIN reports whether pin matches the card PIN.
func (c *Card) ValidatePIN(pin string) bool {
	if pin == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.pinHash, []byte(pin)) == nil
}

// SetLimit caps the amount of a single purchase.
func (c *Card) SetLimit(limit decimal.Decimal, pin string) error {
	if !c.ValidatePIN(pin) {
		return ErrInvalidPIN
	}
	if !limit.IsPositive() {
		return ErrInvalidLimit
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = limit
	return nil
}

// UnsetLimit removes the purchase limit.
func (c *Card) UnsetLimit(pin string) error {
	if !c.ValidatePIN(pin) {
		return ErrInvalidPIN
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.limit = decimal.Zero
	return nil
}

// ProcessPurchase pays merchant amount, given in currency, from the card
// account into the merchant's first active account.
func (c *Card) ProcessPurchase(amount decimal.Decimal, currency Currency, pin string, merchant *Customer) (*Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !c.ValidatePIN(pin) {
		return nil, ErrInvalidPIN
	}

	limit := c.Limit()
	if limit.IsPositive() && amount.GreaterThan(limit) {
		return nil, ErrLimitExceeded
	}

	if merchant == nil {
		return nil, ErrCustomerNotFound
	}
	accounts := merchant.Accounts()
	if len(accounts) == 0 {
		return nil, ErrAccountNotFound
	}

	converted, err := c.account.convert(amount, currency)
	if err != nil {
		return nil, err
	}

	tx, err := Transfer(c.account, accounts[0], converted)
	if err != nil {
		return nil, err
	}
	tx.SetDescription("Purchase of goods from " + merchant.FirstName)
	c.Record(tx)

	return tx, nil
}

// Record appends tx to the card history.
func (c *Card) Record(tx *Transaction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, tx)
}

// History returns the card's records, oldest first.
func (c *Card) History() []*Transaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Transaction, len(c.history))
	copy(out, c.history)
	return out
}
