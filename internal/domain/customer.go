package domain

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// NotificationChannel selects how a customer is contacted.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "EMAIL"
	ChannelSMS   NotificationChannel = "SMS"
)

// ParseChannel validates a notification channel name.
func ParseChannel(s string) (NotificationChannel, error) {
	switch ch := NotificationChannel(strings.ToUpper(strings.TrimSpace(s))); ch {
	case ChannelEmail, ChannelSMS:
		return ch, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChannel, s)
	}
}

// Customer owns accounts and receives notifications.
type Customer struct {
	mu sync.Mutex

	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string

	rates    Converter
	accounts []*Account
	messages []string
}

// NewCustomer creates a customer whose balances are aggregated through rates.
func NewCustomer(id, firstName, lastName, email, phone string, rates Converter) *Customer {
	return &Customer{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Phone:     phone,
		rates:     rates,
	}
}

// Accounts returns the customer's active accounts in opening order.
func (c *Customer) Accounts() []*Account {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Owns reports whether a is one of the customer's active accounts.
func (c *Customer) Owns(a *Account) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, acc := range c.accounts {
		if acc == a {
			return true
		}
	}
	return false
}

// TotalBalance sums all active balances converted to currency.
func (c *Customer) TotalBalance(currency Currency) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, a := range c.Accounts() {
		balance := a.Balance()
		if a.Currency() != currency {
			if c.rates == nil {
				return decimal.Zero, ErrUndefinedRate
			}
			converted, err := c.rates.Convert(a.Currency(), currency, balance)
			if err != nil {
				return decimal.Zero, fmt.Errorf("total balance of account %s: %w", a.ID(), err)
			}
			balance = converted
		}
		total = total.Add(balance)
	}
	return total, nil
}

// Tier classifies the customer by total balance in the reference currency.
func (c *Customer) Tier() (Tier, error) {
	total, err := c.TotalBalance(ReferenceCurrency)
	if err != nil {
		return "", err
	}
	return Classify(total), nil
}

// Notify delivers message over channel, which must be configured.
func (c *Customer) Notify(message string, channel NotificationChannel) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch channel {
	case ChannelEmail:
		if c.Email == "" {
			return fmt.Errorf("%w: email", ErrMissingContact)
		}
	case ChannelSMS:
		if c.Phone == "" {
			return fmt.Errorf("%w: phone number", ErrMissingContact)
		}
	default:
		return ErrInvalidChannel
	}

	c.messages = append(c.messages, message)
	return nil
}

// Messages returns every delivered message, oldest first.
func (c *Customer) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Customer) addAccount(a *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, a)
}

func (c *Customer) removeAccount(a *Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, acc := range c.accounts {
		if acc == a {
			c.accounts = append(c.accounts[:i], c.accounts[i+1:]...)
			return
		}
	}
}
