package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/exchange"
)

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
	Delete(ctx context.Context, id string) error
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// CardRepository defines data access for cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	GetByID(ctx context.Context, id string) (*domain.Card, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.Card, error)
	DeleteByAccount(ctx context.Context, accountID string) error
}

// DeviceRepository defines data access for ATMs and branches.
type DeviceRepository interface {
	Create(ctx context.Context, device domain.Device) error
	GetByID(ctx context.Context, id string) (domain.Device, error)
	List(ctx context.Context) ([]domain.Device, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceRepository defines data access for invoices.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error
	GetByNumber(ctx context.Context, number string) (*domain.Invoice, error)
}

// EntryRepository defines data access for journal entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Entry, error)
}

// RateTable is the shared exchange rate table.
type RateTable interface {
	domain.Converter
	Rate(from, to domain.Currency) (decimal.Decimal, error)
	ChangeRate(from, to domain.Currency, rate decimal.Decimal) error
	Disable(a, b domain.Currency) error
	Enable(a, b domain.Currency) error
	IsDisabled(a, b domain.Currency) bool
	Rates() []exchange.Rate
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Delete releases a key so the request may be retried.
	Delete(ctx context.Context, key string) error
}

// MetricsRecorder receives business events for monitoring.
type MetricsRecorder interface {
	TransferCreated(amount decimal.Decimal)
	TransferFailed(kind string)
	AccountOperation(operation, result string)
	AccountOpened()
	AccountClosed()
	CashOperation(kind domain.DeviceKind, operation, result string)
	CapitalAvailable(amount decimal.Decimal)
	RateOperation(operation, result string)
	FraudFlagged()
}

type nopMetrics struct{}

func (nopMetrics) TransferCreated(decimal.Decimal) {}
func (nopMetrics) TransferFailed(string) {}
func (nopMetrics) AccountOperation(string, string) {}
func (nopMetrics) AccountOpened() {}
func (nopMetrics) AccountClosed() {}
func (nopMetrics) CashOperation(domain.DeviceKind, string, string) {}
func (nopMetrics) CapitalAvailable(decimal.Decimal) {}
func (nopMetrics) RateOperation(string, string) {}
func (nopMetrics) FraudFlagged() {}

// NopMetrics discards every event.
var NopMetrics MetricsRecorder = nopMetrics{}

func resultLabel(err error) string {
	if err != nil {
		return domain.ErrorKind(err)
	}
	return "ok"
}
