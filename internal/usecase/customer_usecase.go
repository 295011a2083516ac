package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// CustomerUseCase handles customer business logic.
type CustomerUseCase struct {
	customerRepo CustomerRepository
	cardRepo     CardRepository
	rates        domain.Converter
	idGen        IDGenerator
	metrics      MetricsRecorder
	logger       zerolog.Logger
}

// NewCustomerUseCase creates a new CustomerUseCase.
func NewCustomerUseCase(
	customerRepo CustomerRepository,
	cardRepo CardRepository,
	rates domain.Converter,
	idGen IDGenerator,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *CustomerUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	return &CustomerUseCase{
		customerRepo: customerRepo,
		cardRepo:     cardRepo,
		rates:        rates,
		idGen:        idGen,
		metrics:      metrics,
		logger:       logger,
	}
}

// AddCustomerInput represents input for adding a customer.
type AddCustomerInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// AddCustomer registers a new customer.
func (uc *CustomerUseCase) AddCustomer(ctx context.Context, input AddCustomerInput) (*domain.Customer, error) {
	first := strings.TrimSpace(input.FirstName)
	last := strings.TrimSpace(input.LastName)
	if first == "" || last == "" {
		return nil, domain.ErrInvalidName
	}

	customer := domain.NewCustomer(uc.idGen.Generate(), first, last,
		strings.TrimSpace(input.Email), strings.TrimSpace(input.Phone), uc.rates)

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	uc.logger.Debug().Str("customer_id", customer.ID).Msg("customer added")
	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customerRepo.GetByID(ctx, id)
}

// ListCustomersInput represents input for listing customers.
type ListCustomersInput struct {
	Limit  int
	Offset int
}

// ListCustomers lists customers with pagination.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, input ListCustomersInput) ([]*domain.Customer, error) {
	return uc.customerRepo.List(ctx, normalizeLimit(input.Limit), input.Offset)
}

// RemoveCustomer closes every account of the customer and forgets them.
// Nothing is closed when any account still holds money.
func (uc *CustomerUseCase) RemoveCustomer(ctx context.Context, id string) error {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	accounts := customer.Accounts()
	for _, a := range accounts {
		if a.Balance().IsPositive() {
			uc.logger.Warn().Str("customer_id", id).Str("account_id", a.ID()).Msg("customer still holds money")
			return domain.ErrPositiveBalance
		}
	}

	for _, a := range accounts {
		if err := a.Close(); err != nil {
			return err
		}
		if err := uc.cardRepo.DeleteByAccount(ctx, a.ID()); err != nil {
			return err
		}
		uc.metrics.AccountClosed()
	}

	if err := uc.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info().Str("customer_id", id).Int("closed_accounts", len(accounts)).Msg("customer removed")
	return nil
}

// NotifyCustomer delivers a message to the customer over channel.
func (uc *CustomerUseCase) NotifyCustomer(ctx context.Context, id, message string, channel domain.NotificationChannel) error {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return customer.Notify(message, channel)
}

// TierReport is a customer's benefit tier with the policy values it implies.
type TierReport struct {
	Tier            domain.Tier
	TotalBalance    decimal.Decimal
	Currency        domain.Currency
	FeePercentage   decimal.Decimal
	FraudThreshold  decimal.Decimal
	InterestRate    decimal.Decimal
	AppointmentCost decimal.Decimal
}

// NewTierReport classifies total, given in the reference currency.
func NewTierReport(total decimal.Decimal) TierReport {
	tier := domain.Classify(total)
	return TierReport{
		Tier:            tier,
		TotalBalance:    total,
		Currency:        domain.ReferenceCurrency,
		FeePercentage:   domain.FeePercentage(tier),
		FraudThreshold:  domain.FraudThreshold(tier),
		InterestRate:    domain.InterestRate(tier),
		AppointmentCost: domain.AppointmentCost(tier),
	}
}

// GetTierReport computes the customer's tier from current balances.
func (uc *CustomerUseCase) GetTierReport(ctx context.Context, id string) (*TierReport, error) {
	customer, err := uc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	total, err := customer.TotalBalance(domain.ReferenceCurrency)
	if err != nil {
		return nil, err
	}

	report := NewTierReport(total)
	return &report, nil
}
