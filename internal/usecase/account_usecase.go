package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo  AccountRepository
	customerRepo CustomerRepository
	cardRepo     CardRepository
	rates        domain.Converter
	idGen        IDGenerator
	journal      journal
	metrics      MetricsRecorder
	logger       zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	accountRepo AccountRepository,
	customerRepo CustomerRepository,
	cardRepo CardRepository,
	entryRepo EntryRepository,
	rates domain.Converter,
	idGen IDGenerator,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *AccountUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	return &AccountUseCase{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		cardRepo:     cardRepo,
		rates:        rates,
		idGen:        idGen,
		journal:      journal{entryRepo: entryRepo, idGen: idGen, metrics: metrics, logger: logger},
		metrics:      metrics,
		logger:       logger,
	}
}

// OpenAccountInput represents input for opening an account.
type OpenAccountInput struct {
	CustomerID string
	Currency   string
}

// OpenAccount opens an empty account for an existing customer.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	currency, err := domain.ParseCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}

	account, err := domain.NewAccount(uc.idGen.Generate(), customer, currency, uc.rates)
	if err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		// Unregister the empty account from its owner again.
		_ = account.Close()
		return nil, err
	}

	uc.metrics.AccountOpened()
	uc.logger.Debug().
		Str("account_id", account.ID()).
		Str("customer_id", customer.ID).
		Str("currency", currency.String()).
		Msg("account opened")

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx, normalizeLimit(input.Limit), input.Offset)
}

// MoneyInput is an amount in a currency applied to one account.
type MoneyInput struct {
	AccountID string
	Amount    decimal.Decimal
	Currency  string
}

// Deposit credits an account, converting from the given currency.
func (uc *AccountUseCase) Deposit(ctx context.Context, input MoneyInput) (*TransferResult, error) {
	return uc.move(ctx, "deposit", input, func(a *domain.Account, c domain.Currency) error {
		return a.Deposit(input.Amount, c)
	})
}

// Withdraw debits an account, converting from the given currency.
func (uc *AccountUseCase) Withdraw(ctx context.Context, input MoneyInput) (*TransferResult, error) {
	return uc.move(ctx, "withdraw", input, func(a *domain.Account, c domain.Currency) error {
		return a.Withdraw(input.Amount, c)
	})
}

func (uc *AccountUseCase) move(
	ctx context.Context,
	operation string,
	input MoneyInput,
	apply func(*domain.Account, domain.Currency) error,
) (*TransferResult, error) {
	currency, err := domain.ParseCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	err = apply(account, currency)
	uc.metrics.AccountOperation(operation, resultLabel(err))
	if err != nil {
		uc.logger.Warn().Err(err).
			Str("account_id", account.ID()).
			Str("amount", input.Amount.String()).
			Str("currency", currency.String()).
			Msgf("%s rejected", operation)
		return nil, err
	}

	uc.logger.Debug().
		Str("account_id", account.ID()).
		Str("amount", input.Amount.String()).
		Str("currency", currency.String()).
		Msg(operation)

	// A zero amount changes nothing and leaves no record.
	if input.Amount.IsZero() {
		return &TransferResult{}, nil
	}

	var tx *domain.Transaction
	if operation == "deposit" {
		tx, err = domain.NewTransaction(nil, account, input.Amount, currency, "Deposit")
	} else {
		tx, err = domain.NewTransaction(account, nil, input.Amount, currency, "Withdrawal")
	}
	if err != nil {
		return nil, err
	}
	account.Record(tx)

	return uc.journal.record(ctx, tx, ""), nil
}

// SetInterestRate changes the rate applied by ApplyInterest.
func (uc *AccountUseCase) SetInterestRate(ctx context.Context, id string, rate decimal.Decimal) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := account.SetInterestRate(rate); err != nil {
		return nil, err
	}
	return account, nil
}

// ApplyTierInterestRate sets the account's interest rate to the one offered
// to its owner's current tier.
func (uc *AccountUseCase) ApplyTierInterestRate(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tier, err := account.Owner().Tier()
	if err != nil {
		return nil, err
	}

	if err := account.SetInterestRate(domain.InterestRate(tier)); err != nil {
		return nil, err
	}
	return account, nil
}

// ApplyInterest grows the balance by its interest rate.
func (uc *AccountUseCase) ApplyInterest(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = account.AddInterest()
	uc.metrics.AccountOperation("interest", resultLabel(err))
	if err != nil {
		return nil, err
	}

	return account, nil
}

// CloseAccount closes an empty account and cancels its cards.
func (uc *AccountUseCase) CloseAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := account.Close(); err != nil {
		uc.logger.Warn().Err(err).Str("account_id", id).Msg("close rejected")
		return err
	}

	if err := uc.cardRepo.DeleteByAccount(ctx, id); err != nil {
		return err
	}

	uc.metrics.AccountClosed()
	uc.logger.Debug().Str("account_id", id).Msg("account closed")

	return nil
}
