package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// CardUseCase handles card issuing and purchases.
type CardUseCase struct {
	cardRepo     CardRepository
	accountRepo  AccountRepository
	customerRepo CustomerRepository
	idGen        IDGenerator
	journal      journal
	metrics      MetricsRecorder
	logger       zerolog.Logger
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(
	cardRepo CardRepository,
	accountRepo AccountRepository,
	customerRepo CustomerRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *CardUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	return &CardUseCase{
		cardRepo:     cardRepo,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		idGen:        idGen,
		journal:      journal{entryRepo: entryRepo, idGen: idGen, metrics: metrics, logger: logger},
		metrics:      metrics,
		logger:       logger,
	}
}

// IssueCardInput represents input for issuing a card.
type IssueCardInput struct {
	AccountID string
	Type      string
	PIN       string
}

// IssueCard issues a PIN-protected card for an open account.
func (uc *CardUseCase) IssueCard(ctx context.Context, input IssueCardInput) (*domain.Card, error) {
	typ, err := domain.ParseCardType(input.Type)
	if err != nil {
		return nil, err
	}

	account, err := uc.accountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if !account.IsOpen() {
		return nil, domain.ErrAccountClosed
	}

	card, err := domain.NewCard(uc.idGen.Generate(), typ, account, input.PIN)
	if err != nil {
		return nil, err
	}

	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	uc.logger.Debug().Str("card_id", card.ID()).Str("account_id", account.ID()).Msg("card issued")
	return card, nil
}

// GetCard retrieves a card by ID.
func (uc *CardUseCase) GetCard(ctx context.Context, id string) (*domain.Card, error) {
	return uc.cardRepo.GetByID(ctx, id)
}

// PurchaseInput represents a card payment to a merchant.
type PurchaseInput struct {
	CardID     string
	MerchantID string
	Amount     decimal.Decimal
	Currency   string
	PIN        string
}

// Purchase pays a merchant with a card.
func (uc *CardUseCase) Purchase(ctx context.Context, input PurchaseInput) (*TransferResult, error) {
	currency, err := domain.ParseCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	card, err := uc.cardRepo.GetByID(ctx, input.CardID)
	if err != nil {
		return nil, err
	}
	merchant, err := uc.customerRepo.GetByID(ctx, input.MerchantID)
	if err != nil {
		return nil, err
	}

	tx, err := card.ProcessPurchase(input.Amount, currency, input.PIN, merchant)
	if err != nil {
		uc.metrics.TransferFailed(domain.ErrorKind(err))
		uc.logger.Warn().Err(err).
			Str("card_id", card.ID()).
			Str("merchant_id", merchant.ID).
			Str("amount", input.Amount.String()).
			Str("currency", currency.String()).
			Msg("purchase rejected")
		return nil, err
	}

	uc.metrics.TransferCreated(tx.Amount())
	uc.logger.Debug().Str("card_id", card.ID()).Str("merchant_id", merchant.ID).Msg("purchase completed")

	return uc.journal.record(ctx, tx, ""), nil
}

// SetLimit caps a single purchase made with the card.
func (uc *CardUseCase) SetLimit(ctx context.Context, cardID string, limit decimal.Decimal, pin string) (*domain.Card, error) {
	card, err := uc.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	if err := card.SetLimit(limit, pin); err != nil {
		return nil, err
	}
	return card, nil
}

// UnsetLimit removes the purchase cap of the card.
func (uc *CardUseCase) UnsetLimit(ctx context.Context, cardID, pin string) (*domain.Card, error) {
	card, err := uc.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	if err := card.UnsetLimit(pin); err != nil {
		return nil, err
	}
	return card, nil
}
