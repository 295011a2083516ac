package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// TransferUseCase handles transfer business logic.
type TransferUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	journal     journal
	metrics     MetricsRecorder
	logger      zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *TransferUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	return &TransferUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		journal:     journal{entryRepo: entryRepo, idGen: idGen, metrics: metrics, logger: logger},
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	FromAccountID string
	ToAccountID   string
	// Amount is in the source account's currency.
	Amount      decimal.Decimal
	Description string
}

// CreateTransfer atomically moves money between two accounts.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	// Validate inputs before touching any account
	if input.FromAccountID == input.ToAccountID {
		return nil, uc.failed(domain.ErrSameAccount, input)
	}
	if !input.Amount.IsPositive() {
		return nil, uc.failed(domain.ErrInvalidAmount, input)
	}

	from, err := uc.accountRepo.GetByID(ctx, input.FromAccountID)
	if err != nil {
		return nil, uc.failed(err, input)
	}
	to, err := uc.accountRepo.GetByID(ctx, input.ToAccountID)
	if err != nil {
		return nil, uc.failed(err, input)
	}

	tx, err := domain.Transfer(from, to, input.Amount)
	if err != nil {
		return nil, uc.failed(err, input)
	}
	if input.Description != "" {
		tx.SetDescription(input.Description)
	}

	return uc.completed(ctx, tx), nil
}

// RepeatTransfer runs the transfer behind a journal entry again.
func (uc *TransferUseCase) RepeatTransfer(ctx context.Context, entryID string) (*TransferResult, error) {
	entry, err := uc.entryRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Transaction == nil {
		return nil, domain.ErrTransactionNotFound
	}

	tx, err := entry.Transaction.Repeat()
	if err != nil {
		uc.metrics.TransferFailed(domain.ErrorKind(err))
		uc.logger.Warn().Err(err).Str("entry_id", entryID).Msg("repeat rejected")
		return nil, err
	}

	return uc.completed(ctx, tx), nil
}

func (uc *TransferUseCase) completed(ctx context.Context, tx *domain.Transaction) *TransferResult {
	uc.metrics.TransferCreated(tx.Amount())
	uc.logger.Debug().
		Str("from_account_id", tx.From().ID()).
		Str("to_account_id", tx.To().ID()).
		Str("amount", tx.Amount().String()).
		Str("currency", tx.Currency().String()).
		Msg("transfer completed")

	return uc.journal.record(ctx, tx, "")
}

func (uc *TransferUseCase) failed(err error, input CreateTransferInput) error {
	uc.metrics.TransferFailed(domain.ErrorKind(err))
	uc.logger.Warn().Err(err).
		Str("from_account_id", input.FromAccountID).
		Str("to_account_id", input.ToAccountID).
		Str("amount", input.Amount.String()).
		Msg("transfer rejected")
	return err
}
