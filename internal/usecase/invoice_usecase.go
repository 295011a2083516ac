package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// InvoiceUseCase handles invoice issuing and settlement.
type InvoiceUseCase struct {
	invoiceRepo  InvoiceRepository
	customerRepo CustomerRepository
	accountRepo  AccountRepository
	journal      journal
	metrics      MetricsRecorder
	logger       zerolog.Logger
}

// NewInvoiceUseCase creates a new InvoiceUseCase.
func NewInvoiceUseCase(
	invoiceRepo InvoiceRepository,
	customerRepo CustomerRepository,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	return &InvoiceUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		journal:      journal{entryRepo: entryRepo, idGen: idGen, metrics: metrics, logger: logger},
		metrics:      metrics,
		logger:       logger,
	}
}

// CreateInvoiceInput represents input for issuing an invoice.
type CreateInvoiceInput struct {
	IssuerID      string
	PayerID       string
	ToAccountID   string
	Amount        decimal.Decimal
	Currency      string
	TaxPercentage decimal.Decimal
}

// CreateInvoice issues an unaccepted invoice.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	currency, err := domain.ParseCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	issuer, err := uc.customerRepo.GetByID(ctx, input.IssuerID)
	if err != nil {
		return nil, err
	}
	payer, err := uc.customerRepo.GetByID(ctx, input.PayerID)
	if err != nil {
		return nil, err
	}
	toAccount, err := uc.accountRepo.GetByID(ctx, input.ToAccountID)
	if err != nil {
		return nil, err
	}
	if !issuer.Owns(toAccount) {
		return nil, domain.ErrAccountNotOwned
	}

	invoice, err := domain.NewInvoice(issuer, payer, toAccount, input.Amount, currency, input.TaxPercentage)
	if err != nil {
		return nil, err
	}

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	uc.logger.Debug().
		Str("invoice", invoice.Number()).
		Str("issuer_id", issuer.ID).
		Str("payer_id", payer.ID).
		Str("amount", input.Amount.String()).
		Str("currency", currency.String()).
		Msg("invoice issued")

	return invoice, nil
}

// GetInvoice retrieves an invoice by number.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, number string) (*domain.Invoice, error) {
	return uc.invoiceRepo.GetByNumber(ctx, number)
}

// AcceptInvoice binds the payer account that will settle the invoice.
func (uc *InvoiceUseCase) AcceptInvoice(ctx context.Context, number, fromAccountID string) (*domain.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	fromAccount, err := uc.accountRepo.GetByID(ctx, fromAccountID)
	if err != nil {
		return nil, err
	}

	if err := invoice.Accept(fromAccount); err != nil {
		uc.logger.Warn().Err(err).Str("invoice", number).Msg("accept rejected")
		return nil, err
	}
	return invoice, nil
}

// RejectInvoice refuses an open invoice.
func (uc *InvoiceUseCase) RejectInvoice(ctx context.Context, number string) (*domain.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	if err := invoice.Reject(); err != nil {
		return nil, err
	}
	return invoice, nil
}

// PayInvoice settles an accepted invoice.
func (uc *InvoiceUseCase) PayInvoice(ctx context.Context, number string) (*TransferResult, error) {
	invoice, err := uc.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	tx, err := invoice.Pay()
	if err != nil {
		uc.metrics.TransferFailed(domain.ErrorKind(err))
		uc.logger.Warn().Err(err).Str("invoice", number).Msg("payment rejected")
		return nil, err
	}

	uc.metrics.TransferCreated(tx.Amount())
	uc.logger.Debug().Str("invoice", number).Msg("invoice paid")

	return uc.journal.record(ctx, tx, ""), nil
}
