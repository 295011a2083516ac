package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
)

// DeviceUseCase handles ATMs, branches and the capital pool backing them.
type DeviceUseCase struct {
	deviceRepo   DeviceRepository
	cardRepo     CardRepository
	customerRepo CustomerRepository
	accountRepo  AccountRepository
	capital      *domain.CapitalPool
	idGen        IDGenerator
	journal      journal
	metrics      MetricsRecorder
	logger       zerolog.Logger
}

// NewDeviceUseCase creates a new DeviceUseCase.
func NewDeviceUseCase(
	deviceRepo DeviceRepository,
	cardRepo CardRepository,
	customerRepo CustomerRepository,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	capital *domain.CapitalPool,
	idGen IDGenerator,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *DeviceUseCase {
	if metrics == nil {
		metrics = NopMetrics
	}
	metrics.CapitalAvailable(capital.Amount())

	return &DeviceUseCase{
		deviceRepo:   deviceRepo,
		cardRepo:     cardRepo,
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		capital:      capital,
		idGen:        idGen,
		journal:      journal{entryRepo: entryRepo, idGen: idGen, metrics: metrics, logger: logger},
		metrics:      metrics,
		logger:       logger,
	}
}

// AddDeviceInput represents input for installing an ATM or opening a branch.
type AddDeviceInput struct {
	Location string
	Balance  decimal.Decimal
}

// AddATM reserves capital and installs an ATM holding it.
func (uc *DeviceUseCase) AddATM(ctx context.Context, input AddDeviceInput) (*domain.ATM, error) {
	atm, err := addDevice(ctx, uc, input, func(id string) *domain.ATM {
		return domain.NewATM(id, input.Location, input.Balance)
	})
	if err != nil {
		return nil, err
	}
	return atm, nil
}

// AddBranch reserves capital and opens a branch holding it.
func (uc *DeviceUseCase) AddBranch(ctx context.Context, input AddDeviceInput) (*domain.Branch, error) {
	branch, err := addDevice(ctx, uc, input, func(id string) *domain.Branch {
		return domain.NewBranch(id, input.Location, input.Balance)
	})
	if err != nil {
		return nil, err
	}
	return branch, nil
}

func addDevice[D domain.Device](ctx context.Context, uc *DeviceUseCase, input AddDeviceInput, build func(id string) D) (D, error) {
	var zero D

	if err := uc.capital.Reserve(input.Balance); err != nil {
		uc.logger.Warn().Err(err).
			Str("location", input.Location).
			Str("amount", input.Balance.String()).
			Msg("capital reservation rejected")
		return zero, err
	}

	device := build(uc.idGen.Generate())
	if err := uc.deviceRepo.Create(ctx, device); err != nil {
		if releaseErr := uc.capital.Release(input.Balance); releaseErr != nil {
			return zero, fmt.Errorf("release capital after %w: %w", err, releaseErr)
		}
		return zero, err
	}

	uc.metrics.CapitalAvailable(uc.capital.Amount())
	uc.logger.Info().
		Str("device_id", device.ID()).
		Str("kind", string(device.Kind())).
		Str("location", device.Location()).
		Str("balance", input.Balance.String()).
		Msg("device added")

	return device, nil
}

// GetDevice retrieves a device by ID.
func (uc *DeviceUseCase) GetDevice(ctx context.Context, id string) (domain.Device, error) {
	return uc.deviceRepo.GetByID(ctx, id)
}

// ListDevices lists every device.
func (uc *DeviceUseCase) ListDevices(ctx context.Context) ([]domain.Device, error) {
	return uc.deviceRepo.List(ctx)
}

// Capital returns the unreserved bank capital.
func (uc *DeviceUseCase) Capital() decimal.Decimal {
	return uc.capital.Amount()
}

// RemoveDevice deactivates a device and returns its cash to the capital pool.
func (uc *DeviceUseCase) RemoveDevice(ctx context.Context, id string) (decimal.Decimal, error) {
	device, err := uc.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	remaining, err := device.Deactivate()
	if err != nil {
		return decimal.Zero, err
	}
	if err := uc.capital.Release(remaining); err != nil {
		return decimal.Zero, err
	}
	if err := uc.deviceRepo.Delete(ctx, id); err != nil {
		return decimal.Zero, err
	}

	uc.metrics.CapitalAvailable(uc.capital.Amount())
	uc.logger.Info().
		Str("device_id", id).
		Str("released", remaining.String()).
		Msg("device removed")

	return remaining, nil
}

// CashInput represents a cash operation at a device.
type CashInput struct {
	DeviceID string
	CardID   string
	Amount   decimal.Decimal
	Currency string
	PIN      string
}

// WithdrawCash pays out cash to a card holder.
func (uc *DeviceUseCase) WithdrawCash(ctx context.Context, input CashInput) (*TransferResult, error) {
	return uc.cash(ctx, "withdraw", input, domain.Device.WithdrawCash)
}

// DepositCash accepts cash for a card holder.
func (uc *DeviceUseCase) DepositCash(ctx context.Context, input CashInput) (*TransferResult, error) {
	return uc.cash(ctx, "deposit", input, domain.Device.DepositCash)
}

type cashOperation func(domain.Device, domain.CashCard, decimal.Decimal, domain.Currency, string) (*domain.Transaction, error)

func (uc *DeviceUseCase) cash(ctx context.Context, operation string, input CashInput, op cashOperation) (*TransferResult, error) {
	currency, err := domain.ParseCurrency(input.Currency)
	if err != nil {
		return nil, err
	}

	device, err := uc.deviceRepo.GetByID(ctx, input.DeviceID)
	if err != nil {
		return nil, err
	}
	card, err := uc.cardRepo.GetByID(ctx, input.CardID)
	if err != nil {
		return nil, err
	}

	tx, err := op(device, card, input.Amount, currency, input.PIN)
	uc.metrics.CashOperation(device.Kind(), operation, resultLabel(err))
	if err != nil {
		uc.logger.Warn().Err(err).
			Str("device_id", device.ID()).
			Str("card_id", card.ID()).
			Str("amount", input.Amount.String()).
			Str("currency", currency.String()).
			Msgf("cash %s rejected", operation)
		return nil, err
	}

	uc.logger.Debug().
		Str("device_id", device.ID()).
		Str("account_id", card.Account().ID()).
		Str("amount", input.Amount.String()).
		Str("currency", currency.String()).
		Msgf("cash %s", operation)

	return uc.journal.record(ctx, tx, device.ID()), nil
}

// BalanceInquiry is a card account balance read at an ATM.
type BalanceInquiry struct {
	Balance  decimal.Decimal
	Currency domain.Currency
}

// CheckBalance reads the card account balance at an ATM.
func (uc *DeviceUseCase) CheckBalance(ctx context.Context, atmID, cardID, pin string) (*BalanceInquiry, error) {
	atm, card, err := uc.atmAndCard(ctx, atmID, cardID)
	if err != nil {
		return nil, err
	}

	balance, currency, err := atm.CheckBalance(card, pin)
	if err != nil {
		return nil, err
	}
	return &BalanceInquiry{Balance: balance, Currency: currency}, nil
}

// LastMessage reads the card owner's latest message at an ATM.
func (uc *DeviceUseCase) LastMessage(ctx context.Context, atmID, cardID, pin string) (string, error) {
	atm, card, err := uc.atmAndCard(ctx, atmID, cardID)
	if err != nil {
		return "", err
	}
	return atm.LastMessage(card, pin)
}

func (uc *DeviceUseCase) atmAndCard(ctx context.Context, atmID, cardID string) (*domain.ATM, *domain.Card, error) {
	device, err := uc.deviceRepo.GetByID(ctx, atmID)
	if err != nil {
		return nil, nil, err
	}
	atm, ok := device.(*domain.ATM)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s is not an ATM", domain.ErrUnsupportedDevice, atmID)
	}

	card, err := uc.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, nil, err
	}
	return atm, card, nil
}

// AppointmentInput identifies a customer's appointment at a branch.
type AppointmentInput struct {
	BranchID   string
	CustomerID string
	Start      time.Time
}

// BookAppointment books a one-hour appointment at a branch.
func (uc *DeviceUseCase) BookAppointment(ctx context.Context, input AppointmentInput) (*domain.Appointment, error) {
	branch, customer, err := uc.branchAndCustomer(ctx, input)
	if err != nil {
		return nil, err
	}

	appointment, err := branch.BookAppointment(customer, input.Start)
	if err != nil {
		return nil, err
	}

	uc.logger.Debug().
		Str("device_id", branch.ID()).
		Str("customer_id", customer.ID).
		Time("start", input.Start).
		Msg("appointment booked")

	return appointment, nil
}

// CancelAppointment cancels a booked appointment.
func (uc *DeviceUseCase) CancelAppointment(ctx context.Context, input AppointmentInput) error {
	branch, customer, err := uc.branchAndCustomer(ctx, input)
	if err != nil {
		return err
	}
	return branch.CancelAppointment(input.Start, customer)
}

// PayAppointment settles the appointment fee from one of the customer's
// accounts. A free appointment yields an empty result.
func (uc *DeviceUseCase) PayAppointment(ctx context.Context, input AppointmentInput, accountID string) (*TransferResult, error) {
	branch, customer, err := uc.branchAndCustomer(ctx, input)
	if err != nil {
		return nil, err
	}
	appointment, err := branch.FindAppointment(input.Start, customer)
	if err != nil {
		return nil, err
	}
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	tx, err := appointment.PayCost(account)
	uc.metrics.CashOperation(branch.Kind(), "appointment", resultLabel(err))
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return &TransferResult{}, nil
	}

	return uc.journal.record(ctx, tx, branch.ID()), nil
}

func (uc *DeviceUseCase) branchAndCustomer(ctx context.Context, input AppointmentInput) (*domain.Branch, *domain.Customer, error) {
	device, err := uc.deviceRepo.GetByID(ctx, input.BranchID)
	if err != nil {
		return nil, nil, err
	}
	branch, ok := device.(*domain.Branch)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s is not a branch", domain.ErrUnsupportedDevice, input.BranchID)
	}

	customer, err := uc.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	return branch, customer, nil
}
