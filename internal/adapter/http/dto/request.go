package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/usecase"
)

// CreateCustomerRequest represents a request to register a customer.
type CreateCustomerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name"  validate:"required,max=100"`
	Email     string `json:"email"      validate:"omitempty,email"`
	Phone     string `json:"phone"      validate:"omitempty,e164"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCustomerRequest) ToUseCaseInput() usecase.AddCustomerInput {
	return usecase.AddCustomerInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

// NotifyRequest represents a message sent to a customer.
type NotifyRequest struct {
	Message string `json:"message" validate:"required"`
	Channel string `json:"channel" validate:"required"`
}

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Currency   string `json:"currency"    validate:"required,len=3"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		CustomerID: r.CustomerID,
		Currency:   r.Currency,
	}
}

// MoneyRequest is an amount in a currency applied to one account.
type MoneyRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"required,len=3"`
}

// ToUseCaseInput converts to use case input.
func (r *MoneyRequest) ToUseCaseInput(accountID string) usecase.MoneyInput {
	return usecase.MoneyInput{
		AccountID: accountID,
		Amount:    r.Amount,
		Currency:  r.Currency,
	}
}

// InterestRateRequest sets an account interest rate.
type InterestRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// CreateTransferRequest represents a request to create a transfer.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id" validate:"required"`
	ToAccountID   string          `json:"to_account_id"   validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"     validate:"max=255"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.CreateTransferInput {
	return usecase.CreateTransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}

// IssueCardRequest represents a request to issue a card.
type IssueCardRequest struct {
	AccountID string `json:"account_id" validate:"required"`
	Type      string `json:"type"       validate:"required"`
	PIN       string `json:"pin"        validate:"required,numeric,min=4,max=12"`
}

// ToUseCaseInput converts to use case input.
func (r *IssueCardRequest) ToUseCaseInput() usecase.IssueCardInput {
	return usecase.IssueCardInput{
		AccountID: r.AccountID,
		Type:      r.Type,
		PIN:       r.PIN,
	}
}

// PurchaseRequest represents a card payment to a merchant.
type PurchaseRequest struct {
	MerchantID string          `json:"merchant_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"    validate:"required,len=3"`
	PIN        string          `json:"pin"         validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *PurchaseRequest) ToUseCaseInput(cardID string) usecase.PurchaseInput {
	return usecase.PurchaseInput{
		CardID:     cardID,
		MerchantID: r.MerchantID,
		Amount:     r.Amount,
		Currency:   r.Currency,
		PIN:        r.PIN,
	}
}

// CardLimitRequest sets or clears a card purchase limit.
type CardLimitRequest struct {
	Limit decimal.Decimal `json:"limit"`
	PIN   string          `json:"pin" validate:"required"`
}

// AddDeviceRequest represents a request to install an ATM or open a branch.
type AddDeviceRequest struct {
	Kind     string          `json:"kind"     validate:"required,oneof=atm branch"`
	Location string          `json:"location" validate:"required"`
	Balance  decimal.Decimal `json:"balance"`
}

// ToUseCaseInput converts to use case input.
func (r *AddDeviceRequest) ToUseCaseInput() usecase.AddDeviceInput {
	return usecase.AddDeviceInput{
		Location: r.Location,
		Balance:  r.Balance,
	}
}

// CashRequest represents a cash operation at a device.
type CashRequest struct {
	CardID   string          `json:"card_id"  validate:"required"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"required,len=3"`
	PIN      string          `json:"pin"      validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *CashRequest) ToUseCaseInput(deviceID string) usecase.CashInput {
	return usecase.CashInput{
		DeviceID: deviceID,
		CardID:   r.CardID,
		Amount:   r.Amount,
		Currency: r.Currency,
		PIN:      r.PIN,
	}
}

// CardAuthRequest identifies a card at an ATM.
type CardAuthRequest struct {
	CardID string `json:"card_id" validate:"required"`
	PIN    string `json:"pin"     validate:"required"`
}

// AppointmentRequest identifies an appointment at a branch.
type AppointmentRequest struct {
	CustomerID string    `json:"customer_id" validate:"required"`
	Start      time.Time `json:"start"       validate:"required"`
	AccountID  string    `json:"account_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AppointmentRequest) ToUseCaseInput(branchID string) usecase.AppointmentInput {
	return usecase.AppointmentInput{
		BranchID:   branchID,
		CustomerID: r.CustomerID,
		Start:      r.Start,
	}
}

// ChangeRateRequest replaces a directed exchange rate.
type ChangeRateRequest struct {
	From string          `json:"from" validate:"required,len=3"`
	To   string          `json:"to"   validate:"required,len=3"`
	Rate decimal.Decimal `json:"rate"`
}

// CurrencyPairRequest names an unordered currency pair.
type CurrencyPairRequest struct {
	A string `json:"a" validate:"required,len=3"`
	B string `json:"b" validate:"required,len=3"`
}

// CreateInvoiceRequest represents a request to issue an invoice.
type CreateInvoiceRequest struct {
	IssuerID      string          `json:"issuer_id"     validate:"required"`
	PayerID       string          `json:"payer_id"      validate:"required"`
	ToAccountID   string          `json:"to_account_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"      validate:"required,len=3"`
	TaxPercentage decimal.Decimal `json:"tax_percentage"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateInvoiceRequest) ToUseCaseInput() usecase.CreateInvoiceInput {
	return usecase.CreateInvoiceInput{
		IssuerID:      r.IssuerID,
		PayerID:       r.PayerID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Currency:      r.Currency,
		TaxPercentage: r.TaxPercentage,
	}
}

// AcceptInvoiceRequest binds the paying account to an invoice.
type AcceptInvoiceRequest struct {
	FromAccountID string `json:"from_account_id" validate:"required"`
}
