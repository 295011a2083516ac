package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobank/internal/domain"
	"github.com/iho/gobank/internal/usecase"
)

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	AccountIDs []string `json:"account_ids"`
}

// CustomerFromDomain converts domain customer to response.
func CustomerFromDomain(c *domain.Customer) *CustomerResponse {
	accounts := c.Accounts()
	ids := make([]string, len(accounts))
	for i, a := range accounts {
		ids[i] = a.ID()
	}
	return &CustomerResponse{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		AccountIDs: ids,
	}
}

// CustomersFromDomain converts domain customers to responses.
func CustomersFromDomain(customers []*domain.Customer) []*CustomerResponse {
	result := make([]*CustomerResponse, len(customers))
	for i, c := range customers {
		result[i] = CustomerFromDomain(c)
	}
	return result
}

// TierResponse represents a customer's tier and the policy it implies.
type TierResponse struct {
	Tier            string          `json:"tier"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
	Currency        string          `json:"currency"`
	FeePercentage   decimal.Decimal `json:"fee_percentage"`
	FraudThreshold  decimal.Decimal `json:"fraud_threshold"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	AppointmentCost decimal.Decimal `json:"appointment_cost"`
}

// TierFromReport converts a tier report to response.
func TierFromReport(r usecase.TierReport) *TierResponse {
	return &TierResponse{
		Tier:            string(r.Tier),
		TotalBalance:    r.TotalBalance,
		Currency:        r.Currency.String(),
		FeePercentage:   r.FeePercentage,
		FraudThreshold:  r.FraudThreshold,
		InterestRate:    r.InterestRate,
		AppointmentCost: r.AppointmentCost,
	}
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	Open         bool            `json:"open"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:           a.ID(),
		CustomerID:   a.Owner().ID,
		Currency:     a.Currency().String(),
		Balance:      a.Balance(),
		InterestRate: a.InterestRate(),
		Open:         a.IsOpen(),
		CreatedAt:    a.CreatedAt(),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// TransactionResponse represents a money movement in API responses.
type TransactionResponse struct {
	FromAccountID string          `json:"from_account_id,omitempty"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		Amount:      t.Amount(),
		Currency:    t.Currency().String(),
		Description: t.Description(),
		CreatedAt:   t.CreatedAt(),
	}
	if from := t.From(); from != nil {
		resp.FromAccountID = from.ID()
	}
	if to := t.To(); to != nil {
		resp.ToAccountID = to.ID()
	}
	return resp
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txs []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txs))
	for i, t := range txs {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	DeviceID    string          `json:"device_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	resp := &EntryResponse{
		ID:        e.ID,
		AccountID: e.AccountID,
		DeviceID:  e.DeviceID,
		Amount:    e.Amount,
		Currency:  e.Currency.String(),
		CreatedAt: e.CreatedAt,
	}
	if e.Transaction != nil {
		resp.Description = e.Transaction.Description()
	}
	return resp
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransferResponse is a completed money movement with its journal entries.
// Transaction is nil when nothing moved.
type TransferResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Entries     []*EntryResponse     `json:"entries"`
}

// TransferFromResult converts a use case result to response.
func TransferFromResult(r *usecase.TransferResult) *TransferResponse {
	resp := &TransferResponse{Entries: EntriesFromDomain(r.Entries)}
	if r.Transaction != nil {
		resp.Transaction = TransactionFromDomain(r.Transaction)
	}
	return resp
}

// CardResponse represents a card in API responses. The PIN never leaves
// the service.
type CardResponse struct {
	ID        string           `json:"id"`
	Type      string           `json:"type"`
	AccountID string           `json:"account_id"`
	Limit     *decimal.Decimal `json:"limit,omitempty"`
}

// CardFromDomain converts domain card to response.
func CardFromDomain(c *domain.Card) *CardResponse {
	resp := &CardResponse{
		ID:        c.ID(),
		Type:      string(c.Type()),
		AccountID: c.Account().ID(),
	}
	if limit := c.Limit(); !limit.IsZero() {
		resp.Limit = &limit
	}
	return resp
}

// DeviceResponse represents an ATM or branch in API responses.
type DeviceResponse struct {
	ID       string          `json:"id"`
	Kind     string          `json:"kind"`
	Location string          `json:"location"`
	Balance  decimal.Decimal `json:"balance"`
	Active   bool            `json:"active"`
}

// DeviceFromDomain converts domain device to response.
func DeviceFromDomain(d domain.Device) *DeviceResponse {
	return &DeviceResponse{
		ID:       d.ID(),
		Kind:     string(d.Kind()),
		Location: d.Location(),
		Balance:  d.Balance(),
		Active:   d.IsActive(),
	}
}

// DevicesFromDomain converts domain devices to responses.
func DevicesFromDomain(devices []domain.Device) []*DeviceResponse {
	result := make([]*DeviceResponse, len(devices))
	for i, d := range devices {
		result[i] = DeviceFromDomain(d)
	}
	return result
}

// BalanceResponse is an account balance read at a device.
type BalanceResponse struct {
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
}

// MessageResponse carries a customer message.
type MessageResponse struct {
	Message string `json:"message"`
}

// AmountResponse carries a bare amount, such as released or unreserved
// capital.
type AmountResponse struct {
	Amount decimal.Decimal `json:"amount"`
}

// AppointmentResponse represents a branch appointment in API responses.
type AppointmentResponse struct {
	BranchID   string    `json:"branch_id"`
	CustomerID string    `json:"customer_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Cancelled  bool      `json:"cancelled"`
}

// AppointmentFromDomain converts domain appointment to response.
func AppointmentFromDomain(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		BranchID:   a.Branch().ID(),
		CustomerID: a.Customer().ID,
		Start:      a.Start(),
		End:        a.End(),
		Cancelled:  a.IsCancelled(),
	}
}

// RateResponse represents a directed exchange rate in API responses.
type RateResponse struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Rate     decimal.Decimal `json:"rate"`
	Disabled bool            `json:"disabled"`
}

// RateFromView converts a rate view to response.
func RateFromView(v *usecase.RateView) *RateResponse {
	return &RateResponse{
		From:     v.From.String(),
		To:       v.To.String(),
		Rate:     v.Rate,
		Disabled: v.Disabled,
	}
}

// RatesFromViews converts rate views to responses.
func RatesFromViews(views []usecase.RateView) []*RateResponse {
	result := make([]*RateResponse, len(views))
	for i := range views {
		result[i] = RateFromView(&views[i])
	}
	return result
}

// ConversionResponse is the result of a currency conversion.
type ConversionResponse struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Result decimal.Decimal `json:"result"`
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	Number        string          `json:"number"`
	IssuerID      string          `json:"issuer_id"`
	PayerID       string          `json:"payer_id"`
	ToAccountID   string          `json:"to_account_id"`
	FromAccountID string          `json:"from_account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	Status        string          `json:"status"`
}

// InvoiceFromDomain converts domain invoice to response.
func InvoiceFromDomain(i *domain.Invoice) *InvoiceResponse {
	resp := &InvoiceResponse{
		Number:      i.Number(),
		IssuerID:    i.Issuer().ID,
		PayerID:     i.Payer().ID,
		ToAccountID: i.ToAccount().ID(),
		Amount:      i.Amount(),
		Tax:         i.TaxAmount(),
		Total:       i.TotalAmount(),
		Currency:    i.Currency().String(),
		Status:      string(i.Status()),
	}
	if from := i.FromAccount(); from != nil {
		resp.FromAccountID = from.ID()
	}
	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse represents the service health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
