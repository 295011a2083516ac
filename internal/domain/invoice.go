package domain

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus tracks an invoice through acceptance and payment.
type InvoiceStatus string

const (
	InvoiceStatusUnaccepted InvoiceStatus = "UNACCEPTED"
	InvoiceStatusFallingDue InvoiceStatus = "FALLING_DUE"
	InvoiceStatusRejected   InvoiceStatus = "REJECTED"
	InvoiceStatusPaid       InvoiceStatus = "PAID"
)

// Invoice is a payment request from an issuer to a payer.
type Invoice struct {
	mu sync.Mutex

	number        string
	issuer        *Customer
	payer         *Customer
	fromAccount   *Account
	toAccount     *Account
	amount        decimal.Decimal
	currency      Currency
	taxPercentage decimal.Decimal
	status        InvoiceStatus
}

// NewInvoice creates an unaccepted invoice payable into toAccount.
func NewInvoice(issuer, payer *Customer, toAccount *Account, amount decimal.Decimal, currency Currency, taxPercentage decimal.Decimal) (*Invoice, error) {
	if issuer == nil || payer == nil {
		return nil, ErrCustomerNotFound
	}
	if toAccount == nil {
		return nil, ErrAccountNotFound
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !currency.IsValid() {
		return nil, ErrInvalidCurrency
	}
	if taxPercentage.IsNegative() {
		return nil, ErrInvalidTaxPercentage
	}

	return &Invoice{
		number:        uuid.NewString(),
		issuer:        issuer,
		payer:         payer,
		toAccount:     toAccount,
		amount:        amount,
		currency:      currency,
		taxPercentage: taxPercentage,
		status:        InvoiceStatusUnaccepted,
	}, nil
}

func (i *Invoice) Number() string { return i.number }
func (i *Invoice) Issuer() *Customer { return i.issuer }
func (i *Invoice) Payer() *Customer { return i.payer }
func (i *Invoice) ToAccount() *Account { return i.toAccount }
func (i *Invoice) Amount() decimal.Decimal { return i.amount }
func (i *Invoice) Currency() Currency { return i.currency }

func (i *Invoice) Status() InvoiceStatus {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.status
}

// FromAccount is the payer account chosen on acceptance, nil before.
func (i *Invoice) FromAccount() *Account {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.fromAccount
}

func (i *Invoice) TaxAmount() decimal.Decimal {
	return i.amount.Mul(i.taxPercentage)
}

func (i *Invoice) TotalAmount() decimal.Decimal {
	return i.amount.Add(i.TaxAmount())
}

// Accept binds the payer account that will settle the invoice.
func (i *Invoice) Accept(fromAccount *Account) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status != InvoiceStatusUnaccepted {
		return ErrInvoiceStatus
	}
	if fromAccount == nil || !i.payer.Owns(fromAccount) {
		return ErrAccountNotOwned
	}

	available, err := convertBalance(fromAccount, i.currency)
	if err != nil {
		return err
	}
	if available.LessThan(i.amount) {
		return ErrInsufficientFunds
	}

	i.fromAccount = fromAccount
	i.status = InvoiceStatusFallingDue
	return nil
}

// Reject refuses an invoice that is neither rejected nor paid yet.
func (i *Invoice) Reject() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status == InvoiceStatusRejected || i.status == InvoiceStatusPaid {
		return ErrInvoiceStatus
	}
	i.status = InvoiceStatusRejected
	return nil
}

// Pay transfers the invoice amount from the accepted account.
func (i *Invoice) Pay() (*Transaction, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.status != InvoiceStatusFallingDue {
		return nil, ErrInvoiceStatus
	}

	amount, err := i.fromAccount.convert(i.amount, i.currency)
	if err != nil {
		return nil, err
	}

	tx, err := Transfer(i.fromAccount, i.toAccount, amount)
	if err != nil {
		return nil, err
	}
	tx.SetDescription("Payment of invoice " + i.number)
	i.status = InvoiceStatusPaid

	return tx, nil
}

func convertBalance(a *Account, to Currency) (decimal.Decimal, error) {
	balance := a.Balance()
	if a.currency == to {
		return balance, nil
	}
	if a.rates == nil {
		return decimal.Zero, ErrUndefinedRate
	}
	return a.rates.Convert(a.currency, to, balance)
}
