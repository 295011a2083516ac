package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DeviceKind distinguishes the cash-handling devices.
type DeviceKind string

const (
	DeviceKindATM    DeviceKind = "atm"
	DeviceKindBranch DeviceKind = "branch"
)

// Device is a cash-handling point backed by capital reserved from the bank.
type Device interface {
	ID() string
	Kind() DeviceKind
	Location() string
	Balance() decimal.Decimal
	IsActive() bool
	History() []*Transaction
	WithdrawCash(card CashCard, amount decimal.Decimal, currency Currency, pin string) (*Transaction, error)
	DepositCash(card CashCard, amount decimal.Decimal, currency Currency, pin string) (*Transaction, error)
	// Deactivate stops the device for good and hands back its cash.
	Deactivate() (decimal.Decimal, error)
}

// cashDevice holds the state shared by ATMs and branches.
type cashDevice struct {
	mu sync.Mutex

	id       string
	location string
	balance  decimal.Decimal
	active   bool
	history  []*Transaction
}

func newCashDevice(id, location string, balance decimal.Decimal) cashDevice {
	return cashDevice{id: id, location: location, balance: balance, active: true}
}

func (d *cashDevice) ID() string       { return d.id }
func (d *cashDevice) Location() string { return d.location }

func (d *cashDevice) Balance() decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.balance
}

func (d *cashDevice) IsActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

func (d *cashDevice) History() []*Transaction {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Transaction, len(d.history))
	copy(out, d.history)
	return out
}

func (d *cashDevice) Deactivate() (decimal.Decimal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active {
		return decimal.Zero, ErrDeviceInactive
	}
	d.active = false
	remaining := d.balance
	d.balance = decimal.Zero

	return remaining, nil
}

// authorize requires d.mu to be held.
func (d *cashDevice) authorize(card CashCard, amount decimal.Decimal, pin string) error {
	if !d.active {
		return ErrDeviceInactive
	}
	if card == nil || card.Account() == nil {
		return ErrCardNotFound
	}
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !card.ValidatePIN(pin) {
		return ErrInvalidPIN
	}
	return nil
}

// withdraw requires d.mu to be held. The device balance is checked before
// the account is touched, so a failure leaves both unchanged.
func (d *cashDevice) withdraw(card CashCard, amount decimal.Decimal, currency Currency, description string) (*Transaction, error) {
	if d.balance.LessThan(amount) {
		return nil, ErrInsufficientDeviceFunds
	}

	account := card.Account()
	tx, err := NewTransaction(account, nil, amount, currency, description)
	if err != nil {
		return nil, err
	}
	if err := account.Withdraw(amount, currency); err != nil {
		return nil, err
	}
	d.balance = d.balance.Sub(amount)
	d.record(card, tx)

	return tx, nil
}

// deposit requires d.mu to be held.
func (d *cashDevice) deposit(card CashCard, amount decimal.Decimal, currency Currency, description string) (*Transaction, error) {
	account := card.Account()
	tx, err := NewTransaction(nil, account, amount, currency, description)
	if err != nil {
		return nil, err
	}
	if err := account.Deposit(amount, currency); err != nil {
		return nil, err
	}
	d.balance = d.balance.Add(amount)
	d.record(card, tx)

	return tx, nil
}

func (d *cashDevice) record(card CashCard, tx *Transaction) {
	d.history = append(d.history, tx)
	card.Account().Record(tx)
	card.Record(tx)
}

// ATM dispenses and accepts cash in any currency the exchange can convert
// into the card account's currency.
type ATM struct {
	cashDevice
}

// NewATM creates an active ATM loaded with balance.
func NewATM(id, location string, balance decimal.Decimal) *ATM {
	return &ATM{cashDevice: newCashDevice(id, location, balance)}
}

func (a *ATM) Kind() DeviceKind { return DeviceKindATM }

// WithdrawCash pays out amount in currency, debiting the converted amount.
func (a *ATM) WithdrawCash(card CashCard, amount decimal.Decimal, currency Currency, pin string) (*Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.authorize(card, amount, pin); err != nil {
		return nil, err
	}
	return a.withdraw(card, amount, currency, "Cash withdrawal from ATM at "+a.location)
}

// DepositCash takes in amount in currency, crediting the converted amount.
func (a *ATM) DepositCash(card CashCard, amount decimal.Decimal, currency Currency, pin string) (*Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.authorize(card, amount, pin); err != nil {
		return nil, err
	}
	return a.deposit(card, amount, currency, "Cash deposit to ATM at "+a.location)
}

// CheckBalance reports the card account's balance and currency.
func (a *ATM) CheckBalance(card CashCard, pin string) (decimal.Decimal, Currency, error) {
	if err := a.gate(card, pin); err != nil {
		return decimal.Zero, "", err
	}
	account := card.Account()
	return account.Balance(), account.Currency(), nil
}

// LastMessage returns the latest message delivered to the card owner.
func (a *ATM) LastMessage(card CashCard, pin string) (string, error) {
	if err := a.gate(card, pin); err != nil {
		return "", err
	}
	messages := card.Account().Owner().Messages()
	if len(messages) == 0 {
		return "No messages", nil
	}
	return messages[len(messages)-1], nil
}

func (a *ATM) gate(card CashCard, pin string) error {
	if !a.IsActive() {
		return ErrDeviceInactive
	}
	if card == nil || card.Account() == nil {
		return ErrCardNotFound
	}
	if !card.ValidatePIN(pin) {
		return ErrInvalidPIN
	}
	return nil
}

// Branch handles cash only in the card account's own currency and hosts
// appointments.
type Branch struct {
	cashDevice

	appointments []*Appointment
}

// NewBranch creates an active branch holding balance.
func NewBranch(id, location string, balance decimal.Decimal) *Branch {
	return &Branch{cashDevice: newCashDevice(id, location, balance)}
}

func (b *Branch) Kind() DeviceKind { return DeviceKindBranch }

// WithdrawCash pays out amount; currency must equal the account currency.
func (b *Branch) WithdrawCash(card CashCard, amount decimal.Decimal, currency Currency, pin string) (*Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.authorize(card, amount, pin); err != nil {
		return nil, err
	}
	if card.Account().Currency() != currency {
		return nil, ErrCurrencyMismatch
	}
	return b.withdraw(card, amount, currency, "Cash withdrawal at branch "+b.location)
}

// DepositCash takes in amount; currency must equal the account currency.
func (b *Branch) DepositCash(card CashCard, amount decimal.Decimal, currency Currency, pin string) (*Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.authorize(card, amount, pin); err != nil {
		return nil, err
	}
	if card.Account().Currency() != currency {
		return nil, ErrCurrencyMismatch
	}
	return b.deposit(card, amount, currency, "Cash deposit at branch "+b.location)
}

// BookAppointment reserves a one-hour slot starting at start.
func (b *Branch) BookAppointment(customer *Customer, start time.Time) (*Appointment, error) {
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.active {
		return nil, ErrDeviceInactive
	}
	appointment := &Appointment{
		customer: customer,
		start:    start,
		end:      start.Add(appointmentLength),
		branch:   b,
	}
	b.appointments = append(b.appointments, appointment)

	return appointment, nil
}

// CancelAppointment cancels and drops the customer's appointment at start.
func (b *Branch) CancelAppointment(start time.Time, customer *Customer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, appointment := range b.appointments {
		if appointment.start.Equal(start) && appointment.customer == customer {
			if err := appointment.Cancel(); err != nil {
				return err
			}
			b.appointments = append(b.appointments[:i], b.appointments[i+1:]...)
			return nil
		}
	}
	return ErrAppointmentNotFound
}

// FindAppointment returns the customer's appointment starting at start.
func (b *Branch) FindAppointment(start time.Time, customer *Customer) (*Appointment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, appointment := range b.appointments {
		if appointment.start.Equal(start) && appointment.customer == customer {
			return appointment, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

// Appointments returns the booked appointments.
func (b *Branch) Appointments() []*Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Appointment, len(b.appointments))
	copy(out, b.appointments)
	return out
}
