package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const appointmentLength = time.Hour

// Appointment is a customer's booked slot at a branch.
type Appointment struct {
	mu sync.Mutex

	customer  *Customer
	start     time.Time
	end       time.Time
	branch    *Branch
	cancelled bool
}

func (a *Appointment) Customer() *Customer { return a.customer }
func (a *Appointment) Start() time.Time { return a.start }
func (a *Appointment) End() time.Time { return a.end }
func (a *Appointment) Branch() *Branch { return a.branch }

func (a *Appointment) IsCancelled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancelled
}

// Cancel marks the appointment cancelled.
func (a *Appointment) Cancel() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancelled {
		return ErrAppointmentCancelled
	}
	a.cancelled = true
	return nil
}

// Cost is the EUR fee for the customer's current tier.
func (a *Appointment) Cost() (decimal.Decimal, error) {
	tier, err := a.customer.Tier()
	if err != nil {
		return decimal.Zero, err
	}
	return AppointmentCost(tier), nil
}

// PayCost withdraws the appointment fee from account into the branch cash.
// A zero fee moves nothing and returns a nil record.
func (a *Appointment) PayCost(account *Account) (*Transaction, error) {
	if account == nil || !a.customer.Owns(account) {
		return nil, ErrAccountNotOwned
	}
	if a.IsCancelled() {
		return nil, ErrAppointmentCancelled
	}

	cost, err := a.Cost()
	if err != nil {
		return nil, err
	}
	if cost.IsZero() {
		return nil, nil
	}

	b := a.branch
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.active {
		return nil, ErrDeviceInactive
	}

	tx, err := NewTransaction(account, nil, cost, EUR, "Appointment fee at branch "+b.location)
	if err != nil {
		return nil, err
	}
	if err := account.Withdraw(cost, EUR); err != nil {
		return nil, err
	}
	b.balance = b.balance.Add(cost)
	b.history = append(b.history, tx)
	account.Record(tx)

	return tx, nil
}

// SendDetails notifies the customer about the appointment.
func (a *Appointment) SendDetails(channel NotificationChannel) error {
	return a.customer.Notify("You have an upcoming appointment: "+a.String(), channel)
}

func (a *Appointment) String() string {
	return fmt.Sprintf("Appointment [start=%s, end=%s, branch=%s, cancelled=%t]",
		a.start.Format(time.RFC3339), a.end.Format(time.RFC3339), a.branch.location, a.IsCancelled())
}
