package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobank/internal/domain"
)

var appointmentStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestBranch_BookAndCancelAppointment(t *testing.T) {
	rates := newRates()
	customer := newCustomer(t, "cust-1", rates)
	branch := domain.NewBranch("br-1", "Old town", dec("100"))

	appointment, err := branch.BookAppointment(customer, appointmentStart)
	require.NoError(t, err)
	assert.Equal(t, appointmentStart.Add(time.Hour), appointment.End())
	assert.Len(t, branch.Appointments(), 1)

	assert.ErrorIs(t, branch.CancelAppointment(appointmentStart, newCustomer(t, "cust-2", rates)), domain.ErrAppointmentNotFound)

	require.NoError(t, branch.CancelAppointment(appointmentStart, customer))
	assert.True(t, appointment.IsCancelled())
	assert.Empty(t, branch.Appointments())
	assert.ErrorIs(t, appointment.Cancel(), domain.ErrAppointmentCancelled)
}

func TestAppointment_Cost(t *testing.T) {
	tests := []struct {
		balance string
		want    string
	}{
		{balance: "500", want: "20"},
		{balance: "5000", want: "10"},
		{balance: "50000", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.balance, func(t *testing.T) {
			rates := newRates()
			customer := newCustomer(t, "cust-1", rates)
			fundedAccount(t, "acc-1", customer, domain.EUR, rates, tt.balance)
			branch := domain.NewBranch("br-1", "Old town", dec("0"))
			appointment, err := branch.BookAppointment(customer, appointmentStart)
			require.NoError(t, err)

			cost, err := appointment.Cost()
			require.NoError(t, err)
			assert.True(t, cost.Equal(dec(tt.want)), "cost %s", cost)
		})
	}
}

func TestAppointment_PayCost(t *testing.T) {
	rates := newRates()
	customer := newCustomer(t, "cust-1", rates)
	acc := fundedAccount(t, "acc-1", customer, domain.USD, rates, "500")
	other := fundedAccount(t, "acc-2", newCustomer(t, "cust-2", rates), domain.EUR, rates, "500")
	branch := domain.NewBranch("br-1", "Old town", dec("100"))
	appointment, err := branch.BookAppointment(customer, appointmentStart)
	require.NoError(t, err)

	_, err = appointment.PayCost(other)
	assert.ErrorIs(t, err, domain.ErrAccountNotOwned)

	tx, err := appointment.PayCost(acc)
	require.NoError(t, err)
	require.NotNil(t, tx)

	// SILVER pays 20 EUR, taken from the USD account at 1.1.
	assert.True(t, acc.Balance().Equal(dec("478")), "balance %s", acc.Balance())
	assert.True(t, branch.Balance().Equal(dec("120")))
	assert.Len(t, branch.History(), 1)

	require.NoError(t, appointment.Cancel())
	_, err = appointment.PayCost(acc)
	assert.ErrorIs(t, err, domain.ErrAppointmentCancelled)
}

func TestAppointment_PayCostPlatinumIsFree(t *testing.T) {
	rates := newRates()
	customer := newCustomer(t, "cust-1", rates)
	acc := fundedAccount(t, "acc-1", customer, domain.EUR, rates, "20000")
	branch := domain.NewBranch("br-1", "Old town", dec("100"))
	appointment, err := branch.BookAppointment(customer, appointmentStart)
	require.NoError(t, err)

	tx, err := appointment.PayCost(acc)
	require.NoError(t, err)
	assert.Nil(t, tx)
	assert.True(t, acc.Balance().Equal(dec("20000")))
	assert.True(t, branch.Balance().Equal(dec("100")))
}

func TestAppointment_SendDetails(t *testing.T) {
	customer := domain.NewCustomer("cust-1", "Ana", "Horak", "", "+4201", nil)
	branch := domain.NewBranch("br-1", "Old town", dec("0"))
	appointment, err := branch.BookAppointment(customer, appointmentStart)
	require.NoError(t, err)

	require.NoError(t, appointment.SendDetails(domain.ChannelSMS))
	require.Len(t, customer.Messages(), 1)
	assert.Contains(t, customer.Messages()[0], "Old town")

	assert.ErrorIs(t, appointment.SendDetails(domain.ChannelEmail), domain.ErrMissingContact)
}

func TestBranch_BookAppointmentInactive(t *testing.T) {
	branch := domain.NewBranch("br-1", "Old town", dec("0"))
	_, err := branch.Deactivate()
	require.NoError(t, err)

	_, err = branch.BookAppointment(domain.NewCustomer("cust-1", "A", "B", "", "", nil), appointmentStart)
	assert.ErrorIs(t, err, domain.ErrDeviceInactive)
}
