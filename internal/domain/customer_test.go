package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iho/gobank/internal/domain"
)

func TestCustomer_Notify(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		phone   string
		channel domain.NotificationChannel
		wantErr error
	}{
		{name: "email", email: "a@example.com", channel: domain.ChannelEmail},
		{name: "sms", phone: "+4201", channel: domain.ChannelSMS},
		{name: "email missing", phone: "+4201", channel: domain.ChannelEmail, wantErr: domain.ErrMissingContact},
		{name: "phone missing", email: "a@example.com", channel: domain.ChannelSMS, wantErr: domain.ErrMissingContact},
		{name: "unknown channel", email: "a@example.com", channel: "PIGEON", wantErr: domain.ErrInvalidChannel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := domain.NewCustomer("cust-1", "Ana", "Horak", tt.email, tt.phone, nil)

			err := c.Notify("hello", tt.channel)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, c.Messages())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, []string{"hello"}, c.Messages())
		})
	}
}

func TestCustomer_FullName(t *testing.T) {
	c := domain.NewCustomer("cust-1", "Ana", "Horak", "", "", nil)
	assert.Equal(t, "Ana Horak", c.FullName())
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: domain.ErrNegativeAmount, want: "invalid_argument"},
		{err: domain.ErrAccountClosed, want: "invalid_state"},
		{err: domain.ErrUndefinedRate, want: "not_found"},
		{err: domain.ErrLimitExceeded, want: "policy_violation"},
		{err: domain.ErrInvalidPIN, want: "unauthorized"},
		{err: assert.AnError, want: "internal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.ErrorKind(tt.err))
	}
}

func TestParseCurrency(t *testing.T) {
	c, err := domain.ParseCurrency(" usd ")
	assert.NoError(t, err)
	assert.Equal(t, domain.USD, c)

	_, err = domain.ParseCurrency("JPY")
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
