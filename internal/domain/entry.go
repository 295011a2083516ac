package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one journal line: the effect of a transaction on one account.
type Entry struct {
	CreatedAt   time.Time
	Transaction *Transaction
	ID          string
	AccountID   string
	DeviceID    string
	// Amount is negative for the debited side, positive for the credited
	// side, in the transaction currency.
	Amount   decimal.Decimal
	Currency Currency
}

// EntriesFor splits tx into its debit and credit lines. newID is called
// once per line.
func EntriesFor(tx *Transaction, deviceID string, newID func() string) []*Entry {
	var entries []*Entry

	if from := tx.From(); from != nil {
		entries = append(entries, &Entry{
			CreatedAt:   tx.CreatedAt(),
			Transaction: tx,
			ID:          newID(),
			AccountID:   from.ID(),
			DeviceID:    deviceID,
			Amount:      tx.Amount().Neg(),
			Currency:    tx.Currency(),
		})
	}

	if to := tx.To(); to != nil {
		entries = append(entries, &Entry{
			CreatedAt:   tx.CreatedAt(),
			Transaction: tx,
			ID:          newID(),
			AccountID:   to.ID(),
			DeviceID:    deviceID,
			Amount:      tx.Amount(),
			Currency:    tx.Currency(),
		})
	}

	return entries
}
