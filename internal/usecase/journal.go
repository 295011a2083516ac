package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/gobank/internal/domain"
)

// TransferResult is a completed money movement with its journal lines.
type TransferResult struct {
	Transaction *domain.Transaction
	Entries     []*domain.Entry
}

// journal writes the entries of completed transactions.
type journal struct {
	entryRepo EntryRepository
	idGen     IDGenerator
	metrics   MetricsRecorder
	logger    zerolog.Logger
}

// record journals tx. The money has already moved when this runs, so a
// failing repository is logged and the accounts' own history stays the
// source of truth.
func (j journal) record(ctx context.Context, tx *domain.Transaction, deviceID string) *TransferResult {
	entries := domain.EntriesFor(tx, deviceID, j.idGen.Generate)
	written := make([]*domain.Entry, 0, len(entries))

	for _, e := range entries {
		if err := j.entryRepo.Create(ctx, e); err != nil {
			j.logger.Error().Err(err).
				Str("entry_id", e.ID).
				Str("account_id", e.AccountID).
				Msg("failed to journal entry")
			continue
		}
		written = append(written, e)
	}

	if tx.From() != nil {
		if fraud, err := tx.IsFraud(); err == nil && fraud {
			j.metrics.FraudFlagged()
			j.logger.Warn().
				Str("account_id", tx.From().ID()).
				Str("amount", tx.Amount().String()).
				Str("currency", tx.Currency().String()).
				Msg("transaction above fraud threshold")
		}
	}

	return &TransferResult{Transaction: tx, Entries: written}
}
