package usecase

import "time"

const (
	// DefaultListLimit is used when a listing is requested without a limit.
	DefaultListLimit = 20

	// MaxListLimit caps the page size of every listing.
	MaxListLimit = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
