package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/iho/gobank/internal/domain"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	rows *table[*domain.Entry]

	mu        sync.RWMutex
	byAccount map[string][]*domain.Entry
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository() *EntryRepository {
	return &EntryRepository{
		rows:      newTable[*domain.Entry](),
		byAccount: make(map[string][]*domain.Entry),
	}
}

// Create appends an entry to the journal.
func (r *EntryRepository) Create(_ context.Context, entry *domain.Entry) error {
	if !r.rows.insert(entry.ID, entry) {
		return fmt.Errorf("entry %s already exists", entry.ID)
	}

	r.mu.Lock()
	r.byAccount[entry.AccountID] = append(r.byAccount[entry.AccountID], entry)
	r.mu.Unlock()

	return nil
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(_ context.Context, id string) (*domain.Entry, error) {
	entry, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return entry, nil
}

// GetByAccount returns an account's entries, oldest first.
func (r *EntryRepository) GetByAccount(_ context.Context, accountID string, limit, offset int) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return window(r.byAccount[accountID], limit, offset, func(e *domain.Entry) *domain.Entry { return e }), nil
}
