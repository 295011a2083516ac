package memory

import (
	"context"
	"fmt"

	"github.com/iho/gobank/internal/domain"
)

// AccountRepository implements usecase.AccountRepository. Closed accounts
// stay readable so their history can still be inspected.
type AccountRepository struct {
	rows *table[*domain.Account]
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{rows: newTable[*domain.Account]()}
}

// Create stores a new account.
func (r *AccountRepository) Create(_ context.Context, account *domain.Account) error {
	if !r.rows.insert(account.ID(), account) {
		return fmt.Errorf("account %s already exists", account.ID())
	}
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return account, nil
}

// List returns accounts in opening order.
func (r *AccountRepository) List(_ context.Context, limit, offset int) ([]*domain.Account, error) {
	return r.rows.page(limit, offset), nil
}
