package memory

import (
	"context"
	"fmt"

	"github.com/iho/gobank/internal/domain"
)

// CardRepository implements usecase.CardRepository.
type CardRepository struct {
	rows *table[*domain.Card]
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository() *CardRepository {
	return &CardRepository{rows: newTable[*domain.Card]()}
}

// Create stores a new card.
func (r *CardRepository) Create(_ context.Context, card *domain.Card) error {
	if !r.rows.insert(card.ID(), card) {
		return fmt.Errorf("card %s already exists", card.ID())
	}
	return nil
}

// GetByID retrieves a card by ID.
func (r *CardRepository) GetByID(_ context.Context, id string) (*domain.Card, error) {
	card, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrCardNotFound
	}
	return card, nil
}

// ListByAccount returns the cards issued for an account.
func (r *CardRepository) ListByAccount(_ context.Context, accountID string) ([]*domain.Card, error) {
	return r.rows.filter(func(c *domain.Card) bool {
		return c.Account().ID() == accountID
	}), nil
}

// DeleteByAccount removes every card issued for an account.
func (r *CardRepository) DeleteByAccount(ctx context.Context, accountID string) error {
	cards, err := r.ListByAccount(ctx, accountID)
	if err != nil {
		return err
	}
	for _, c := range cards {
		r.rows.remove(c.ID())
	}
	return nil
}
