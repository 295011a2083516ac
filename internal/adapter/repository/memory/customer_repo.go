package memory

import (
	"context"
	"fmt"

	"github.com/iho/gobank/internal/domain"
)

// CustomerRepository implements usecase.CustomerRepository.
type CustomerRepository struct {
	rows *table[*domain.Customer]
}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{rows: newTable[*domain.Customer]()}
}

// Create stores a new customer.
func (r *CustomerRepository) Create(_ context.Context, customer *domain.Customer) error {
	if !r.rows.insert(customer.ID, customer) {
		return fmt.Errorf("customer %s already exists", customer.ID)
	}
	return nil
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	customer, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// List returns customers in registration order.
func (r *CustomerRepository) List(_ context.Context, limit, offset int) ([]*domain.Customer, error) {
	return r.rows.page(limit, offset), nil
}

// Delete removes a customer.
func (r *CustomerRepository) Delete(_ context.Context, id string) error {
	if !r.rows.remove(id) {
		return domain.ErrCustomerNotFound
	}
	return nil
}
