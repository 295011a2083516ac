package memory

import (
	"context"
	"fmt"

	"github.com/iho/gobank/internal/domain"
)

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	rows *table[*domain.Invoice]
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository() *InvoiceRepository {
	return &InvoiceRepository{rows: newTable[*domain.Invoice]()}
}

// Create stores a new invoice.
func (r *InvoiceRepository) Create(_ context.Context, invoice *domain.Invoice) error {
	if !r.rows.insert(invoice.Number(), invoice) {
		return fmt.Errorf("invoice %s already exists", invoice.Number())
	}
	return nil
}

// GetByNumber retrieves an invoice by its number.
func (r *InvoiceRepository) GetByNumber(_ context.Context, number string) (*domain.Invoice, error) {
	invoice, ok := r.rows.get(number)
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	return invoice, nil
}
