package memory

import (
	"context"
	"fmt"

	"github.com/iho/gobank/internal/domain"
)

// DeviceRepository implements usecase.DeviceRepository.
type DeviceRepository struct {
	rows *table[domain.Device]
}

// NewDeviceRepository creates a new DeviceRepository.
func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{rows: newTable[domain.Device]()}
}

// Create stores a new device.
func (r *DeviceRepository) Create(_ context.Context, device domain.Device) error {
	if !r.rows.insert(device.ID(), device) {
		return fmt.Errorf("device %s already exists", device.ID())
	}
	return nil
}

// GetByID retrieves a device by ID.
func (r *DeviceRepository) GetByID(_ context.Context, id string) (domain.Device, error) {
	device, ok := r.rows.get(id)
	if !ok {
		return nil, domain.ErrDeviceNotFound
	}
	return device, nil
}

// List returns devices in installation order.
func (r *DeviceRepository) List(_ context.Context) ([]domain.Device, error) {
	return r.rows.page(0, 0), nil
}

// Delete removes a device.
func (r *DeviceRepository) Delete(_ context.Context, id string) error {
	if !r.rows.remove(id) {
		return domain.ErrDeviceNotFound
	}
	return nil
}
