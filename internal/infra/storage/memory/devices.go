package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage"
)

// DeviceRepository устройства в памяти
type DeviceRepository struct {
	mu      sync.RWMutex
	devices map[int64]domain.Device
	nextID  int64
}

// NewDeviceRepository создает пустой репозиторий устройств
func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{
		devices: make(map[int64]domain.Device),
	}
}

// Create сохраняет устройство; если ID не задан, назначает следующий
func (r *DeviceRepository) Create(_ context.Context, device *domain.Device) (*domain.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *device
	if stored.ID == 0 {
		r.nextID++
		stored.ID = r.nextID
	} else if stored.ID > r.nextID {
		r.nextID = stored.ID
	}

	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.devices[stored.ID] = stored

	result := stored
	return &result, nil
}

// GetByID получает устройство по ID
func (r *DeviceRepository) GetByID(_ context.Context, id int64) (*domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	device, ok := r.devices[id]
	if !ok {
		return nil, storage.ErrDeviceNotFound
	}
	return &device, nil
}

// List все устройства по возрастанию ID
func (r *DeviceRepository) List(_ context.Context) ([]*domain.Device, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Device, 0, len(r.devices))
	for _, d := range r.devices {
		device := d
		result = append(result, &device)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UpdateSlotConfig назначает устройству шаблон слота
func (r *DeviceRepository) UpdateSlotConfig(_ context.Context, deviceID, configID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	device, ok := r.devices[deviceID]
	if !ok {
		return storage.ErrDeviceNotFound
	}

	device.SlotConfigID = configID
	device.UpdatedAt = time.Now()
	r.devices[deviceID] = device
	return nil
}
