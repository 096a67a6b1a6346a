package slotconfig

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// ConfigRepository интерфейс репозитория шаблонов слотов
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error)
	GetByID(ctx context.Context, id int64) (*domain.SlotConfiguration, error)
	List(ctx context.Context) ([]*domain.SlotConfiguration, error)
}

// DeviceRepository интерфейс репозитория устройств
type DeviceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Device, error)
	UpdateSlotConfig(ctx context.Context, deviceID, configID int64) error
}

// BookingReader чтение бронирований устройства для проверки переназначения шаблона
type BookingReader interface {
	ListByDevice(ctx context.Context, filter domain.DeviceBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
