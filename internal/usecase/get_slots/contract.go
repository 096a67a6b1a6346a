package get_slots

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// SlotGrid сетка мастер-слотов устройства
type SlotGrid interface {
	SlotsFor(ctx context.Context, deviceID int64, dates domain.DateRange) ([]domain.TimeSlot, error)
}

// BookingReader чтение бронирований устройства
type BookingReader interface {
	// ListByDevice бронирования устройства с фильтром по дате мастер-слота
	ListByDevice(ctx context.Context, filter domain.DeviceBookingsFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
