package bookings

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// BookingReader чтение бронирований из журнала загрузки
type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByDevice(ctx context.Context, filter domain.DeviceBookingsFilter) ([]*domain.Booking, error)
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
