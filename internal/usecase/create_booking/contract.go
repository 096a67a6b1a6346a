package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Ledger журнал загрузки слотов
type Ledger interface {
	Reserve(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// ContentValidator определение клиента выбранного контента
type ContentValidator interface {
	ResolveClient(ctx context.Context, contentType domain.ContentType, contentIDs []int64) (int64, error)
}

// DeviceConfigProvider устройство и его текущий шаблон слота
type DeviceConfigProvider interface {
	DeviceConfig(ctx context.Context, deviceID int64) (*domain.Device, *domain.SlotConfiguration, error)
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	BookingCreated()
	BookingRejected(reason string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
