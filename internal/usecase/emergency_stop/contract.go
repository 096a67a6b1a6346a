package emergency_stop

import (
	"context"
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/integrations/playback"
)

// Ledger журнал загрузки слотов
type Ledger interface {
	Release(ctx context.Context, bookingID int64, reason string) (*domain.Booking, error)
}

// Commander доставка управляющих команд на устройство
type Commander interface {
	Send(ctx context.Context, cmd playback.Command) error
}

// Metrics бизнес-метрики бронирований
type Metrics interface {
	EmergencyStopped()
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
