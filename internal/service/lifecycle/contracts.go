package lifecycle

import (
	"context"
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Ledger журнал загрузки слотов
type Ledger interface {
	ListByStatus(ctx context.Context, statuses []domain.BookingStatus) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error)
}

// Metrics счетчик автоматических переходов
type Metrics interface {
	StatusAdvanced(status string)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
