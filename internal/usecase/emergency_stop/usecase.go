package emergency_stop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage"
	"github.com/m04kA/DOOH-InventoryService/internal/integrations/playback"
)

// UseCase экстренная остановка показа бронирования
type UseCase struct {
	ledger       Ledger
	commander    Commander
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(ledger Ledger, commander Commander, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		ledger:       ledger,
		commander:    commander,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute останавливает бронирование и освобождает его подслоты
// Повторная остановка возвращает текущее состояние без ошибки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	reason := strings.TrimSpace(req.Reason)
	uc.logger.Info("EmergencyStop: booking id=%d, reason=%q", req.BookingID, reason)

	// 1. Валидация
	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if utf8.RuneCountInString(reason) > domain.MaxStopReasonLength {
		return nil, fmt.Errorf("%w: reason is longer than %d characters", ErrInvalidInput, domain.MaxStopReasonLength)
	}

	// 2. Освобождаем подслоты
	booking, err := uc.ledger.Release(ctx, req.BookingID, reason)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyStopped):
			uc.logger.Info("EmergencyStop: booking id=%d is already stopped", req.BookingID)
			return &Response{Booking: booking, AlreadyStopped: true}, nil
		case errors.Is(err, storage.ErrBookingNotFound):
			uc.logger.Warn("EmergencyStop: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, domain.ErrInvalidStateTransition):
			uc.logger.Warn("EmergencyStop: booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidStateTransition, err)
		}
		uc.logger.Error("EmergencyStop: failed to release booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to release: %v", ErrInternal, err)
	}

	uc.metrics.EmergencyStopped()

	// 3. Команда устройству. Подслоты уже освобождены, ошибка доставки только логируется
	cmd := playback.NewStopCommand(booking, uc.timeProvider.Now())
	if err := uc.commander.Send(ctx, cmd); err != nil {
		uc.logger.Error("EmergencyStop: failed to deliver STOP for booking id=%d to device id=%d: %v",
			booking.ID, booking.Slot.DeviceID, err)
	}

	uc.logger.Info("EmergencyStop: booking id=%d stopped, slot=%s freed %v", booking.ID, booking.Slot, booking.SubSlots)
	return &Response{Booking: booking}, nil
}
