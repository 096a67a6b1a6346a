package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
	"github.com/m04kA/DOOH-InventoryService/internal/service/validator"
)

// Причины отказа для метрики slot_bookings_rejected_total
const (
	reasonInvalid     = "invalid_request"
	reasonContent     = "content"
	reasonDevice      = "device"
	reasonConflict    = "sub_slot_conflict"
	reasonCapacity    = "over_capacity"
	reasonTimeout     = "timeout"
	reasonUnavailable = "unavailable"
)

// DefaultReserveTimeout таймаут резервирования, если в конфигурации он не задан
const DefaultReserveTimeout = 5 * time.Second

// UseCase use case для создания бронирования подслотов
type UseCase struct {
	ledger         Ledger
	validator      ContentValidator
	configs        DeviceConfigProvider
	metrics        Metrics
	reserveTimeout time.Duration
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	ledger Ledger,
	validator ContentValidator,
	configs DeviceConfigProvider,
	metrics Metrics,
	reserveTimeout time.Duration,
	logger Logger,
) *UseCase {
	if reserveTimeout <= 0 {
		reserveTimeout = DefaultReserveTimeout
	}
	return &UseCase{
		ledger:         ledger,
		validator:      validator,
		configs:        configs,
		metrics:        metrics,
		reserveTimeout: reserveTimeout,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Все проверки выполняются до резервирования: при любой ошибке журнал не меняется
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: device=%d, date=%s, hour=%d, subSlots=%v, content=%s%v, mode=%s",
		req.DeviceID, req.Date.Format(domain.DateFormat), req.Hour, req.SubSlots, req.ContentType, req.ContentIDs, req.PlaybackMode)

	// 0. Валидация формы запроса
	contentType, mode, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, uc.reject(reasonInvalid, err)
	}

	now := uc.timeProvider.Now()

	// 1. Определяем клиента по контенту
	clientID, err := uc.validator.ResolveClient(ctx, contentType, req.ContentIDs)
	if err != nil {
		uc.logger.Warn("CreateBooking: client resolution failed: %v", err)
		reason := reasonContent
		if errors.Is(err, validator.ErrCatalogUnavailable) {
			reason = reasonUnavailable
		}
		return nil, uc.reject(reason, mapValidatorError(err))
	}

	if req.ClientID != nil && *req.ClientID != clientID {
		uc.logger.Warn("CreateBooking: request names client=%d, content belongs to client=%d", *req.ClientID, clientID)
		return nil, uc.reject(reasonContent, fmt.Errorf("%w: expected client %d, content belongs to %d", ErrClientMismatch, *req.ClientID, clientID))
	}

	// 2. Режим воспроизведения
	if err := validatePlayback(mode, req.StackDurationSeconds); err != nil {
		uc.logger.Warn("CreateBooking: playback validation failed: %v", err)
		return nil, uc.reject(reasonInvalid, err)
	}

	// 3. Период показа
	if err := validateDateRange(req.DateRange, req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date range validation failed: %v", err)
		return nil, uc.reject(reasonInvalid, err)
	}

	// 3.1. Устройство и его шаблон
	device, config, err := uc.configs.DeviceConfig(ctx, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, slotconfig.ErrDeviceNotFound):
			return nil, uc.reject(reasonDevice, ErrDeviceNotFound)
		case errors.Is(err, slotconfig.ErrConfigNotFound):
			return nil, uc.reject(reasonDevice, ErrConfigNotFound)
		}
		uc.logger.Error("CreateBooking: failed to get device id=%d: %v", req.DeviceID, err)
		return nil, fmt.Errorf("%w: failed to get device config: %v", ErrInternal, err)
	}

	if !device.IsBookable() {
		uc.logger.Warn("CreateBooking: device id=%d is %s", device.ID, device.Status)
		return nil, uc.reject(reasonDevice, fmt.Errorf("%w: device id=%d", ErrDeviceOffline, device.ID))
	}

	if req.ConfigurationID != nil && *req.ConfigurationID != config.ID {
		uc.logger.Warn("CreateBooking: request uses config id=%d, device id=%d uses config id=%d",
			*req.ConfigurationID, device.ID, config.ID)
		return nil, uc.reject(reasonInvalid, fmt.Errorf("%w: device uses configuration %d", ErrConfigMismatch, config.ID))
	}

	// 3.2. Час в рабочем окне
	if err := domain.ValidateHour(req.Hour); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, uc.reject(reasonInvalid, fmt.Errorf("%w: %v", ErrInvalidTimeSlot, err))
	}

	// 3.3. Подслоты в пределах шаблона
	subSlots, err := domain.NormalizeSubSlots(req.SubSlots, config.SubSlotsPerCycle)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, uc.reject(reasonInvalid, fmt.Errorf("%w: %v", ErrInvalidSubSlots, err))
	}

	slot := domain.NewTimeSlot(domain.NewTimeSlotKey(device.ID, req.Date, req.Hour), config)

	booking := &domain.Booking{
		Slot:                 slot.Key,
		SlotConfigID:         config.ID,
		SubSlotsPerCycle:     config.SubSlotsPerCycle,
		SubSlots:             subSlots,
		ClientID:             clientID,
		ContentType:          contentType,
		ContentIDs:           append([]int64(nil), req.ContentIDs...),
		PlaybackMode:         mode,
		StackDurationSeconds: req.StackDurationSeconds,
		DateRange: domain.DateRange{
			Start: domain.DateOnly(req.DateRange.Start),
			End:   domain.DateOnly(req.DateRange.End),
		},
		OccupancyPercent: config.OccupancyPercent(len(subSlots)),
		Status:           domain.InitialStatus(req.DateRange, now),
	}

	// 4. Резервируем с таймаутом: по истечении ничего не записывается
	reserveCtx, cancel := context.WithTimeout(ctx, uc.reserveTimeout)
	defer cancel()

	created, err := uc.ledger.Reserve(reserveCtx, booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSubSlotConflict):
			uc.logger.Warn("CreateBooking: slot %s: %v", slot.Key, err)
			return nil, uc.reject(reasonConflict, fmt.Errorf("%w: %v", ErrSubSlotConflict, err))
		case errors.Is(err, domain.ErrOverCapacity):
			uc.logger.Warn("CreateBooking: slot %s: %v", slot.Key, err)
			return nil, uc.reject(reasonCapacity, fmt.Errorf("%w: %v", ErrOverCapacity, err))
		case errors.Is(err, domain.ErrInvalidSubSlots):
			return nil, uc.reject(reasonInvalid, fmt.Errorf("%w: %v", ErrInvalidSubSlots, err))
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(reserveCtx.Err(), context.DeadlineExceeded):
			uc.logger.Warn("CreateBooking: reservation of slot %s timed out after %s", slot.Key, uc.reserveTimeout)
			return nil, uc.reject(reasonTimeout, ErrReserveTimeout)
		}
		uc.logger.Error("CreateBooking: failed to reserve slot %s: %v", slot.Key, err)
		return nil, fmt.Errorf("%w: failed to reserve: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, slot=%s, occupancy=%d%%, status=%s",
		created.ID, slot.Key, created.RoundedOccupancy(), created.Status)

	// 5. Возвращаем бронирование
	return &Response{
		Booking:     created,
		PricingTier: slot.PricingTier,
		Price:       slot.Price,
	}, nil
}

func (uc *UseCase) reject(reason string, err error) error {
	uc.metrics.BookingRejected(reason)
	return err
}

// mapValidatorError переводит ошибки валидатора в ошибки use case
func mapValidatorError(err error) error {
	switch {
	case errors.Is(err, validator.ErrNoContentSelected):
		return fmt.Errorf("%w: %v", ErrNoContentSelected, err)
	case errors.Is(err, validator.ErrMultiClientContent):
		return fmt.Errorf("%w: %v", ErrMultiClientContent, err)
	case errors.Is(err, validator.ErrContentNotFound):
		return fmt.Errorf("%w: %v", ErrContentNotFound, err)
	case errors.Is(err, validator.ErrCatalogUnavailable):
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return fmt.Errorf("%w: resolve client: %v", ErrInternal, err)
}
