package get_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
)

// UseCase use case для обзора загрузки слотов устройства
type UseCase struct {
	grid     SlotGrid
	bookings BookingReader
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(grid SlotGrid, bookings BookingReader, logger Logger) *UseCase {
	return &UseCase{
		grid:     grid,
		bookings: bookings,
		logger:   logger,
	}
}

// Execute выполняет use case получения обзора слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: device=%d, date=%s", req.DeviceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.DeviceID <= 0 {
		return nil, fmt.Errorf("%w: deviceId must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.ConfigurationID != nil && *req.ConfigurationID <= 0 {
		return nil, fmt.Errorf("%w: configId must be positive", ErrInvalidInput)
	}

	date := domain.DateOnly(req.Date)

	// 2. Сетка мастер-слотов на день
	slots, err := uc.grid.SlotsFor(ctx, req.DeviceID, domain.DateRange{Start: date, End: date})
	if err != nil {
		switch {
		case errors.Is(err, slotconfig.ErrDeviceNotFound):
			uc.logger.Warn("GetSlots: device id=%d not found", req.DeviceID)
			return nil, ErrDeviceNotFound
		case errors.Is(err, slotconfig.ErrConfigNotFound):
			uc.logger.Warn("GetSlots: config of device id=%d not found", req.DeviceID)
			return nil, ErrConfigNotFound
		}
		uc.logger.Error("GetSlots: failed to build grid for device id=%d: %v", req.DeviceID, err)
		return nil, fmt.Errorf("%w: failed to build grid: %v", ErrInternal, err)
	}

	var configID int64
	if len(slots) > 0 {
		configID = slots[0].SlotConfigID
	}

	// 3. Клиент выбирал подслоты по другому шаблону
	if req.ConfigurationID != nil && *req.ConfigurationID != configID {
		uc.logger.Warn("GetSlots: device id=%d uses config id=%d, requested id=%d", req.DeviceID, configID, *req.ConfigurationID)
		return nil, fmt.Errorf("%w: device uses configuration %d", ErrConfigMismatch, configID)
	}

	// 4. Бронирования устройства на эту дату
	bookings, err := uc.bookings.ListByDevice(ctx, domain.DeviceBookingsFilter{
		DeviceID: req.DeviceID,
		Date:     &date,
	})
	if err != nil {
		uc.logger.Error("GetSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Раскладываем по слотам
	overview := buildOverview(slots, bookings)

	uc.logger.Info("GetSlots: %d slots, %d bookings for device=%d, date=%s",
		len(overview), len(bookings), req.DeviceID, date.Format(domain.DateFormat))

	return &Response{
		DeviceID:        req.DeviceID,
		Date:            date,
		ConfigurationID: configID,
		Slots:           overview,
	}, nil
}
