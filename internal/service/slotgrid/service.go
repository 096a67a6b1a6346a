package slotgrid

import (
	"context"
	"fmt"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Service сетка мастер-слотов устройства
type Service struct {
	configs DeviceConfigProvider
}

// NewService создает сервис сетки слотов
func NewService(configs DeviceConfigProvider) *Service {
	return &Service{configs: configs}
}

// SlotsFor мастер-слоты устройства на каждый день диапазона и каждый час рабочего окна
// Ошибки провайдера шаблонов (устройство или шаблон не найдены) пробрасываются как есть
func (s *Service) SlotsFor(ctx context.Context, deviceID int64, dates domain.DateRange) ([]domain.TimeSlot, error) {
	if err := dates.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateRange, err)
	}
	if dates.Days() > domain.MaxGridDays {
		return nil, fmt.Errorf("%w: %d days requested, at most %d", ErrInvalidDateRange, dates.Days(), domain.MaxGridDays)
	}

	_, config, err := s.configs.DeviceConfig(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	return domain.BuildTimeSlots(deviceID, config, dates), nil
}

// IsPeak час пик
func IsPeak(hour int) bool {
	return domain.IsPeak(hour)
}
