package slotconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
)

// Service реестр шаблонов слотов и их назначений устройствам
type Service struct {
	configRepo ConfigRepository
	deviceRepo DeviceRepository
	bookings   BookingReader
	logger     Logger
}

// NewService создает новый экземпляр реестра шаблонов
func NewService(
	configRepo ConfigRepository,
	deviceRepo DeviceRepository,
	bookings BookingReader,
	logger Logger,
) *Service {
	return &Service{
		configRepo: configRepo,
		deviceRepo: deviceRepo,
		bookings:   bookings,
		logger:     logger,
	}
}

// Register валидирует и сохраняет новый шаблон
// Шаблон неизменяем: для другой нарезки регистрируется новый шаблон
func (s *Service) Register(ctx context.Context, req *models.RegisterConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Register: registering config name=%q, master=%ds, sub=%ds x %d",
		req.Name, req.MasterSlotDurationSeconds, req.SubSlotDurationSeconds, req.SubSlotsPerCycle)

	// 1. Проверяем правило нарезки
	config := req.ToDomainConfig()
	if err := config.Validate(); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	// 2. Сохраняем
	created, err := s.configRepo.Create(ctx, config)
	if err != nil {
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered config id=%d", created.ID)
	return models.FromDomainConfig(created), nil
}

// GetByID получает шаблон по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error) {
	config, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainConfig(config), nil
}

// List получает все шаблоны
func (s *Service) List(ctx context.Context) (*models.ConfigListResponse, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfigList(configs), nil
}

// Get получает domain модель шаблона
func (s *Service) Get(ctx context.Context, id int64) (*domain.SlotConfiguration, error) {
	config, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrConfigNotFound) {
			s.logger.Warn("Get: config id=%d not found", id)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Get: repository error for config id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}
	return config, nil
}

// DeviceConfig возвращает устройство и назначенный ему шаблон
func (s *Service) DeviceConfig(ctx context.Context, deviceID int64) (*domain.Device, *domain.SlotConfiguration, error) {
	device, err := s.getDevice(ctx, deviceID)
	if err != nil {
		return nil, nil, err
	}

	config, err := s.Get(ctx, device.SlotConfigID)
	if err != nil {
		return nil, nil, err
	}

	return device, config, nil
}

// ApplyToDevice назначает шаблон устройству
//
// Если действующее (scheduled/active) бронирование устройства занимает подслот
// с индексом, которого нет в новом шаблоне, назначение отклоняется.
func (s *Service) ApplyToDevice(ctx context.Context, req *models.ApplyToDeviceRequest) (*models.DeviceConfigResponse, error) {
	s.logger.Info("ApplyToDevice: applying config id=%d to device id=%d", req.ConfigurationID, req.DeviceID)

	// 1. Проверяем устройство и шаблон
	device, err := s.getDevice(ctx, req.DeviceID)
	if err != nil {
		return nil, err
	}

	config, err := s.Get(ctx, req.ConfigurationID)
	if err != nil {
		return nil, err
	}

	if device.SlotConfigID == config.ID {
		s.logger.Info("ApplyToDevice: device id=%d already uses config id=%d", device.ID, config.ID)
		return &models.DeviceConfigResponse{DeviceID: device.ID, DeviceName: device.Name, ConfigurationID: config.ID}, nil
	}

	// 2. Проверяем совместимость действующих бронирований с новой нарезкой
	bookings, err := s.bookings.ListByDevice(ctx, domain.DeviceBookingsFilter{DeviceID: device.ID})
	if err != nil {
		s.logger.Error("ApplyToDevice: failed to list bookings of device id=%d: %v", device.ID, err)
		return nil, fmt.Errorf("%w: ApplyToDevice - list bookings: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		if b.IsHolding() && b.MaxSubSlot() >= config.SubSlotsPerCycle {
			s.logger.Warn("ApplyToDevice: booking id=%d holds sub-slot %d, config id=%d has only %d",
				b.ID, b.MaxSubSlot(), config.ID, config.SubSlotsPerCycle)
			return nil, fmt.Errorf("%w: booking id=%d holds sub-slot %d", ErrReassignmentConflict, b.ID, b.MaxSubSlot())
		}
	}

	// 3. Назначаем
	if err := s.deviceRepo.UpdateSlotConfig(ctx, device.ID, config.ID); err != nil {
		if errors.Is(err, storage.ErrDeviceNotFound) {
			return nil, ErrDeviceNotFound
		}
		s.logger.Error("ApplyToDevice: repository error for device id=%d: %v", device.ID, err)
		return nil, fmt.Errorf("%w: ApplyToDevice - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ApplyToDevice: device id=%d now uses config id=%d", device.ID, config.ID)
	return &models.DeviceConfigResponse{DeviceID: device.ID, DeviceName: device.Name, ConfigurationID: config.ID}, nil
}

func (s *Service) getDevice(ctx context.Context, deviceID int64) (*domain.Device, error) {
	device, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		if errors.Is(err, storage.ErrDeviceNotFound) {
			s.logger.Warn("device id=%d not found", deviceID)
			return nil, ErrDeviceNotFound
		}
		s.logger.Error("failed to get device id=%d: %v", deviceID, err)
		return nil, fmt.Errorf("%w: getDevice - repository error: %v", ErrInternal, err)
	}
	return device, nil
}
