package slotconfig

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage/memory"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
)

type MockBookingReader struct {
	mock.Mock
}

func (m *MockBookingReader) ListByDevice(ctx context.Context, filter domain.DeviceBookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

type fixture struct {
	service *Service
	configs *memory.SlotConfigRepository
	devices *memory.DeviceRepository
	ledger  *memory.Ledger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		configs: memory.NewSlotConfigRepository(),
		devices: memory.NewDeviceRepository(),
		ledger:  memory.NewLedger(),
	}
	f.service = NewService(f.configs, f.devices, f.ledger, logger.Nop{})
	return f
}

func registerReq(master, sub, perCycle int) *models.RegisterConfigRequest {
	return &models.RegisterConfigRequest{
		Name:                      "test",
		MasterSlotDurationSeconds: master,
		SubSlotDurationSeconds:    sub,
		SubSlotsPerCycle:          perCycle,
		PeakPrice:                 decimal.NewFromInt(100),
		NonPeakPrice:              decimal.NewFromInt(60),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("valid configuration", func(t *testing.T) {
		f := newFixture(t)

		resp, err := f.service.Register(ctx, registerReq(120, 10, 12))
		require.NoError(t, err)
		assert.NotZero(t, resp.ID)

		got, err := f.service.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, 12, got.SubSlotsPerCycle)
		assert.True(t, decimal.NewFromInt(100).Equal(got.PeakPrice))
	})

	t.Run("12 x 10 does not add up to 100", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Register(ctx, registerReq(100, 10, 12))
		assert.ErrorIs(t, err, ErrConfigInvalid)

		list, err := f.service.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list.Configs)
	})

	t.Run("non positive values", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Register(ctx, registerReq(0, 0, 0))
		assert.ErrorIs(t, err, ErrConfigInvalid)
	})
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestApplyToDevice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	twelve, err := f.service.Register(ctx, registerReq(3600, 300, 12))
	require.NoError(t, err)
	eight, err := f.service.Register(ctx, registerReq(3600, 450, 8))
	require.NoError(t, err)

	_, err = f.devices.Create(ctx, &domain.Device{ID: 1, Name: "Mall entrance", Status: domain.DeviceOnline, SlotConfigID: twelve.ID})
	require.NoError(t, err)

	held, err := f.ledger.Reserve(ctx, &domain.Booking{
		Slot:             domain.NewTimeSlotKey(1, time.Now(), 9),
		SlotConfigID:     twelve.ID,
		SubSlotsPerCycle: 12,
		SubSlots:         []int{10, 11},
		ClientID:         1,
		Status:           domain.StatusScheduled,
		OccupancyPercent: domain.OccupancyPercent(2, 12),
	})
	require.NoError(t, err)

	t.Run("holding booking outside the new range", func(t *testing.T) {
		_, err := f.service.ApplyToDevice(ctx, &models.ApplyToDeviceRequest{DeviceID: 1, ConfigurationID: eight.ID})
		assert.ErrorIs(t, err, ErrReassignmentConflict)

		device, err := f.devices.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, twelve.ID, device.SlotConfigID)
	})

	t.Run("stopped booking no longer blocks", func(t *testing.T) {
		_, err := f.ledger.Release(ctx, held.ID, "")
		require.NoError(t, err)

		resp, err := f.service.ApplyToDevice(ctx, &models.ApplyToDeviceRequest{DeviceID: 1, ConfigurationID: eight.ID})
		require.NoError(t, err)
		assert.Equal(t, eight.ID, resp.ConfigurationID)

		_, config, err := f.service.DeviceConfig(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 8, config.SubSlotsPerCycle)
	})

	t.Run("unknown device", func(t *testing.T) {
		_, err := f.service.ApplyToDevice(ctx, &models.ApplyToDeviceRequest{DeviceID: 99, ConfigurationID: eight.ID})
		assert.ErrorIs(t, err, ErrDeviceNotFound)
	})

	t.Run("unknown config", func(t *testing.T) {
		_, err := f.service.ApplyToDevice(ctx, &models.ApplyToDeviceRequest{DeviceID: 1, ConfigurationID: 99})
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}

func TestApplyToDevice_BookingReaderError(t *testing.T) {
	ctx := context.Background()
	configs := memory.NewSlotConfigRepository()
	devices := memory.NewDeviceRepository()
	reader := new(MockBookingReader)
	service := NewService(configs, devices, reader, logger.Nop{})

	a, err := service.Register(ctx, registerReq(120, 10, 12))
	require.NoError(t, err)
	b, err := service.Register(ctx, registerReq(120, 20, 6))
	require.NoError(t, err)
	_, err = devices.Create(ctx, &domain.Device{ID: 5, Status: domain.DeviceOnline, SlotConfigID: a.ID})
	require.NoError(t, err)

	reader.On("ListByDevice", mock.Anything, domain.DeviceBookingsFilter{DeviceID: 5}).
		Return(nil, errors.New("connection refused"))

	_, err = service.ApplyToDevice(ctx, &models.ApplyToDeviceRequest{DeviceID: 5, ConfigurationID: b.ID})
	assert.ErrorIs(t, err, ErrInternal)
	reader.AssertExpectations(t)
}
