package get_slots

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
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotgrid"
	"github.com/m04kA/DOOH-InventoryService/pkg/logger"
	"github.com/m04kA/DOOH-InventoryService/pkg/ptr"
)

// MockSlotGrid мок для SlotGrid
type MockSlotGrid struct {
	mock.Mock
}

func (m *MockSlotGrid) SlotsFor(ctx context.Context, deviceID int64, dates domain.DateRange) ([]domain.TimeSlot, error) {
	args := m.Called(ctx, deviceID, dates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TimeSlot), args.Error(1)
}

var day = time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *UseCase
	ledger   *memory.Ledger
	deviceID int64
	configID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	configs := memory.NewSlotConfigRepository()
	devices := memory.NewDeviceRepository()
	ledger := memory.NewLedger()

	config, err := configs.Create(ctx, &domain.SlotConfiguration{
		Name:                      "2m / 12 x 10s",
		MasterSlotDurationSeconds: 120,
		SubSlotDurationSeconds:    10,
		SubSlotsPerCycle:          12,
		PeakPrice:                 decimal.NewFromInt(100),
		NonPeakPrice:              decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	device, err := devices.Create(ctx, &domain.Device{Name: "station-hall", Status: domain.DeviceOnline, SlotConfigID: config.ID})
	require.NoError(t, err)

	registry := slotconfig.NewService(configs, devices, ledger, logger.Nop{})
	uc := NewUseCase(slotgrid.NewService(registry), ledger, logger.Nop{})

	return &fixture{uc: uc, ledger: ledger, deviceID: device.ID, configID: config.ID}
}

func (f *fixture) reserve(t *testing.T, hour int, clientID int64, subSlots ...int) *domain.Booking {
	t.Helper()

	b, err := f.ledger.Reserve(context.Background(), &domain.Booking{
		Slot:             domain.NewTimeSlotKey(f.deviceID, day, hour),
		SlotConfigID:     f.configID,
		SubSlotsPerCycle: 12,
		SubSlots:         subSlots,
		ClientID:         clientID,
		ContentType:      domain.ContentMedia,
		ContentIDs:       []int64{1},
		PlaybackMode:     domain.PlaybackFixed,
		DateRange:        domain.DateRange{Start: day, End: day},
		OccupancyPercent: domain.OccupancyPercent(len(subSlots), 12),
		Status:           domain.StatusScheduled,
	})
	require.NoError(t, err)
	return b
}

func TestGetSlots_Overview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first := f.reserve(t, 14, 1, 0, 1, 2, 3, 4, 5, 6)
	f.reserve(t, 14, 2, 7, 8, 9, 10, 11)
	stopped := f.reserve(t, 8, 3, 0, 1)
	_, err := f.ledger.Release(ctx, stopped.ID, "")
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{DeviceID: f.deviceID, Date: day.Add(15 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, day, resp.Date)
	assert.Equal(t, f.configID, resp.ConfigurationID)
	require.Len(t, resp.Slots, domain.SlotsPerDay)

	for _, s := range resp.Slots {
		switch s.Slot.Key.Hour {
		case 14:
			assert.InDelta(t, 100.0, s.TotalOccupancy, 1e-9)
			assert.Empty(t, s.FreeSubSlots)
			require.Len(t, s.Claims, 2)
			assert.Equal(t, first.ID, s.Claims[0].BookingID)
			assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, s.Claims[0].SubSlots)
		case 8:
			assert.Equal(t, domain.TierPeak, s.Slot.PricingTier)
			assert.Zero(t, s.TotalOccupancy)
			assert.Len(t, s.FreeSubSlots, 12)
			assert.Empty(t, s.Claims)
		default:
			assert.Zero(t, s.TotalOccupancy)
			assert.Len(t, s.FreeSubSlots, 12)
		}
	}
}

func TestGetSlots_MultiDayBookingShowsOnEveryDayOfRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.ledger.Reserve(ctx, &domain.Booking{
		Slot:             domain.NewTimeSlotKey(f.deviceID, day, 10),
		SlotConfigID:     f.configID,
		SubSlotsPerCycle: 12,
		SubSlots:         []int{0, 1, 2},
		ClientID:         1,
		ContentType:      domain.ContentMedia,
		ContentIDs:       []int64{1},
		PlaybackMode:     domain.PlaybackFixed,
		DateRange:        domain.DateRange{Start: day, End: day.AddDate(0, 0, 3)},
		OccupancyPercent: domain.OccupancyPercent(3, 12),
		Status:           domain.StatusScheduled,
	})
	require.NoError(t, err)

	resp, err := f.uc.Execute(ctx, &Request{DeviceID: f.deviceID, Date: day.AddDate(0, 0, 2)})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		if s.Slot.Key.Hour != 10 {
			assert.Empty(t, s.Claims)
			continue
		}
		assert.InDelta(t, 25.0, s.TotalOccupancy, 1e-9)
		assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9, 10, 11}, s.FreeSubSlots)
		require.Len(t, s.Claims, 1)
		assert.Equal(t, b.ID, s.Claims[0].BookingID)
	}

	after, err := f.uc.Execute(ctx, &Request{DeviceID: f.deviceID, Date: day.AddDate(0, 0, 4)})
	require.NoError(t, err)
	for _, s := range after.Slots {
		assert.Empty(t, s.Claims)
	}
}

func TestGetSlots_ConfigCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, &Request{DeviceID: f.deviceID, Date: day, ConfigurationID: ptr.Ptr(f.configID)})
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, &Request{DeviceID: f.deviceID, Date: day, ConfigurationID: ptr.Ptr(f.configID + 1)})
	assert.ErrorIs(t, err, ErrConfigMismatch)
}

func TestGetSlots_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		gridErr error
		wantErr error
	}{
		{"zero device", &Request{DeviceID: 0, Date: day}, nil, ErrInvalidInput},
		{"no date", &Request{DeviceID: 1}, nil, ErrInvalidInput},
		{"unknown device", &Request{DeviceID: 1, Date: day}, slotconfig.ErrDeviceNotFound, ErrDeviceNotFound},
		{"missing config", &Request{DeviceID: 1, Date: day}, slotconfig.ErrConfigNotFound, ErrConfigNotFound},
		{"grid failure", &Request{DeviceID: 1, Date: day}, errors.New("boom"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := new(MockSlotGrid)
			if tt.gridErr != nil {
				grid.On("SlotsFor", mock.Anything, tt.req.DeviceID, mock.Anything).Return(nil, tt.gridErr)
			}

			uc := NewUseCase(grid, memory.NewLedger(), logger.Nop{})
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
