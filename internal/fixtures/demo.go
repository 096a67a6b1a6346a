package fixtures

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	"github.com/m04kA/DOOH-InventoryService/internal/integrations/catalog"
	"github.com/m04kA/DOOH-InventoryService/pkg/ptr"
)

// ConfigRepository создание шаблонов слотов
type ConfigRepository interface {
	Create(ctx context.Context, config *domain.SlotConfiguration) (*domain.SlotConfiguration, error)
	List(ctx context.Context) ([]*domain.SlotConfiguration, error)
}

// DeviceRepository создание устройств
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) (*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
}

type Logger interface {
	Info(format string, v ...interface{})
}

// Шаблоны демо-набора
var demoConfigs = []domain.SlotConfiguration{
	{
		Name:                      "2 min / 12 x 10s",
		MasterSlotDurationSeconds: 120,
		SubSlotDurationSeconds:    10,
		SubSlotsPerCycle:          12,
		PeakPrice:                 decimal.NewFromInt(1200),
		NonPeakPrice:              decimal.NewFromInt(700),
	},
	{
		Name:                      "1 h / 12 x 5 min",
		MasterSlotDurationSeconds: 3600,
		SubSlotDurationSeconds:    300,
		SubSlotsPerCycle:          12,
		PeakPrice:                 decimal.RequireFromString("4500.50"),
		NonPeakPrice:              decimal.NewFromInt(2500),
	},
}

// Seed создает демо-шаблоны и устройства, если хранилище пустое
// Возвращает false, если данные уже есть
func Seed(ctx context.Context, configs ConfigRepository, devices DeviceRepository, log Logger) (bool, error) {
	existing, err := devices.List(ctx)
	if err != nil {
		return false, fmt.Errorf("fixtures: list devices: %w", err)
	}
	if len(existing) > 0 {
		return false, nil
	}

	created := make([]*domain.SlotConfiguration, 0, len(demoConfigs))
	for i := range demoConfigs {
		c := demoConfigs[i]
		saved, err := configs.Create(ctx, &c)
		if err != nil {
			return false, fmt.Errorf("fixtures: create config %q: %w", c.Name, err)
		}
		created = append(created, saved)
	}

	demoDevices := []domain.Device{
		{Name: "Mall entrance kiosk", Status: domain.DeviceOnline, SlotConfigID: created[0].ID},
		{Name: "Metro hall screen", Status: domain.DeviceOnline, SlotConfigID: created[1].ID},
		{Name: "Airport gate 4", Status: domain.DeviceOffline, SlotConfigID: created[0].ID},
	}
	for i := range demoDevices {
		if _, err := devices.Create(ctx, &demoDevices[i]); err != nil {
			return false, fmt.Errorf("fixtures: create device %q: %w", demoDevices[i].Name, err)
		}
	}

	log.Info("Demo data seeded: configs=%d, devices=%d", len(created), len(demoDevices))
	return true, nil
}

// Catalog встроенный каталог контента: клиенты 1 и 2, один смешанный плейлист
func Catalog() *catalog.Static {
	return catalog.NewStatic(
		[]domain.MediaItem{
			{ID: 101, ClientID: 1, Name: "coffee-morning.mp4", DurationSeconds: 10},
			{ID: 102, ClientID: 1, Name: "coffee-evening.mp4", DurationSeconds: 10},
			{ID: 201, ClientID: 2, Name: "bank-deposit.png", DurationSeconds: 5},
		},
		[]domain.Playlist{
			{ID: 11, Name: "Coffee all day", ClientID: ptr.Ptr(int64(1)), MediaIDs: []int64{101, 102}},
			{ID: 12, Name: "Partners mix", MediaIDs: []int64{101, 201}},
		},
	)
}
