package slotgrid

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// DeviceConfigProvider устройство и его текущий шаблон слота
type DeviceConfigProvider interface {
	DeviceConfig(ctx context.Context, deviceID int64) (*domain.Device, *domain.SlotConfiguration, error)
}
