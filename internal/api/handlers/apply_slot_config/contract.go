package apply_slot_config

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
)

type ConfigService interface {
	ApplyToDevice(ctx context.Context, req *models.ApplyToDeviceRequest) (*models.DeviceConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
