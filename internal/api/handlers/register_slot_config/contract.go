package register_slot_config

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
)

type ConfigService interface {
	Register(ctx context.Context, req *models.RegisterConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
