package get_slot_config

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
)

type ConfigService interface {
	GetByID(ctx context.Context, id int64) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
