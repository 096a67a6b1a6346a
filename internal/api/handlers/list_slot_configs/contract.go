package list_slot_configs

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
)

type ConfigService interface {
	List(ctx context.Context) (*models.ConfigListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
