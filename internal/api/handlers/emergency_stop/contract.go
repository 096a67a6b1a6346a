package emergency_stop

import (
	"context"

	emergencyStop "github.com/m04kA/DOOH-InventoryService/internal/usecase/emergency_stop"
)

type EmergencyStopUseCase interface {
	Execute(ctx context.Context, req *emergencyStop.Request) (*emergencyStop.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
