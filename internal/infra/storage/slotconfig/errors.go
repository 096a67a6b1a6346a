package slotconfig

import (
	"errors"

	"github.com/m04kA/DOOH-InventoryService/internal/infra/storage"
)

var (
	// ErrConfigNotFound возвращается, когда шаблон слота не найден
	ErrConfigNotFound = storage.ErrConfigNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slotconfig.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slotconfig.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slotconfig.repository: failed to scan row")
)
