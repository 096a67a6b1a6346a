package slotconfig

import "github.com/m04kA/DOOH-InventoryService/pkg/dbmetrics"

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor
