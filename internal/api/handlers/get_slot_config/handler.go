package get_slot_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
)

const (
	msgInvalidConfigID = "некорректный ID шаблона"
	msgNotFound        = "шаблон слота не найден"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slot-configurations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	configID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /slot-configurations/{id} - Invalid config ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidConfigID)
		return
	}

	result, err := h.service.GetByID(r.Context(), configID)
	if err != nil {
		if errors.Is(err, slotconfig.ErrConfigNotFound) {
			h.logger.Warn("GET /slot-configurations/{id} - Config not found: config_id=%d", configID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /slot-configurations/{id} - Failed to get config: config_id=%d, error=%v", configID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slot-configurations/{id} - Config retrieved successfully: config_id=%d", configID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
