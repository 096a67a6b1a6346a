package list_slot_configs

import (
	"net/http"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
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

// Handle GET /api/v1/slot-configurations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /slot-configurations - Failed to list configurations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slot-configurations - Configurations retrieved successfully: count=%d", len(result.Configs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
