package register_slot_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidConfig      = "некорректный шаблон слота: подслоты должны заполнять мастер-слот целиком"
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

// Handle POST /api/v1/slot-configurations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slot-configurations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, slotconfig.ErrConfigInvalid) {
			h.logger.Warn("POST /slot-configurations - Invalid configuration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidConfig)
			return
		}
		h.logger.Error("POST /slot-configurations - Failed to register configuration: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /slot-configurations - Configuration registered successfully: config_id=%d, sub_slots=%d",
		result.ID, result.SubSlotsPerCycle)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
