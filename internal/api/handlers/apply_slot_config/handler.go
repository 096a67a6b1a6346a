package apply_slot_config

import (
	"errors"
	"net/http"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig"
	"github.com/m04kA/DOOH-InventoryService/internal/service/slotconfig/models"
)

const (
	msgInvalidDeviceID    = "некорректный ID устройства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDeviceNotFound     = "устройство не найдено"
	msgConfigNotFound     = "шаблон слота не найден"
	msgConflict           = "действующие бронирования устройства несовместимы с новым шаблоном"
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

// Handle PUT /api/v1/devices/{deviceId}/slot-configuration
// Шаблон меняется только если действующие бронирования помещаются в новое число подслотов
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID, err := handlers.PathInt64(r, "deviceId")
	if err != nil {
		h.logger.Warn("PUT /devices/{id}/slot-configuration - Invalid device ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeviceID)
		return
	}

	var req models.ApplyToDeviceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil || req.ConfigurationID <= 0 {
		h.logger.Warn("PUT /devices/{id}/slot-configuration - Invalid request body: device_id=%d, error=%v", deviceID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.DeviceID = deviceID

	result, err := h.service.ApplyToDevice(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, slotconfig.ErrDeviceNotFound):
			h.logger.Warn("PUT /devices/{id}/slot-configuration - Device not found: device_id=%d", deviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, slotconfig.ErrConfigNotFound):
			h.logger.Warn("PUT /devices/{id}/slot-configuration - Config not found: config_id=%d", req.ConfigurationID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, slotconfig.ErrReassignmentConflict):
			h.logger.Warn("PUT /devices/{id}/slot-configuration - Reassignment rejected: device_id=%d, error=%v", deviceID, err)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PUT /devices/{id}/slot-configuration - Failed to apply config: device_id=%d, error=%v", deviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /devices/{id}/slot-configuration - Config applied successfully: device_id=%d, config_id=%d",
		deviceID, result.ConfigurationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
