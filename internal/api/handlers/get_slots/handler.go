package get_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	getSlots "github.com/m04kA/DOOH-InventoryService/internal/usecase/get_slots"
)

const (
	msgInvalidDeviceID = "некорректный ID устройства"
	msgMissingDate     = "дата обязательна"
	msgInvalidParams   = "некорректный формат даты (YYYY-MM-DD) или configId"
	msgDeviceNotFound  = "устройство не найдено"
	msgConfigNotFound  = "шаблон слота устройства не найден"
	msgConfigMismatch  = "шаблон слота не совпадает с шаблоном устройства"
)

type Handler struct {
	useCase GetSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots/{deviceId}
// Query params: date (required, YYYY-MM-DD), configId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID, err := handlers.PathInt64(r, "deviceId")
	if err != nil {
		h.logger.Warn("GET /slots/{deviceId} - Invalid device ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeviceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /slots/{deviceId} - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(deviceID, dateStr, r.URL.Query().Get("configId"))
	if err != nil {
		h.logger.Warn("GET /slots/{deviceId} - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots/{deviceId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getSlots.ErrDeviceNotFound):
			h.logger.Warn("GET /slots/{deviceId} - Device not found: device_id=%d", deviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, getSlots.ErrConfigNotFound):
			h.logger.Warn("GET /slots/{deviceId} - Config not found: device_id=%d", deviceID)
			handlers.RespondNotFound(w, msgConfigNotFound)

		case errors.Is(err, getSlots.ErrConfigMismatch):
			h.logger.Warn("GET /slots/{deviceId} - Config mismatch: device_id=%d, error=%v", deviceID, err)
			handlers.RespondBadRequest(w, msgConfigMismatch)

		default:
			h.logger.Error("GET /slots/{deviceId} - Failed to get slots: device_id=%d, error=%v", deviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots/{deviceId} - Slots retrieved successfully: device_id=%d, date=%s, slots_count=%d",
		deviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
