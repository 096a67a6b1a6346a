package get_device_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	"github.com/m04kA/DOOH-InventoryService/internal/service/bookings"
)

const (
	msgInvalidDeviceID = "некорректный ID устройства"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/devices/{deviceId}/bookings
// Query params: status, date (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID, err := handlers.PathInt64(r, "deviceId")
	if err != nil {
		h.logger.Warn("GET /devices/{id}/bookings - Invalid device ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeviceID)
		return
	}

	serviceReq, err := ToServiceRequest(deviceID, r.URL.Query().Get("status"), r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /devices/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetDeviceBookings(r.Context(), serviceReq)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /devices/{id}/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /devices/{id}/bookings - Failed to get bookings: device_id=%d, error=%v", deviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /devices/{id}/bookings - Bookings retrieved successfully: device_id=%d, count=%d",
		deviceID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
