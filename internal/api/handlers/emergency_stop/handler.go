package emergency_stop

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	emergencyStop "github.com/m04kA/DOOH-InventoryService/internal/usecase/emergency_stop"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "причина остановки слишком длинная"
	msgNotFound           = "бронирование не найдено"
	msgCannotStop         = "завершенное бронирование нельзя остановить"
)

type Handler struct {
	useCase EmergencyStopUseCase
	logger  Logger
}

func NewHandler(useCase EmergencyStopUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/emergency-stop
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/emergency-stop - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req EmergencyStopRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /bookings/{id}/emergency-stop - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &emergencyStop.Request{
		BookingID: bookingID,
		Reason:    req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, emergencyStop.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/emergency-stop - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, emergencyStop.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/emergency-stop - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, emergencyStop.ErrInvalidStateTransition):
			h.logger.Warn("POST /bookings/{id}/emergency-stop - Cannot stop: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondConflict(w, msgCannotStop)

		default:
			h.logger.Error("POST /bookings/{id}/emergency-stop - Failed to stop booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/emergency-stop - Booking stopped: booking_id=%d, already_stopped=%t",
		bookingID, result.AlreadyStopped)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
