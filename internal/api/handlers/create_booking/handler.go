package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/DOOH-InventoryService/internal/api/handlers"
	"github.com/m04kA/DOOH-InventoryService/internal/domain"
	createBooking "github.com/m04kA/DOOH-InventoryService/internal/usecase/create_booking"
)

const (
	msgInvalidDeviceID    = "некорректный ID устройства"
	msgInvalidHour        = "некорректный час мастер-слота"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgAmbiguousContent   = "нужно указать либо contentId, либо contentIds"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidStack       = "длительность stack должна быть от 1 до 3600 секунд и только для режима stack"
	msgInvalidDateRange   = "некорректный период показа"
	msgInvalidTimeSlot    = "час вне рабочего окна устройства (06:00-22:00)"
	msgInvalidSubSlots    = "некорректный выбор подслотов"
	msgConfigMismatch     = "шаблон слота не совпадает с шаблоном устройства"
	msgClientMismatch     = "контент не принадлежит указанному клиенту"
	msgNoContent          = "контент не выбран"
	msgMultiClient        = "контент принадлежит нескольким клиентам"
	msgContentNotFound    = "контент не найден в каталоге"
	msgDeviceNotFound     = "устройство не найдено"
	msgConfigNotFound     = "шаблон слота устройства не найден"
	msgDeviceOffline      = "устройство офлайн"
	msgSubSlotConflict    = "подслот уже занят"
	msgOverCapacity       = "загрузка слота превысит 100%"
	msgReserveTimeout     = "не удалось зарезервировать слот вовремя, повторите запрос"
	msgCatalogUnavailable = "каталог контента недоступен"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{deviceId}/{date}/{hour}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID, err := handlers.PathInt64(r, "deviceId")
	if err != nil {
		h.logger.Warn("POST /slots/{deviceId}/{date}/{hour}/bookings - Invalid device ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeviceID)
		return
	}

	vars := mux.Vars(r)
	hour, err := strconv.Atoi(vars["hour"])
	if err != nil {
		h.logger.Warn("POST /slots/{deviceId}/{date}/{hour}/bookings - Invalid hour: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHour)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{deviceId}/{date}/{hour}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(deviceID, vars["date"], hour)
	if err != nil {
		h.logger.Warn("POST /slots/{deviceId}/{date}/{hour}/bookings - Failed to parse request: %v", err)
		if errors.Is(err, errAmbiguousContent) {
			handlers.RespondBadRequest(w, msgAmbiguousContent)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status, msg := errorStatus(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /slots/{deviceId}/{date}/{hour}/bookings - Failed to create booking: device_id=%d, error=%v",
				deviceID, err)
			handlers.RespondInternalError(w)
			return
		}

		h.logger.Warn("POST /slots/{deviceId}/{date}/{hour}/bookings - Rejected: device_id=%d, date=%s, hour=%d, status=%d, error=%v",
			deviceID, useCaseReq.Date.Format(domain.DateFormat), hour, status, err)
		handlers.RespondError(w, status, msg)
		return
	}

	h.logger.Info("POST /slots/{deviceId}/{date}/{hour}/bookings - Booking created successfully: booking_id=%d, device_id=%d, client_id=%d",
		result.Booking.ID, deviceID, result.Booking.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// errorStatus HTTP статус и сообщение для ошибки use case
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, createBooking.ErrInvalidInput):
		return http.StatusBadRequest, msgInvalidInput
	case errors.Is(err, createBooking.ErrInvalidStackDuration):
		return http.StatusBadRequest, msgInvalidStack
	case errors.Is(err, createBooking.ErrInvalidDateRange):
		return http.StatusBadRequest, msgInvalidDateRange
	case errors.Is(err, createBooking.ErrInvalidTimeSlot):
		return http.StatusBadRequest, msgInvalidTimeSlot
	case errors.Is(err, createBooking.ErrInvalidSubSlots):
		return http.StatusBadRequest, msgInvalidSubSlots
	case errors.Is(err, createBooking.ErrConfigMismatch):
		return http.StatusBadRequest, msgConfigMismatch
	case errors.Is(err, createBooking.ErrClientMismatch):
		return http.StatusBadRequest, msgClientMismatch

	case errors.Is(err, createBooking.ErrNoContentSelected):
		return http.StatusUnprocessableEntity, msgNoContent
	case errors.Is(err, createBooking.ErrMultiClientContent):
		return http.StatusUnprocessableEntity, msgMultiClient
	case errors.Is(err, createBooking.ErrContentNotFound):
		return http.StatusUnprocessableEntity, msgContentNotFound

	case errors.Is(err, createBooking.ErrDeviceNotFound):
		return http.StatusNotFound, msgDeviceNotFound
	case errors.Is(err, createBooking.ErrConfigNotFound):
		return http.StatusNotFound, msgConfigNotFound

	case errors.Is(err, createBooking.ErrDeviceOffline):
		return http.StatusConflict, msgDeviceOffline
	case errors.Is(err, createBooking.ErrSubSlotConflict):
		return http.StatusConflict, msgSubSlotConflict
	case errors.Is(err, createBooking.ErrOverCapacity):
		return http.StatusConflict, msgOverCapacity

	case errors.Is(err, createBooking.ErrReserveTimeout):
		return http.StatusServiceUnavailable, msgReserveTimeout
	case errors.Is(err, createBooking.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, msgCatalogUnavailable
	}
	return http.StatusInternalServerError, ""
}
