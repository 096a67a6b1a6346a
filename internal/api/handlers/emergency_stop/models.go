package emergency_stop

import (
	"github.com/m04kA/DOOH-InventoryService/internal/service/bookings/models"
	emergencyStop "github.com/m04kA/DOOH-InventoryService/internal/usecase/emergency_stop"
)

// EmergencyStopRequest HTTP request model, тело необязательно
type EmergencyStopRequest struct {
	Reason string `json:"reason"`
}

// EmergencyStopResponse HTTP response model
type EmergencyStopResponse struct {
	models.BookingResponse
	AlreadyStopped bool `json:"alreadyStopped"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *emergencyStop.Response) *EmergencyStopResponse {
	return &EmergencyStopResponse{
		BookingResponse: *models.FromDomainBooking(resp.Booking),
		AlreadyStopped:  resp.AlreadyStopped,
	}
}
