package get_device_bookings

import (
	"context"

	"github.com/m04kA/DOOH-InventoryService/internal/service/bookings/models"
)

type BookingService interface {
	GetDeviceBookings(ctx context.Context, req *models.GetDeviceBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
