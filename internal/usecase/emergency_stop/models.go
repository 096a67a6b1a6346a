package emergency_stop

import "github.com/m04kA/DOOH-InventoryService/internal/domain"

// Request модель запроса на экстренную остановку
type Request struct {
	BookingID int64
	Reason    string // необязательно
}

// Response результат остановки
type Response struct {
	Booking        *domain.Booking
	AlreadyStopped bool // бронирование было остановлено ранее, команда не отправлялась
}
