package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	DeviceID             int64            // ID устройства
	Date                 time.Time        // Дата мастер-слота (без времени)
	Hour                 int              // Час мастер-слота
	ConfigurationID      *int64           // Шаблон, по которому клиент выбирал подслоты (опционально)
	SubSlots             []int            // Индексы подслотов
	ClientID             *int64           // Клиент, определенный на стороне UI (опционально, перепроверяется)
	ContentType          string           // media | playlist
	ContentIDs           []int64          // ID медиафайлов или один ID плейлиста
	PlaybackMode         string           // fixed | stack
	StackDurationSeconds *int             // Обязательно для stack
	DateRange            domain.DateRange // Период показа
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking     *domain.Booking
	PricingTier domain.PricingTier
	Price       decimal.Decimal
}
