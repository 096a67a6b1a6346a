package get_slots

import (
	"time"

	"github.com/m04kA/DOOH-InventoryService/internal/domain"
)

// Request модель запроса обзора слотов устройства на дату
type Request struct {
	DeviceID        int64     // ID устройства
	Date            time.Time // Дата (без времени)
	ConfigurationID *int64    // Шаблон, который ожидает клиент (опционально)
}

// Response обзор загрузки мастер-слотов
type Response struct {
	DeviceID        int64
	Date            time.Time
	ConfigurationID int64
	Slots           []SlotOverview
}

// SlotOverview загрузка одного мастер-слота
type SlotOverview struct {
	Slot           domain.TimeSlot
	TotalOccupancy float64 // сумма scheduled и active бронирований
	FreeSubSlots   []int
	Claims         []Claim
}

// Claim подслоты, занятые одним бронированием
type Claim struct {
	BookingID int64
	ClientID  int64
	SubSlots  []int
	Status    domain.BookingStatus
}
