package get_slots

import "github.com/m04kA/DOOH-InventoryService/internal/domain"

// buildOverview раскладывает бронирования по мастер-слотам дня
// Бронирование попадает в каждый день своего периода, независимо от даты, к которой оно привязано.
// Остановленные и завершенные бронирования подслоты не занимают и в обзор не попадают
func buildOverview(slots []domain.TimeSlot, bookings []*domain.Booking) []SlotOverview {
	byHour := make(map[int][]*domain.Booking)
	for _, b := range bookings {
		byHour[b.Slot.Hour] = append(byHour[b.Slot.Hour], b)
	}

	result := make([]SlotOverview, len(slots))
	for i, slot := range slots {
		hourBookings := domain.BookingsOn(byHour[slot.Key.Hour], slot.Key.Date)

		claims := make([]Claim, 0, len(hourBookings))
		for _, b := range hourBookings {
			if !b.IsHolding() {
				continue
			}
			claims = append(claims, Claim{
				BookingID: b.ID,
				ClientID:  b.ClientID,
				SubSlots:  append([]int(nil), b.SubSlots...),
				Status:    b.Status,
			})
		}

		result[i] = SlotOverview{
			Slot:           slot,
			TotalOccupancy: domain.TotalOccupancy(hourBookings),
			FreeSubSlots:   domain.FreeSubSlots(hourBookings, slot.SubSlotsPerCycle),
			Claims:         claims,
		}
	}

	return result
}
