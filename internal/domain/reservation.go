package domain

import (
	"fmt"
	"sort"
	"time"
)

// NormalizeSubSlots сортирует индексы и проверяет их корректность:
// непустой список, без дубликатов, каждый индекс в [0, subSlotsPerCycle)
func NormalizeSubSlots(subSlots []int, subSlotsPerCycle int) ([]int, error) {
	if len(subSlots) == 0 {
		return nil, fmt.Errorf("%w: no sub-slots selected", ErrInvalidSubSlots)
	}

	sorted := append([]int(nil), subSlots...)
	sort.Ints(sorted)

	for i, idx := range sorted {
		if idx < 0 || idx >= subSlotsPerCycle {
			return nil, fmt.Errorf("%w: index %d is outside [0, %d)", ErrInvalidSubSlots, idx, subSlotsPerCycle)
		}
		if i > 0 && sorted[i-1] == idx {
			return nil, fmt.Errorf("%w: index %d selected twice", ErrInvalidSubSlots, idx)
		}
	}

	return sorted, nil
}

// CheckReservation проверяет, можно ли занять подслоты часа устройства на период period
// existing: бронирования того же устройства и часа любых статусов и периодов
//
// Учитываются только scheduled и active бронирования, чей период пересекается с period:
// индекс занят, если его держит хотя бы одно из них. Емкость проверяется для каждого дня
// периода по точным долям, а не по округленным процентам: 8 бронирований по 1/8 дают ровно 100%.
func CheckReservation(existing []*Booking, period DateRange, subSlots []int, subSlotsPerCycle int) error {
	overlapping := holdingOverlapping(existing, period)

	claimed := ClaimedSubSlots(overlapping)
	for _, idx := range subSlots {
		if owner, ok := claimed[idx]; ok {
			return fmt.Errorf("%w: index %d is held by booking id=%d", ErrSubSlotConflict, idx, owner)
		}
	}

	requested := OccupancyPercent(len(subSlots), subSlotsPerCycle)

	// Загрузка внутри периода растет только в дни начала бронирований,
	// поэтому достаточно проверить начало периода и эти дни
	for _, day := range loadSteps(overlapping, period) {
		total := TotalOccupancy(BookingsOn(overlapping, day)) + requested
		if total > MaxOccupancyPercent+occupancyEpsilon {
			return fmt.Errorf("%w: total on %s would be %.2f%%", ErrOverCapacity, day.Format(DateFormat), total)
		}
	}

	return nil
}

// BookingsOn бронирования, которые занимают свой час в день date
func BookingsOn(bookings []*Booking, date time.Time) []*Booking {
	result := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Period().Contains(date) {
			result = append(result, b)
		}
	}
	return result
}

func holdingOverlapping(bookings []*Booking, period DateRange) []*Booking {
	result := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsHolding() && b.Period().Overlaps(period) {
			result = append(result, b)
		}
	}
	return result
}

func loadSteps(bookings []*Booking, period DateRange) []time.Time {
	days := []time.Time{DateOnly(period.Start)}
	for _, b := range bookings {
		start := DateOnly(b.Period().Start)
		if start.After(days[0]) && period.Contains(start) {
			days = append(days, start)
		}
	}
	return days
}

// ClaimedSubSlots индекс подслота -> ID бронирования, которое его занимает
func ClaimedSubSlots(bookings []*Booking) map[int]int64 {
	claimed := make(map[int]int64)
	for _, b := range bookings {
		if !b.IsHolding() {
			continue
		}
		for _, idx := range b.SubSlots {
			claimed[idx] = b.ID
		}
	}
	return claimed
}

// TotalOccupancy сумма загрузки scheduled и active бронирований
func TotalOccupancy(bookings []*Booking) float64 {
	total := 0.0
	for _, b := range bookings {
		if b.IsHolding() {
			total += b.OccupancyPercent
		}
	}
	return total
}

// FreeSubSlots индексы подслотов, не занятые scheduled/active бронированиями
func FreeSubSlots(bookings []*Booking, subSlotsPerCycle int) []int {
	claimed := ClaimedSubSlots(bookings)
	free := make([]int, 0, subSlotsPerCycle)
	for idx := 0; idx < subSlotsPerCycle; idx++ {
		if _, ok := claimed[idx]; !ok {
			free = append(free, idx)
		}
	}
	return free
}
