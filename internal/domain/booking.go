package domain

import (
	"math"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusStopped   BookingStatus = "stopped"
)

// allowedTransitions scheduled -> active -> completed, scheduled|active -> stopped
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusScheduled: {StatusActive, StatusStopped},
	StatusActive:    {StatusCompleted, StatusStopped},
}

// Booking занятие подслотов мастер-слота контентом одного клиента на период дат
// Клиент и контент после создания не меняются, исправление = остановка + новое бронирование
type Booking struct {
	ID                   int64
	Slot                 TimeSlotKey
	SlotConfigID         int64
	SubSlotsPerCycle     int // снимок конфигурации на момент бронирования
	SubSlots             []int
	ClientID             int64
	ContentType          ContentType
	ContentIDs           []int64
	PlaybackMode         PlaybackMode
	StackDurationSeconds *int
	DateRange            DateRange
	OccupancyPercent     float64
	Status               BookingStatus

	StopReason *string
	StoppedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsHolding true, если бронирование занимает подслоты (scheduled или active)
func (b *Booking) IsHolding() bool {
	return b.Status == StatusScheduled || b.Status == StatusActive
}

// Period дни, в которые бронирование занимает свой час
// Для записей без диапазона это один день мастер-слота
func (b *Booking) Period() DateRange {
	if b.DateRange.Start.IsZero() || b.DateRange.End.IsZero() {
		return DateRange{Start: b.Slot.Date, End: b.Slot.Date}
	}
	return b.DateRange
}

// CanBeStopped экстренная остановка допустима только для scheduled и active
func (b *Booking) CanBeStopped() bool {
	return b.IsHolding()
}

// RoundedOccupancy загрузка в целых процентах (7 из 12 -> 58)
func (b *Booking) RoundedOccupancy() int {
	return int(math.Round(b.OccupancyPercent))
}

// MaxSubSlot наибольший занятый индекс подслота, -1 если подслотов нет
func (b *Booking) MaxSubSlot() int {
	max := -1
	for _, idx := range b.SubSlots {
		if idx > max {
			max = idx
		}
	}
	return max
}

// Clone глубокая копия, чтобы хранилище не отдавало наружу свои указатели
func (b *Booking) Clone() *Booking {
	c := *b
	c.SubSlots = append([]int(nil), b.SubSlots...)
	c.ContentIDs = append([]int64(nil), b.ContentIDs...)
	if b.StackDurationSeconds != nil {
		v := *b.StackDurationSeconds
		c.StackDurationSeconds = &v
	}
	if b.StopReason != nil {
		v := *b.StopReason
		c.StopReason = &v
	}
	if b.StoppedAt != nil {
		v := *b.StoppedAt
		c.StoppedAt = &v
	}
	return &c
}

// CanTransition проверяет допустимость перехода статуса
func CanTransition(from, to BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InitialStatus статус нового бронирования: active, если период уже начался
func InitialStatus(dates DateRange, now time.Time) BookingStatus {
	if DateOnly(dates.Start).After(DateOnly(now)) {
		return StatusScheduled
	}
	return StatusActive
}

// NextStatus статус, в который бронирование должно перейти на дату now
// Возвращает false, если переход не нужен
func NextStatus(b *Booking, now time.Time) (BookingStatus, bool) {
	today := DateOnly(now)

	switch b.Status {
	case StatusScheduled:
		if !DateOnly(b.DateRange.Start).After(today) {
			return StatusActive, true
		}
	case StatusActive:
		if DateOnly(b.DateRange.End).Before(today) {
			return StatusCompleted, true
		}
	}
	return b.Status, false
}

// ParseBookingStatus конвертирует строку в статус
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusScheduled, StatusActive, StatusCompleted, StatusStopped:
		return BookingStatus(s), true
	}
	return "", false
}

// DeviceBookingsFilter фильтр бронирований устройства
type DeviceBookingsFilter struct {
	DeviceID int64
	Date     *time.Time     // день показа, входящий в период бронирования (опционально)
	Status   *BookingStatus // опционально
}
