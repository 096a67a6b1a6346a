package domain

import "errors"

// Ошибки инвариантов слотов и бронирований
// Проверяются одинаково в памяти и в PostgreSQL-хранилище
var (
	// ErrConfigInvalid шаблон слота не удовлетворяет subSlotsPerCycle * subSlotDuration == masterSlotDuration
	ErrConfigInvalid = errors.New("domain: slot configuration is invalid")

	// ErrInvalidSubSlots пустой список подслотов, дубликаты или индекс вне диапазона
	ErrInvalidSubSlots = errors.New("domain: invalid sub-slot selection")

	// ErrSubSlotConflict подслот уже занят другим бронированием
	ErrSubSlotConflict = errors.New("domain: sub-slot already claimed")

	// ErrOverCapacity суммарная загрузка слота превысит 100%
	ErrOverCapacity = errors.New("domain: slot occupancy would exceed 100%")

	// ErrInvalidStateTransition недопустимый переход статуса бронирования
	ErrInvalidStateTransition = errors.New("domain: invalid booking status transition")

	// ErrInvalidTimeSlot час вне рабочего окна устройства
	ErrInvalidTimeSlot = errors.New("domain: hour is outside the operating window")
)

// ErrAlreadyStopped бронирование уже остановлено; повторная остановка - no-op
var ErrAlreadyStopped = errors.New("domain: booking is already stopped")
