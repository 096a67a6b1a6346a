package slotconfig

import "errors"

var (
	// ErrConfigNotFound возвращается, когда шаблон слота не найден
	ErrConfigNotFound = errors.New("slot configuration not found")

	// ErrDeviceNotFound возвращается, когда устройство не найдено
	ErrDeviceNotFound = errors.New("device not found")

	// ErrConfigInvalid возвращается, когда шаблон нарушает правило
	// subSlotsPerCycle * subSlotDuration == masterSlotDuration
	ErrConfigInvalid = errors.New("slot configuration is invalid")

	// ErrReassignmentConflict возвращается, когда у устройства есть действующие бронирования
	// с индексами подслотов, которых нет в новом шаблоне
	ErrReassignmentConflict = errors.New("device has bookings incompatible with the new configuration")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
