package storage

import "errors"

// Общие ошибки хранилищ, одинаковые для памяти и PostgreSQL
// Пакеты конкретных реализаций переэкспортируют их под своими именами
var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrConfigNotFound возвращается, когда шаблон слота не найден
	ErrConfigNotFound = errors.New("storage: slot configuration not found")

	// ErrDeviceNotFound возвращается, когда устройство не найдено
	ErrDeviceNotFound = errors.New("storage: device not found")
)
