package emergency_stop

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("emergency_stop: invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("emergency_stop: booking not found")

	// ErrInvalidStateTransition возвращается для завершенного бронирования
	ErrInvalidStateTransition = errors.New("emergency_stop: booking cannot be stopped")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("emergency_stop: internal error")
)
