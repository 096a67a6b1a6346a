package get_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_slots: invalid input data")

	// ErrDeviceNotFound возвращается, когда устройство не найдено
	ErrDeviceNotFound = errors.New("get_slots: device not found")

	// ErrConfigNotFound возвращается, когда шаблон устройства не найден
	ErrConfigNotFound = errors.New("get_slots: slot configuration not found")

	// ErrConfigMismatch возвращается, когда запрошенный шаблон не назначен устройству
	ErrConfigMismatch = errors.New("get_slots: configuration does not match the device")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_slots: internal error")
)
