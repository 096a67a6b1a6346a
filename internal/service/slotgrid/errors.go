package slotgrid

import "errors"

var (
	// ErrInvalidDateRange возвращается при пустом, перевернутом или слишком длинном диапазоне дат
	ErrInvalidDateRange = errors.New("slotgrid: invalid date range")
)
