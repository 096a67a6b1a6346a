package lifecycle

import "errors"

var (
	// ErrInvalidSchedule возвращается при некорректном cron-выражении
	ErrInvalidSchedule = errors.New("lifecycle: invalid schedule")

	// ErrLedger возвращается, когда не удалось прочитать бронирования
	ErrLedger = errors.New("lifecycle: ledger error")
)
