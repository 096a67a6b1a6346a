package domain

// Рабочее окно устройства: мастер-слоты с 06:00 до 22:00
const (
	OperatingStartHour = 6
	OperatingEndHour   = 22 // не включительно
	SlotsPerDay        = OperatingEndHour - OperatingStartHour
)

// Часы пик: [8, 10) и [17, 20)
const (
	MorningPeakStart = 8
	MorningPeakEnd   = 10
	EveningPeakStart = 17
	EveningPeakEnd   = 20
)

// Business validation constants
const (
	MinStackDurationSeconds = 1
	MaxStackDurationSeconds = 3600
	MaxOccupancyPercent     = 100
	MaxGridDays             = 31
	MaxStopReasonLength     = 500
	MaxConfigNameLength     = 100
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// occupancyEpsilon допуск при сравнении сумм процентов с плавающей точкой
const occupancyEpsilon = 1e-9

// HoldingStatuses статусы бронирований, которые занимают подслоты
var HoldingStatuses = []BookingStatus{
	StatusScheduled,
	StatusActive,
}
