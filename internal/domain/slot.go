package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PricingTier тариф мастер-слота
type PricingTier string

const (
	TierPeak    PricingTier = "peak"
	TierNonPeak PricingTier = "non_peak"
)

// TimeSlotKey адрес мастер-слота: устройство, дата, час
type TimeSlotKey struct {
	DeviceID int64
	Date     time.Time // всегда полночь UTC
	Hour     int
}

// NewTimeSlotKey нормализует дату до полуночи UTC
func NewTimeSlotKey(deviceID int64, date time.Time, hour int) TimeSlotKey {
	return TimeSlotKey{
		DeviceID: deviceID,
		Date:     DateOnly(date),
		Hour:     hour,
	}
}

// String формат "deviceID/YYYY-MM-DD/hour", используется как ключ и в логах
func (k TimeSlotKey) String() string {
	return fmt.Sprintf("%d/%s/%d", k.DeviceID, k.Date.Format(DateFormat), k.Hour)
}

// StartsAt момент начала мастер-слота (UTC)
func (k TimeSlotKey) StartsAt() time.Time {
	return k.Date.Add(time.Duration(k.Hour) * time.Hour)
}

// TimeSlot вычисляемый мастер-слот устройства
type TimeSlot struct {
	Key                    TimeSlotKey
	SlotConfigID           int64
	SubSlotsPerCycle       int
	SubSlotDurationSeconds int
	PricingTier            PricingTier
	Price                  decimal.Decimal
}

// IsPeak час пик: [8,10) или [17,20)
func IsPeak(hour int) bool {
	return (hour >= MorningPeakStart && hour < MorningPeakEnd) ||
		(hour >= EveningPeakStart && hour < EveningPeakEnd)
}

// TierFor тариф для часа
func TierFor(hour int) PricingTier {
	if IsPeak(hour) {
		return TierPeak
	}
	return TierNonPeak
}

// ValidateHour проверяет, что час попадает в рабочее окно 06:00-22:00
func ValidateHour(hour int) error {
	if hour < OperatingStartHour || hour >= OperatingEndHour {
		return fmt.Errorf("%w: hour %d, window is [%d, %d)", ErrInvalidTimeSlot, hour, OperatingStartHour, OperatingEndHour)
	}
	return nil
}

// NewTimeSlot строит мастер-слот по конфигурации устройства
func NewTimeSlot(key TimeSlotKey, config *SlotConfiguration) TimeSlot {
	tier := TierFor(key.Hour)
	return TimeSlot{
		Key:                    key,
		SlotConfigID:           config.ID,
		SubSlotsPerCycle:       config.SubSlotsPerCycle,
		SubSlotDurationSeconds: config.SubSlotDurationSeconds,
		PricingTier:            tier,
		Price:                  config.PriceFor(tier),
	}
}

// BuildTimeSlots генерирует все мастер-слоты устройства в диапазоне дат (включительно)
// Чистая функция: результат зависит только от конфигурации и диапазона
func BuildTimeSlots(deviceID int64, config *SlotConfiguration, dates DateRange) []TimeSlot {
	days := dates.Days()
	if days <= 0 {
		return []TimeSlot{}
	}

	slots := make([]TimeSlot, 0, days*SlotsPerDay)
	for day := DateOnly(dates.Start); !day.After(DateOnly(dates.End)); day = day.AddDate(0, 0, 1) {
		for hour := OperatingStartHour; hour < OperatingEndHour; hour++ {
			slots = append(slots, NewTimeSlot(NewTimeSlotKey(deviceID, day, hour), config))
		}
	}
	return slots
}

// DateRange диапазон дат (включительно с обеих сторон)
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Validate start <= end
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("start and end are required")
	}
	if DateOnly(r.Start).After(DateOnly(r.End)) {
		return fmt.Errorf("start %s is after end %s", r.Start.Format(DateFormat), r.End.Format(DateFormat))
	}
	return nil
}

// Days количество дней в диапазоне
func (r DateRange) Days() int {
	start, end := DateOnly(r.Start), DateOnly(r.End)
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// Contains попадает ли дата в диапазон
func (r DateRange) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(r.Start)) && !d.After(DateOnly(r.End))
}

// Overlaps есть ли у диапазонов общий день
func (r DateRange) Overlaps(other DateRange) bool {
	return !DateOnly(r.Start).After(DateOnly(other.End)) && !DateOnly(other.Start).After(DateOnly(r.End))
}

// DateOnly обрезает время и переводит дату в UTC без сдвига календарного дня
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
