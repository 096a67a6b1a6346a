package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SlotConfiguration шаблон нарезки мастер-слота на подслоты и цены
// После регистрации не изменяется
type SlotConfiguration struct {
	ID                        int64
	Name                      string
	MasterSlotDurationSeconds int
	SubSlotDurationSeconds    int
	SubSlotsPerCycle          int
	PeakPrice                 decimal.Decimal
	NonPeakPrice              decimal.Decimal
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// Validate проверяет согласованность длительностей и цен шаблона
func (c *SlotConfiguration) Validate() error {
	if c.MasterSlotDurationSeconds <= 0 || c.SubSlotDurationSeconds <= 0 || c.SubSlotsPerCycle <= 0 {
		return fmt.Errorf("%w: durations and sub-slot count must be positive", ErrConfigInvalid)
	}

	if c.SubSlotsPerCycle*c.SubSlotDurationSeconds != c.MasterSlotDurationSeconds {
		return fmt.Errorf("%w: %d sub-slots x %ds != %ds master slot", ErrConfigInvalid,
			c.SubSlotsPerCycle, c.SubSlotDurationSeconds, c.MasterSlotDurationSeconds)
	}

	if c.PeakPrice.IsNegative() || c.NonPeakPrice.IsNegative() {
		return fmt.Errorf("%w: prices must not be negative", ErrConfigInvalid)
	}

	if len(c.Name) > MaxConfigNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrConfigInvalid, MaxConfigNameLength)
	}

	return nil
}

// PriceFor возвращает цену мастер-слота для тарифа
func (c *SlotConfiguration) PriceFor(tier PricingTier) decimal.Decimal {
	if tier == TierPeak {
		return c.PeakPrice
	}
	return c.NonPeakPrice
}

// OccupancyPercent доля подслотов в процентах (без округления)
func (c *SlotConfiguration) OccupancyPercent(subSlots int) float64 {
	return OccupancyPercent(subSlots, c.SubSlotsPerCycle)
}

// OccupancyPercent доля count из total в процентах
func OccupancyPercent(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
