package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validConfig() *SlotConfiguration {
	return &SlotConfiguration{
		Name:                      "12 x 10s",
		MasterSlotDurationSeconds: 120,
		SubSlotDurationSeconds:    10,
		SubSlotsPerCycle:          12,
		PeakPrice:                 decimal.NewFromInt(150),
		NonPeakPrice:              decimal.NewFromInt(90),
	}
}

func TestSlotConfiguration_Validate(t *testing.T) {
	assert.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *SlotConfiguration)
	}{
		{"master duration mismatch", func(c *SlotConfiguration) { c.MasterSlotDurationSeconds = 3600 }},
		{"master duration off by one", func(c *SlotConfiguration) { c.MasterSlotDurationSeconds = 121 }},
		{"zero sub-slots", func(c *SlotConfiguration) { c.SubSlotsPerCycle = 0 }},
		{"negative sub-slot duration", func(c *SlotConfiguration) { c.SubSlotDurationSeconds = -10 }},
		{"negative peak price", func(c *SlotConfiguration) { c.PeakPrice = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrConfigInvalid)
		})
	}
}

func TestSlotConfiguration_PriceFor(t *testing.T) {
	c := validConfig()
	assert.True(t, c.PriceFor(TierPeak).Equal(decimal.NewFromInt(150)))
	assert.True(t, c.PriceFor(TierNonPeak).Equal(decimal.NewFromInt(90)))
}

func TestOccupancyPercent(t *testing.T) {
	assert.InDelta(t, 58.333, OccupancyPercent(7, 12), 0.001)
	assert.Equal(t, 100.0, OccupancyPercent(12, 12))
	assert.Equal(t, 0.0, OccupancyPercent(3, 0))
}
