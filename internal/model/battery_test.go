package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatteryConfig_Validation(t *testing.T) {
	cases := []struct {
		name                 string
		capacity, power, eff float64
		gap                  int
		wantErr              string
	}{
		{"zero capacity", 0, 50, 0.9, 8, "CapacityMWh"},
		{"nan capacity", math.NaN(), 50, 0.9, 8, "CapacityMWh"},
		{"inf power", 100, math.Inf(1), 0.9, 8, "PowerMW"},
		{"negative power", 100, -1, 0.9, 8, "PowerMW"},
		{"zero efficiency", 100, 50, 0, 8, "Efficiency"},
		{"efficiency above one", 100, 50, 1.01, 8, "Efficiency"},
		{"negative gap", 100, 50, 0.9, -1, "MaxGapHours"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBatteryConfig(tc.capacity, tc.power, tc.eff, tc.gap)
			require.ErrorIs(t, err, ErrInvalidBattery)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}

	b, err := NewBatteryConfig(100, 50, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, b.MaxGapHours)
}

func TestBatteryConfig_DerivedHours(t *testing.T) {
	cases := []struct {
		name                 string
		capacity, power, eff float64
		ch, dh               int
		deliverable          float64
	}{
		{"reference unit", 100, 50, 0.87, 2, 2, 87},
		{"one hour", 50, 50, 0.9, 1, 1, 45},
		{"partial hour rounds up", 120, 50, 0.9, 3, 3, 135},
		{"power above capacity", 10, 50, 0.5, 1, 1, 25},
		{"float noise does not add an hour", 0.7, 0.1, 1, 7, 7, 0.7},
		{"float noise below a whole hour", 0.3, 0.1, 1, 3, 3, 0.3},
		{"tiny real excess adds an hour", 100.0000001, 50, 1, 3, 3, 150},
		{"smaller real excess adds an hour", 100.00000001, 50, 1, 3, 3, 150},
		{"efficiency shortens discharge", 200, 50, 0.7, 4, 3, 140},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := NewBatteryConfig(tc.capacity, tc.power, tc.eff, 8)
			require.NoError(t, err)
			assert.Equal(t, tc.ch, b.ChargeHours())
			assert.Equal(t, tc.dh, b.DischargeHours())
			assert.InDelta(t, tc.deliverable, b.DeliverableEnergyMWh(), 1e-9)
		})
	}
}

func TestActionsForCycle(t *testing.T) {
	c := CycleResult{ChargeIndices: []int{0, 2}, DischargeIndices: []int{3, 7}}
	assert.Equal(t,
		[]Action{ActionCharging, ActionIdle, ActionCharging, ActionDischarging, ActionIdle},
		ActionsForCycle(5, c),
	)
	assert.Empty(t, ActionsForCycle(0, c))
}

func TestCycleResult_LastIndices(t *testing.T) {
	c := CycleResult{ChargeIndices: []int{4, 1}, DischargeIndices: []int{6, 9}}
	assert.Equal(t, 4, c.LastCharge())
	assert.Equal(t, 9, c.LastDischarge())

	var empty CycleResult
	assert.Equal(t, -1, empty.LastCharge())
	assert.Equal(t, -1, empty.LastDischarge())
}

func TestDayAndMonthKeys(t *testing.T) {
	loc := time.FixedZone("EET", 2*3600)
	ts := time.Date(2024, 3, 31, 23, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, 3, 31, 0, 0, 0, 0, loc), DayKey(ts))
	assert.Equal(t, "2024-03", MonthKey(ts))

	d := DayPriceSeries{Points: []PricePoint{{Price: 1.5}, {Price: -2}}}
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, []float64{1.5, -2}, d.Prices())
}
