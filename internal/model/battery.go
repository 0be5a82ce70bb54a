package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBattery is wrapped by every BatteryConfig validation failure.
var ErrInvalidBattery = errors.New("invalid battery config")

// ceilULPs is how many units in the last place a ratio may sit from a whole
// number and still count as it, e.g. 0.7/0.1 = 6.999999999999999.
const ceilULPs = 4

// BatteryConfig defines the storage asset used for one optimisation run.
// Units:
// - CapacityMWh: MWh
// - PowerMW: MW (same limit for charging and discharging)
// - Efficiency: round-trip, (0, 1]
// - MaxGapHours: max positions between the last charge hour and the last discharge hour
type BatteryConfig struct {
	CapacityMWh float64 `json:"capacity_mwh"`
	PowerMW     float64 `json:"power_mw"`
	Efficiency  float64 `json:"efficiency"`
	MaxGapHours int     `json:"max_gap_hours"`
}

func NewBatteryConfig(capacityMWh, powerMW, efficiency float64, maxGapHours int) (BatteryConfig, error) {
	b := BatteryConfig{
		CapacityMWh: capacityMWh,
		PowerMW:     powerMW,
		Efficiency:  efficiency,
		MaxGapHours: maxGapHours,
	}
	if err := b.Validate(); err != nil {
		return BatteryConfig{}, err
	}
	return b, nil
}

func (b BatteryConfig) Validate() error {
	if !(b.CapacityMWh > 0) || math.IsInf(b.CapacityMWh, 0) {
		return fmt.Errorf("%w: CapacityMWh must be > 0", ErrInvalidBattery)
	}
	if !(b.PowerMW > 0) || math.IsInf(b.PowerMW, 0) {
		return fmt.Errorf("%w: PowerMW must be > 0", ErrInvalidBattery)
	}
	if !(b.Efficiency > 0) || b.Efficiency > 1 {
		return fmt.Errorf("%w: Efficiency must be in (0, 1]", ErrInvalidBattery)
	}
	if b.MaxGapHours < 0 {
		return fmt.Errorf("%w: MaxGapHours must be >= 0", ErrInvalidBattery)
	}
	return nil
}

// ChargeHours is the number of hourly slots needed to fill the battery at full power.
func (b BatteryConfig) ChargeHours() int {
	return ceilHours(b.CapacityMWh / b.PowerMW)
}

// DischargeHours is the number of hourly slots needed to deliver the
// efficiency-reduced energy at full power.
func (b BatteryConfig) DischargeHours() int {
	return ceilHours(b.CapacityMWh * b.Efficiency / b.PowerMW)
}

// DeliverableEnergyMWh is the energy sold back after a full charge:
// ChargeHours * PowerMW * Efficiency.
func (b BatteryConfig) DeliverableEnergyMWh() float64 {
	return float64(b.ChargeHours()) * b.PowerMW * b.Efficiency
}

func ceilHours(ratio float64) int {
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	h := int(math.Ceil(ratio))
	if r := math.Round(ratio); math.Abs(ratio-r) <= ceilULPs*(math.Nextafter(r, math.Inf(1))-r) {
		h = int(r)
	}
	if h < 1 {
		return 1
	}
	return h
}
