package backtest

import (
	"time"

	"battery-arbitrage/internal/model"
)

// DayResult is one day on which a cycle was found.
type DayResult struct {
	Date  time.Time
	Month string // month of the first charge hour, "2006-01"

	ChargeTimes    []time.Time
	DischargeTimes []time.Time

	AvgChargePrice    float64
	AvgDischargePrice float64

	// Hours between the last charge hour and the last discharge hour.
	GapHours float64

	Profit float64
	Cycle  model.CycleResult
}

// HourRow is one row of per-hour output.
// This is the primary artifact for "what happened" on each day.
type HourRow struct {
	Index int // position within the day

	Date      time.Time
	Timestamp time.Time
	Price     float64

	Action model.Action

	EnergyFromGridMWh float64
	EnergyToGridMWh   float64

	CashFlow float64
	CumCash  float64
}

type Result struct {
	Battery model.BatteryConfig

	Days  []DayResult
	Hours []HourRow

	Evaluated int // days with at least two price points
	Skipped   int // days with fewer than two price points
	NoCycle   int // evaluated days without a feasible cycle

	TotalProfit float64
}
