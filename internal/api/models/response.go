package models

import "time"

// ArbitrageResponse represents the response from one arbitrage run.
type ArbitrageResponse struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	Battery BatteryInfo `json:"battery"`

	MonthlyStats  []MonthlyStat `json:"monthly_stats"`
	TotalCycles   int           `json:"total_cycles"`
	TotalProfit   float64       `json:"total_profit"`
	AverageProfit float64       `json:"average_profit"`

	DaysEvaluated int `json:"days_evaluated"`
	DaysSkipped   int `json:"days_skipped"`
	DaysNoCycle   int `json:"days_no_cycle"`

	Days []DayCycle `json:"days,omitempty"`
}

// BatteryInfo is the effective battery of a run, with its derived hour counts.
type BatteryInfo struct {
	Name                 string  `json:"name,omitempty"`
	CapacityMWh          float64 `json:"capacity_mwh"`
	PowerMW              float64 `json:"power_mw"`
	Efficiency           float64 `json:"efficiency"`
	MaxGapHours          int     `json:"max_gap_hours"`
	ChargeHours          int     `json:"charge_hours"`
	DischargeHours       int     `json:"discharge_hours"`
	DeliverableEnergyMWh float64 `json:"deliverable_energy_mwh"`
}

// MonthlyStat aggregates the cycles of one calendar month.
type MonthlyStat struct {
	Month                string  `json:"month"`
	Cycles               int     `json:"cycles"`
	TotalProfit          float64 `json:"total_profit"`
	AverageProfit        float64 `json:"average_profit"`
	AveragePrice         float64 `json:"average_price"`
	MinPrice             float64 `json:"min_price"`
	MaxPrice             float64 `json:"max_price"`
	DeviationFromAverage float64 `json:"deviation_from_average"`
}

// DayCycle is the chosen cycle of one day.
type DayCycle struct {
	Date               string      `json:"date"`
	Month              string      `json:"month"`
	ChargeTimes        []time.Time `json:"charge_times"`
	DischargeTimes     []time.Time `json:"discharge_times"`
	ChargeHeuristic    string      `json:"charge_heuristic"`
	DischargeHeuristic string      `json:"discharge_heuristic"`
	AvgChargePrice     float64     `json:"avg_charge_price"`
	AvgDischargePrice  float64     `json:"avg_discharge_price"`
	GapHours           float64     `json:"gap_hours"`
	Profit             float64     `json:"profit"`
}

// BatteryPreset describes one YAML preset in the battery directory.
type BatteryPreset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	File        string  `json:"file"`
	CapacityMWh float64 `json:"capacity_mwh"`
	PowerMW     float64 `json:"power_mw"`
	Efficiency  float64 `json:"efficiency,omitempty"`
	MaxGapHours *int    `json:"max_gap_hours,omitempty"`
}

// DatasetInfo represents one price file found by the source.
type DatasetInfo struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	ModTime   time.Time `json:"mod_time"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewError builds an ErrorResponse without details.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
