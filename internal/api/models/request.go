package models

// ArbitrageRequest is the body of POST /api/v1/arbitrage.
// Every field is optional; zero values fall back to the configured battery.
// Out-of-range values are reported by battery validation, not by binding.
type ArbitrageRequest struct {
	BatteryFile string  `json:"battery_file,omitempty"` // preset id from GET /api/v1/batteries
	CapacityMWh float64 `json:"capacity_mwh,omitempty"`
	PowerMW     float64 `json:"power_mw,omitempty"`
	Efficiency  float64 `json:"efficiency,omitempty"`
	// Nullable so that an explicit 0 can be told apart from "not set".
	MaxGapHours *int `json:"max_gap_hours,omitempty"`

	IncludeDays bool `json:"include_days,omitempty"`
	Record      bool `json:"record,omitempty"`
}

// RunsQuery binds GET /api/v1/runs.
type RunsQuery struct {
	Limit int `form:"limit" binding:"omitempty,gte=1,lte=500"`
}
