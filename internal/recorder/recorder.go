package recorder

import (
	"context"
	"errors"
	"time"

	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/model"
)

// ErrNotFound is returned by GetRun for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// RunRecord is one stored simulation run.
type RunRecord struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	Source    string              `json:"source"` // "cli" or "api"
	Battery   model.BatteryConfig `json:"battery"`

	DaysEvaluated int     `json:"days_evaluated"`
	CycleCount    int     `json:"cycle_count"`
	TotalProfit   float64 `json:"total_profit"`
	AverageProfit float64 `json:"average_profit"`

	// Populated by GetRun only.
	Cycles []CycleRecord `json:"cycles,omitempty"`
}

// CycleRecord is the stored form of one day's cycle.
type CycleRecord struct {
	Date               string    `json:"date"`
	Month              string    `json:"month"`
	ChargeStart        time.Time `json:"charge_start"`
	DischargeStart     time.Time `json:"discharge_start"`
	ChargeHeuristic    string    `json:"charge_heuristic"`
	DischargeHeuristic string    `json:"discharge_heuristic"`
	AvgChargePrice     float64   `json:"avg_charge_price"`
	AvgDischargePrice  float64   `json:"avg_discharge_price"`
	GapHours           float64   `json:"gap_hours"`
	Profit             float64   `json:"profit"`
}

// Recorder persists simulation runs.
type Recorder interface {
	RecordRun(ctx context.Context, run RunRecord) error
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	Close() error
}

// NewRunRecord converts an engine result into its stored form.
func NewRunRecord(id, source string, createdAt time.Time, res *backtest.Result) RunRecord {
	run := RunRecord{
		ID:            id,
		CreatedAt:     createdAt,
		Source:        source,
		Battery:       res.Battery,
		DaysEvaluated: res.Evaluated,
		CycleCount:    len(res.Days),
		TotalProfit:   res.TotalProfit,
	}
	if run.CycleCount > 0 {
		run.AverageProfit = res.TotalProfit / float64(run.CycleCount)
	}
	for _, d := range res.Days {
		run.Cycles = append(run.Cycles, CycleRecord{
			Date:               d.Date.Format("2006-01-02"),
			Month:              d.Month,
			ChargeStart:        d.ChargeTimes[0],
			DischargeStart:     d.DischargeTimes[0],
			ChargeHeuristic:    string(d.Cycle.ChargeHeuristic),
			DischargeHeuristic: string(d.Cycle.DischargeHeuristic),
			AvgChargePrice:     d.AvgChargePrice,
			AvgDischargePrice:  d.AvgDischargePrice,
			GapHours:           d.GapHours,
			Profit:             d.Profit,
		})
	}
	return run
}
