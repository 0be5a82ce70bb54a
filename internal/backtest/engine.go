package backtest

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"battery-arbitrage/internal/model"
	"battery-arbitrage/internal/optimizer"
)

type Engine struct {
	workers int
	logger  zerolog.Logger
}

// New creates an engine that optimises up to workers days at once.
// workers <= 0 means one per CPU.
func New(workers int, logger zerolog.Logger) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{
		workers: workers,
		logger:  logger.With().Str("component", "engine").Logger(),
	}
}

type dayOutcome struct {
	cycle model.CycleResult
	ok    bool
}

// Run optimises every day independently and assembles the results in day order.
func (e *Engine) Run(ctx context.Context, days []model.DayPriceSeries, batt model.BatteryConfig) (*Result, error) {
	if err := batt.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	outcomes := make([]dayOutcome, len(days))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range days {
		if days[i].Len() < 2 {
			continue
		}
		i := i // per-iteration copy; go.mod targets go1.21 loop semantics
		g.Go(func() error {
			cycle, ok, err := optimizer.OptimizePrices(gctx, days[i].Prices(), batt)
			if err != nil {
				return fmt.Errorf("day %s: %w", days[i].Date.Format("2006-01-02"), err)
			}
			outcomes[i] = dayOutcome{cycle: cycle, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Battery: batt}
	cum := 0.0
	for i, day := range days {
		if day.Len() < 2 {
			res.Skipped++
			continue
		}
		res.Evaluated++

		out := outcomes[i]
		if !out.ok {
			res.NoCycle++
		} else {
			dr := newDayResult(day, out.cycle)
			res.Days = append(res.Days, dr)
			res.TotalProfit += dr.Profit
		}
		res.Hours, cum = appendHours(res.Hours, day, out, batt, cum)
	}

	e.logger.Info().
		Int("days", len(days)).
		Int("cycles", len(res.Days)).
		Int("skipped", res.Skipped).
		Float64("total_profit", res.TotalProfit).
		Dur("elapsed", time.Since(started)).
		Msg("run complete")
	return res, nil
}

func newDayResult(day model.DayPriceSeries, c model.CycleResult) DayResult {
	dr := DayResult{
		Date:   day.Date,
		Profit: c.Profit,
		Cycle:  c,
	}
	var buy, sell float64
	for _, i := range c.ChargeIndices {
		dr.ChargeTimes = append(dr.ChargeTimes, day.Points[i].Timestamp)
		buy += day.Points[i].Price
	}
	for _, i := range c.DischargeIndices {
		dr.DischargeTimes = append(dr.DischargeTimes, day.Points[i].Timestamp)
		sell += day.Points[i].Price
	}
	dr.AvgChargePrice = buy / float64(len(c.ChargeIndices))
	dr.AvgDischargePrice = sell / float64(len(c.DischargeIndices))

	lastCharge := day.Points[c.LastCharge()].Timestamp
	lastDischarge := day.Points[c.LastDischarge()].Timestamp
	dr.Month = model.MonthKey(dr.ChargeTimes[0])
	dr.GapHours = lastDischarge.Sub(lastCharge).Hours()
	return dr
}

// appendHours adds one ledger row per price point of day. Charging draws
// PowerMW for the hour; discharging spreads the deliverable energy evenly
// over the discharge hours, so a day's cash flows sum to its profit.
func appendHours(rows []HourRow, day model.DayPriceSeries, out dayOutcome, batt model.BatteryConfig, cum float64) ([]HourRow, float64) {
	actions := make([]model.Action, day.Len())
	for i := range actions {
		actions[i] = model.ActionIdle
	}
	if out.ok {
		actions = model.ActionsForCycle(day.Len(), out.cycle)
	}

	perDischargeHour := 0.0
	if n := len(out.cycle.DischargeIndices); n > 0 {
		perDischargeHour = batt.DeliverableEnergyMWh() / float64(n)
	}

	for i, p := range day.Points {
		row := HourRow{
			Index:     i,
			Date:      day.Date,
			Timestamp: p.Timestamp,
			Price:     p.Price,
			Action:    actions[i],
		}
		switch actions[i] {
		case model.ActionCharging:
			row.EnergyFromGridMWh = batt.PowerMW
			row.CashFlow = -batt.PowerMW * p.Price
		case model.ActionDischarging:
			row.EnergyToGridMWh = perDischargeHour
			row.CashFlow = perDischargeHour * p.Price
		}
		cum += row.CashFlow
		row.CumCash = cum
		rows = append(rows, row)
	}
	return rows, cum
}
