package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/config"
	"battery-arbitrage/internal/report"
	"battery-arbitrage/internal/service"
)

// SimulateOptions tune one batch simulation.
type SimulateOptions struct {
	Record bool
}

// Simulate runs the configured battery over every price file, prints the text
// report and writes each configured output file.
func (a *App) Simulate(ctx context.Context, opts SimulateOptions) (*service.Outcome, error) {
	batt, err := a.Config.Battery.ToModel()
	if err != nil {
		return nil, err
	}

	src, err := a.newSource()
	if err != nil {
		return nil, err
	}

	rec, err := a.openRecorder()
	if err != nil {
		return nil, err
	}
	defer rec.Close()

	out, err := a.newService(src, rec).Simulate(ctx, batt, service.Options{Source: "cli", Record: opts.Record})
	if err != nil {
		return nil, err
	}

	if err := a.writeOutputs(out); err != nil {
		return nil, err
	}
	if opts.Record {
		a.Logger.Info().Str("run_id", out.RunID).Msg("run recorded")
	}
	return out, nil
}

func (a *App) writeOutputs(out *service.Outcome) error {
	rc := a.Config.Report
	in := report.Input{
		Battery:    out.Battery,
		Summary:    out.Summary,
		Days:       out.Result.Days,
		DetailRows: rc.DetailRows,
		Currency:   rc.Currency,
	}

	if err := report.WriteText(a.Out, in); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if rc.TextPath != "" {
		if err := writeFile(rc.TextPath, func(w io.Writer) error { return report.WriteText(w, in) }); err != nil {
			return fmt.Errorf("write text report: %w", err)
		}
		a.Logger.Info().Str("path", rc.TextPath).Msg("text report written")
	}

	if rc.CSVPath != "" {
		if err := ensureDir(rc.CSVPath); err != nil {
			return err
		}
		if err := backtest.WriteDaysCSV(rc.CSVPath, out.Result.Days); err != nil {
			return fmt.Errorf("write cycles csv: %w", err)
		}
		a.Logger.Info().Str("path", rc.CSVPath).Int("rows", len(out.Result.Days)).Msg("cycles csv written")
	}

	if rc.HourlyCSVPath != "" {
		if err := ensureDir(rc.HourlyCSVPath); err != nil {
			return err
		}
		if err := backtest.WriteLedgerCSV(rc.HourlyCSVPath, out.Result.Hours); err != nil {
			return fmt.Errorf("write hourly csv: %w", err)
		}
		a.Logger.Info().Str("path", rc.HourlyCSVPath).Int("rows", len(out.Result.Hours)).Msg("hourly csv written")
	}

	if rc.ChartPath != "" {
		err := writeFile(rc.ChartPath, func(w io.Writer) error { return report.WriteChart(w, out.Summary) })
		switch {
		case errors.Is(err, report.ErrNoMonths):
			a.Logger.Warn().Msg("no cycles found; chart skipped")
			_ = os.Remove(rc.ChartPath)
		case err != nil:
			return fmt.Errorf("write chart: %w", err)
		default:
			a.Logger.Info().Str("path", rc.ChartPath).Msg("chart written")
		}
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func writeFile(path string, render func(io.Writer) error) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// OverrideBattery overlays CLI flag values on the configured battery.
// Zero values keep the configured field; a nil maxGap keeps the configured gap.
func (a *App) OverrideBattery(capacity, power, efficiency float64, maxGap *int) error {
	b := a.Config.Battery
	if capacity != 0 {
		b.CapacityMWh = capacity
	}
	if power != 0 {
		b.PowerMW = power
	}
	if efficiency != 0 {
		b.Efficiency = efficiency
	}
	if maxGap != nil {
		b.MaxGapHours = config.Hours(*maxGap)
	}
	if _, err := b.ToModel(); err != nil {
		return err
	}
	a.Config.Battery = b
	return nil
}
