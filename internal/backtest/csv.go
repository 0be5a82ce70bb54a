package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"
)

func WriteDaysCSV(path string, days []DayResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date",
		"month",
		"charge_times",
		"discharge_times",
		"avg_charge_price",
		"avg_discharge_price",
		"charge_heuristic",
		"discharge_heuristic",
		"charge_cost",
		"discharge_revenue",
		"profit",
		"gap_hours",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, d := range days {
		row := []string{
			d.Date.Format("2006-01-02"),
			d.Month,
			fmtTimes(d.ChargeTimes),
			fmtTimes(d.DischargeTimes),
			fmtFloat(d.AvgChargePrice),
			fmtFloat(d.AvgDischargePrice),
			string(d.Cycle.ChargeHeuristic),
			string(d.Cycle.DischargeHeuristic),
			fmtFloat(d.Cycle.ChargeCost),
			fmtFloat(d.Cycle.DischargeRevenue),
			fmtFloat(d.Profit),
			strconv.FormatFloat(d.GapHours, 'f', 1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func WriteLedgerCSV(path string, hours []HourRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date",
		"index",
		"timestamp",
		"price",
		"action",
		"energy_from_grid_mwh",
		"energy_to_grid_mwh",
		"cash_flow",
		"cum_cash",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range hours {
		row := []string{
			r.Date.Format("2006-01-02"),
			strconv.Itoa(r.Index),
			fmtTime(r.Timestamp),
			fmtFloat(r.Price),
			string(r.Action),
			fmtFloat(r.EnergyFromGridMWh),
			fmtFloat(r.EnergyToGridMWh),
			fmtFloat(r.CashFlow),
			fmtFloat(r.CumCash),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func fmtTimes(ts []time.Time) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = fmtTime(t)
	}
	return strings.Join(parts, "|")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
