package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"battery-arbitrage/internal/analysis"
	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/model"
)

const (
	ruleWidth  = 80
	dateLayout = "02.01.2006"
	timeLayout = "02.01.2006 15:04"
)

// Input is everything the text report renders.
type Input struct {
	Battery    model.BatteryConfig
	Summary    analysis.Summary
	Days       []backtest.DayResult
	DetailRows int    // number of days listed in the detail table
	Currency   string // defaults to EUR
}

// WriteText renders a plain-text report: battery parameters, one section per
// month, the overall summary and a detail table of the first DetailRows days.
func WriteText(w io.Writer, in Input) error {
	cur := in.Currency
	if cur == "" {
		cur = "EUR"
	}
	b := in.Battery
	bw := bufio.NewWriter(w)

	heading(bw, "BATTERY ARBITRAGE SIMULATION RESULTS")
	fmt.Fprintf(bw, "Capacity:          %g MWh\n", b.CapacityMWh)
	fmt.Fprintf(bw, "Power:             %g MW\n", b.PowerMW)
	fmt.Fprintf(bw, "Efficiency:        %s%%\n", decimal.NewFromFloat(b.Efficiency).Mul(decimal.NewFromInt(100)).String())
	fmt.Fprintf(bw, "Charge hours:      %d\n", b.ChargeHours())
	fmt.Fprintf(bw, "Discharge hours:   %d\n", b.DischargeHours())
	fmt.Fprintf(bw, "Deliverable:       %.2f MWh\n", b.DeliverableEnergyMWh())
	fmt.Fprintf(bw, "Max gap:           %d h\n", b.MaxGapHours)
	fmt.Fprintln(bw)

	heading(bw, "RESULTS BY MONTH")
	for _, m := range in.Summary.Months {
		fmt.Fprintf(bw, "Month: %s\n", m.Month)
		fmt.Fprintf(bw, "  Cycles:                %d\n", m.Cycles)
		fmt.Fprintf(bw, "  Total profit:          %.2f %s\n", m.TotalProfit, cur)
		fmt.Fprintf(bw, "  Average per cycle:     %.2f %s\n", m.AverageProfit, cur)
		fmt.Fprintf(bw, "  Average price:         %.2f %s/MWh\n", m.Price.Mean, cur)
		fmt.Fprintf(bw, "  Deviation from mean:   %+.2f %s\n", m.DeviationFromAverage, cur)
		fmt.Fprintln(bw)
	}

	heading(bw, "SUMMARY")
	s := in.Summary
	fmt.Fprintf(bw, "Total cycles:        %d\n", s.TotalCycles)
	fmt.Fprintf(bw, "Total profit:        %.2f %s\n", s.TotalProfit, cur)
	fmt.Fprintf(bw, "Average per cycle:   %.2f %s\n", s.AverageProfit, cur)
	if ranked := analysis.RankMonthsByProfit(s.Months); len(ranked) > 0 {
		fmt.Fprintf(bw, "Best month:          %s (%.2f %s)\n", ranked[0].Month, ranked[0].TotalProfit, cur)
		last := ranked[len(ranked)-1]
		fmt.Fprintf(bw, "Worst month:         %s (%.2f %s)\n", last.Month, last.TotalProfit, cur)
	}
	fmt.Fprintln(bw)

	rows := in.Days
	if in.DetailRows >= 0 && len(rows) > in.DetailRows {
		rows = rows[:in.DetailRows]
	}
	heading(bw, fmt.Sprintf("DETAIL (FIRST %d DAYS)", len(rows)))
	fmt.Fprintf(bw, "%-12s %-20s %-20s %14s %14s %14s %9s\n",
		"Date", "Charge", "Discharge", "Buy price", "Sell price", "Profit", "Gap")
	fmt.Fprintln(bw, strings.Repeat("-", ruleWidth))
	for _, d := range rows {
		fmt.Fprintf(bw, "%-12s %-20s %-20s %10.2f %s %10.2f %s %10.2f %s %7.1f h\n",
			d.Date.Format(dateLayout),
			d.ChargeTimes[0].Format(timeLayout),
			d.DischargeTimes[0].Format(timeLayout),
			d.AvgChargePrice, cur,
			d.AvgDischargePrice, cur,
			d.Profit, cur,
			d.GapHours,
		)
	}

	return bw.Flush()
}

func heading(w io.Writer, title string) {
	rule := strings.Repeat("=", ruleWidth)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
}
