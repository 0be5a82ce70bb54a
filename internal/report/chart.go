package report

import (
	"errors"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"battery-arbitrage/internal/analysis"
)

// ErrNoMonths is returned when there is nothing to plot.
var ErrNoMonths = errors.New("no monthly results to chart")

// WriteChart renders monthly total profit as a PNG bar chart.
func WriteChart(w io.Writer, s analysis.Summary) error {
	if len(s.Months) == 0 {
		return ErrNoMonths
	}

	bars := make([]chart.Value, 0, len(s.Months))
	lo, hi := 0.0, 0.0
	for _, m := range s.Months {
		bars = append(bars, chart.Value{Label: m.Month, Value: m.TotalProfit})
		lo = math.Min(lo, m.TotalProfit)
		hi = math.Max(hi, m.TotalProfit)
	}
	if lo == hi {
		hi = lo + 1
	}

	profitFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.0f")
	}
	graph := chart.BarChart{
		Title:  "Monthly arbitrage profit",
		Width:  1280,
		Height: 720,
		Background: chart.Style{
			Padding: chart.Box{Top: 50},
		},
		BarWidth:     40,
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: profitFormatter,
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
