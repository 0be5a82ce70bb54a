package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/model"
)

type monthTotal struct {
	month  string
	cycles int
	profit decimal.Decimal
}

// Accumulator is the running state of a fold over day results. The zero
// value is empty. Fold never mutates its input, so an Accumulator can be
// shared freely.
type Accumulator struct {
	months []monthTotal // sorted by month
	cycles int
	profit decimal.Decimal
}

func (a Accumulator) Cycles() int { return a.cycles }

func (a Accumulator) TotalProfit() decimal.Decimal { return a.profit }

// Fold returns acc with r added under r.Month.
func Fold(acc Accumulator, r backtest.DayResult) Accumulator {
	p := decimal.NewFromFloat(r.Profit)

	months := make([]monthTotal, len(acc.months), len(acc.months)+1)
	copy(months, acc.months)

	i := sort.Search(len(months), func(i int) bool { return months[i].month >= r.Month })
	if i < len(months) && months[i].month == r.Month {
		months[i].cycles++
		months[i].profit = months[i].profit.Add(p)
	} else {
		months = append(months, monthTotal{})
		copy(months[i+1:], months[i:])
		months[i] = monthTotal{month: r.Month, cycles: 1, profit: p}
	}

	return Accumulator{
		months: months,
		cycles: acc.cycles + 1,
		profit: acc.profit.Add(p),
	}
}

// MonthStats describes one calendar month that had at least one cycle.
type MonthStats struct {
	Month         string  `json:"month"`
	Cycles        int     `json:"cycles"`
	TotalProfit   float64 `json:"total_profit"`
	AverageProfit float64 `json:"average_profit"`

	// Prices over every hour of the month, cycle or not.
	Price PriceStats `json:"price"`

	// AverageProfit minus the overall average profit per cycle.
	DeviationFromAverage float64 `json:"deviation_from_average"`
}

type Summary struct {
	Months        []MonthStats `json:"months"`
	TotalCycles   int          `json:"total_cycles"`
	TotalProfit   float64      `json:"total_profit"`
	AverageProfit float64      `json:"average_profit"`
	Price         PriceStats   `json:"price"`
}

// Summarize folds days into monthly and overall statistics. points supplies
// the hourly prices used for the price statistics.
func Summarize(days []backtest.DayResult, points []model.PricePoint) Summary {
	acc := Accumulator{}
	for _, d := range days {
		acc = Fold(acc, d)
	}
	return acc.Summary(points)
}

func (a Accumulator) Summary(points []model.PricePoint) Summary {
	byMonth := map[string][]float64{}
	all := make([]float64, 0, len(points))
	for _, p := range points {
		m := model.MonthKey(p.Timestamp)
		byMonth[m] = append(byMonth[m], p.Price)
		all = append(all, p.Price)
	}

	s := Summary{
		TotalCycles: a.cycles,
		TotalProfit: a.profit.InexactFloat64(),
		Price:       ComputePriceStats(all),
	}
	overallAvg := decimal.Zero
	if a.cycles > 0 {
		overallAvg = a.profit.Div(decimal.NewFromInt(int64(a.cycles)))
	}
	s.AverageProfit = overallAvg.InexactFloat64()

	s.Months = make([]MonthStats, 0, len(a.months))
	for _, m := range a.months {
		avg := m.profit.Div(decimal.NewFromInt(int64(m.cycles)))
		s.Months = append(s.Months, MonthStats{
			Month:                m.month,
			Cycles:               m.cycles,
			TotalProfit:          m.profit.InexactFloat64(),
			AverageProfit:        avg.InexactFloat64(),
			Price:                ComputePriceStats(byMonth[m.month]),
			DeviationFromAverage: avg.Sub(overallAvg).InexactFloat64(),
		})
	}
	return s
}
