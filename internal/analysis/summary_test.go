package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/model"
)

func point(y int, m time.Month, d, h int, price float64) model.PricePoint {
	return model.PricePoint{Timestamp: time.Date(y, m, d, h, 0, 0, 0, time.UTC), Price: price}
}

func TestFold_DoesNotMutateInput(t *testing.T) {
	a0 := Fold(Accumulator{}, backtest.DayResult{Month: "2024-02", Profit: 10})
	a1 := Fold(a0, backtest.DayResult{Month: "2024-01", Profit: 5})
	a2 := Fold(a0, backtest.DayResult{Month: "2024-02", Profit: 1})

	assert.Equal(t, 1, a0.Cycles())
	assert.Equal(t, "11", a2.TotalProfit().String())
	assert.Equal(t, "15", a1.TotalProfit().String())

	s0 := a0.Summary(nil)
	require.Len(t, s0.Months, 1)
	assert.Equal(t, 1, s0.Months[0].Cycles)
	assert.InDelta(t, 10.0, s0.Months[0].TotalProfit, 1e-9)

	s1 := a1.Summary(nil)
	require.Len(t, s1.Months, 2)
	assert.Equal(t, "2024-01", s1.Months[0].Month)
	assert.Equal(t, "2024-02", s1.Months[1].Month)
}

func TestSummarize(t *testing.T) {
	days := []backtest.DayResult{
		{Month: "2024-01", Profit: 100},
		{Month: "2024-01", Profit: 200},
		{Month: "2024-03", Profit: 600},
	}
	points := []model.PricePoint{
		point(2024, 1, 1, 0, 10),
		point(2024, 1, 1, 1, 30),
		point(2024, 2, 1, 0, 1000), // month without cycles
		point(2024, 3, 1, 0, 50),
	}

	s := Summarize(days, points)

	assert.Equal(t, 3, s.TotalCycles)
	assert.InDelta(t, 900.0, s.TotalProfit, 1e-9)
	assert.InDelta(t, 300.0, s.AverageProfit, 1e-9)
	assert.Equal(t, 4, s.Price.Count)

	require.Len(t, s.Months, 2)
	jan, mar := s.Months[0], s.Months[1]

	assert.Equal(t, "2024-01", jan.Month)
	assert.Equal(t, 2, jan.Cycles)
	assert.InDelta(t, 300.0, jan.TotalProfit, 1e-9)
	assert.InDelta(t, 150.0, jan.AverageProfit, 1e-9)
	assert.InDelta(t, -150.0, jan.DeviationFromAverage, 1e-9)
	assert.InDelta(t, 20.0, jan.Price.Mean, 1e-9)
	assert.InDelta(t, 10.0, jan.Price.Min, 1e-9)
	assert.InDelta(t, 30.0, jan.Price.Max, 1e-9)

	assert.Equal(t, "2024-03", mar.Month)
	assert.InDelta(t, 600.0, mar.AverageProfit, 1e-9)
	assert.InDelta(t, 300.0, mar.DeviationFromAverage, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil, nil)
	assert.Equal(t, 0, s.TotalCycles)
	assert.Zero(t, s.TotalProfit)
	assert.Zero(t, s.AverageProfit)
	assert.Empty(t, s.Months)
}

func TestSummarize_DecimalTotals(t *testing.T) {
	var days []backtest.DayResult
	for i := 0; i < 10; i++ {
		days = append(days, backtest.DayResult{Month: "2024-01", Profit: 0.1})
	}
	s := Summarize(days, nil)
	assert.Equal(t, 1.0, s.TotalProfit)
}

func TestComputePriceStats(t *testing.T) {
	s := ComputePriceStats([]float64{5, 1, 3, 2, 4})
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, 1.0, s.Min, 1e-9)
	assert.InDelta(t, 5.0, s.Max, 1e-9)
	assert.InDelta(t, 3.0, s.Mean, 1e-9)
	assert.InDelta(t, 1.2, s.P05, 1e-9)
	assert.InDelta(t, 4.8, s.P95, 1e-9)
	assert.InDelta(t, 3.6, s.Spread, 1e-9)

	assert.Equal(t, PriceStats{}, ComputePriceStats(nil))
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{1, 2, 3}
	assert.Equal(t, 1.0, percentileSorted(vals, 0))
	assert.Equal(t, 3.0, percentileSorted(vals, 1))
	assert.Equal(t, 2.0, percentileSorted(vals, 0.5))
	assert.Equal(t, 0.0, percentileSorted(nil, 0.5))
}

func TestRankMonthsByProfit(t *testing.T) {
	months := []MonthStats{
		{Month: "2024-01", TotalProfit: 10},
		{Month: "2024-02", TotalProfit: 30},
		{Month: "2024-03", TotalProfit: 10},
	}
	ranked := RankMonthsByProfit(months)
	assert.Equal(t, "2024-02", ranked[0].Month)
	assert.Equal(t, "2024-01", ranked[1].Month)
	assert.Equal(t, "2024-03", ranked[2].Month)
	assert.Equal(t, "2024-01", months[0].Month)
}
