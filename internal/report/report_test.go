package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-arbitrage/internal/analysis"
	"battery-arbitrage/internal/backtest"
	"battery-arbitrage/internal/model"
)

func sampleDays() []backtest.DayResult {
	var days []backtest.DayResult
	profits := []float64{100, 150, 400}
	base := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		d := base.AddDate(0, 0, i)
		days = append(days, backtest.DayResult{
			Date:              d,
			Month:             model.MonthKey(d),
			ChargeTimes:       []time.Time{d.Add(3 * time.Hour)},
			DischargeTimes:    []time.Time{d.Add(8 * time.Hour)},
			AvgChargePrice:    12.5,
			AvgDischargePrice: 80,
			GapHours:          5,
			Profit:            profits[i],
		})
	}
	return days
}

func TestWriteText(t *testing.T) {
	batt, err := model.NewBatteryConfig(100, 50, 0.87, 8)
	require.NoError(t, err)
	days := sampleDays()

	var buf bytes.Buffer
	err = WriteText(&buf, Input{
		Battery:    batt,
		Summary:    analysis.Summarize(days, nil),
		Days:       days,
		DetailRows: 2,
	})
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "Capacity:          100 MWh")
	assert.Contains(t, out, "Efficiency:        87%")
	assert.Contains(t, out, "Deliverable:       87.00 MWh")
	assert.Contains(t, out, "Month: 2024-01")
	assert.Contains(t, out, "Month: 2024-02")
	assert.Contains(t, out, "Total cycles:        3")
	assert.Contains(t, out, "Total profit:        650.00 EUR")
	assert.Contains(t, out, "Best month:          2024-02 (400.00 EUR)")
	assert.Contains(t, out, "DETAIL (FIRST 2 DAYS)")
	assert.Contains(t, out, "30.01.2024 03:00")
	assert.NotContains(t, out, "01.02.2024 03:00")
	assert.Equal(t, 1, strings.Count(out, "31.01.2024 08:00"))
}

func TestWriteText_Currency(t *testing.T) {
	batt, err := model.NewBatteryConfig(50, 50, 1, 8)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Input{Battery: batt, Currency: "USD"}))
	assert.Contains(t, buf.String(), "Total profit:        0.00 USD")
	assert.NotContains(t, buf.String(), "Best month")
}

func TestWriteChart(t *testing.T) {
	days := sampleDays()
	days[0].Profit = -500

	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, analysis.Summarize(days, nil)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestWriteChart_NoMonths(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteChart(&buf, analysis.Summary{}), ErrNoMonths)
}
