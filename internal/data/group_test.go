package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battery-arbitrage/internal/model"
)

func TestGroupByDay(t *testing.T) {
	base := time.Date(2024, 3, 1, 22, 0, 0, 0, time.UTC)
	var points []model.PricePoint
	for i := 0; i < 5; i++ {
		points = append(points, model.PricePoint{Timestamp: base.Add(time.Duration(i) * time.Hour), Price: float64(i)})
	}
	// Duplicate of 23:00 from an overlapping file.
	points = append(points[:2], append([]model.PricePoint{{Timestamp: base.Add(time.Hour), Price: 99}}, points[2:]...)...)

	days := GroupByDay(points)
	require.Len(t, days, 2)

	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), days[0].Date)
	assert.Equal(t, []float64{0, 1}, days[0].Prices())
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), days[1].Date)
	assert.Equal(t, []float64{2, 3, 4}, days[1].Prices())
}

func TestGroupByDay_Empty(t *testing.T) {
	assert.Empty(t, GroupByDay(nil))
}
