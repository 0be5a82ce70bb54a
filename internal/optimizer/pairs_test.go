package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBestSingleHourPair(t *testing.T) {
	batt := testBattery(t, 100, 50, 0.87, 8)

	res, ok := BestSingleHourPair([]float64{30, 10, 50, 20, 90}, batt)
	require.True(t, ok)
	assert.Equal(t, []int{1}, res.ChargeIndices)
	assert.Equal(t, []int{4}, res.DischargeIndices)
	assert.InDelta(t, 100*0.87*90-100*10, res.Profit, 1e-9)
}

func TestBestSingleHourPair_RespectsGap(t *testing.T) {
	batt := testBattery(t, 100, 100, 1, 2)

	res, ok := BestSingleHourPair([]float64{1, 5, 6, 100}, batt)
	require.True(t, ok)
	assert.Equal(t, []int{1}, res.ChargeIndices)
	assert.Equal(t, []int{3}, res.DischargeIndices)
}

func TestBestSingleHourPair_TooShort(t *testing.T) {
	batt := testBattery(t, 100, 100, 1, 2)

	_, ok := BestSingleHourPair([]float64{7}, batt)
	assert.False(t, ok)
	_, ok = BestSingleHourPair(nil, batt)
	assert.False(t, ok)
}
