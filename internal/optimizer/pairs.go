package optimizer

import (
	"math"

	"battery-arbitrage/internal/model"
)

// BestSingleHourPair exhaustively searches one buy hour i and one sell hour j
// with i < j <= i+MaxGapHours, maximising
// CapacityMWh*Efficiency*price[j] - CapacityMWh*price[i].
//
// It is the reference search for batteries that fill in a single hour and is
// used to validate OptimizeDay.
func BestSingleHourPair(prices []float64, batt model.BatteryConfig) (model.CycleResult, bool) {
	bestProfit := math.Inf(-1)
	var best model.CycleResult

	for i := 0; i < len(prices); i++ {
		cost := batt.CapacityMWh * prices[i]
		last := i + batt.MaxGapHours
		if last > len(prices)-1 {
			last = len(prices) - 1
		}
		for j := i + 1; j <= last; j++ {
			revenue := batt.CapacityMWh * batt.Efficiency * prices[j]
			if profit := revenue - cost; profit > bestProfit {
				bestProfit = profit
				best = model.CycleResult{
					ChargeIndices:      []int{i},
					DischargeIndices:   []int{j},
					ChargeHeuristic:    model.HeuristicContiguous,
					DischargeHeuristic: model.HeuristicContiguous,
					ChargeCost:         cost,
					DischargeRevenue:   revenue,
					Profit:             profit,
				}
			}
		}
	}

	if math.IsInf(bestProfit, -1) {
		return model.CycleResult{}, false
	}
	return best, true
}
