package optimizer

import (
	"context"
	"math"

	"battery-arbitrage/internal/model"
)

// OptimizeDay finds the single best charge/discharge pairing for one day.
// ok is false when the day has no feasible pairing; that is not an error.
func OptimizeDay(day model.DayPriceSeries, batt model.BatteryConfig) (model.CycleResult, bool) {
	res, ok, _ := OptimizePrices(context.Background(), day.Prices(), batt)
	return res, ok
}

// OptimizePrices runs the search over a bare price sequence.
//
// For every charge start the charge window is the cheaper of the contiguous
// run at that start and the day-wide k cheapest hours. Discharge must end no
// later than MaxGapHours after the last charge hour; for every discharge start
// inside that window the revenue is the better of the contiguous run at that
// start and the k most expensive hours of the window. The first strictly
// better profit wins, so ties keep the lowest charge start, then the lowest
// discharge start.
//
// ctx is checked between charge starts only.
func OptimizePrices(ctx context.Context, prices []float64, batt model.BatteryConfig) (model.CycleResult, bool, error) {
	n := len(prices)
	ch := batt.ChargeHours()
	dh := batt.DischargeHours()
	if n < 2 || ch < 1 || dh < 1 || n < ch {
		return model.CycleResult{}, false, nil
	}

	// Neither candidate below depends on the loop variables they are
	// hoisted out of, so computing them once leaves the result unchanged.
	dayBuy := bestK(prices, Span{Lo: 0, Hi: n}, ch, RoleBuy)

	var best model.CycleResult
	bestProfit := math.Inf(-1)

	for chargeStart := 0; chargeStart+ch <= n; chargeStart++ {
		if err := ctx.Err(); err != nil {
			return model.CycleResult{}, false, err
		}

		charge := choose(prices, contiguous(chargeStart, ch), dayBuy, RoleBuy, batt)
		chargeEnd := charge.Indices[len(charge.Indices)-1]

		window := Span{Lo: chargeEnd + 1, Hi: chargeEnd + batt.MaxGapHours + 1}
		if window.Hi > n {
			window.Hi = n
		}
		if window.Width() < dh {
			continue
		}
		windowSell := bestK(prices, window, dh, RoleSell)

		for dischargeStart := window.Lo; dischargeStart+dh <= window.Hi; dischargeStart++ {
			discharge := choose(prices, contiguous(dischargeStart, dh), windowSell, RoleSell, batt)
			profit := discharge.Value - charge.Value
			if profit > bestProfit {
				bestProfit = profit
				best = model.CycleResult{
					ChargeIndices:      charge.Indices,
					DischargeIndices:   discharge.Indices,
					ChargeHeuristic:    charge.Heuristic,
					DischargeHeuristic: discharge.Heuristic,
					ChargeCost:         charge.Value,
					DischargeRevenue:   discharge.Value,
					Profit:             profit,
				}
			}
		}
	}

	if math.IsInf(bestProfit, -1) {
		return model.CycleResult{}, false, nil
	}
	return best, true, nil
}
