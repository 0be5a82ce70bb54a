package data

import (
	"battery-arbitrage/internal/model"
)

// GroupByDay splits time-sorted points into calendar days of their own
// location. A point repeating the previous timestamp is dropped, so files
// with overlapping ranges do not double-count hours.
func GroupByDay(points []model.PricePoint) []model.DayPriceSeries {
	var out []model.DayPriceSeries
	for _, p := range points {
		key := model.DayKey(p.Timestamp)
		if n := len(out); n > 0 && out[n-1].Date.Equal(key) {
			day := &out[n-1]
			if last := day.Points[len(day.Points)-1]; last.Timestamp.Equal(p.Timestamp) {
				continue
			}
			day.Points = append(day.Points, p)
			continue
		}
		out = append(out, model.DayPriceSeries{Date: key, Points: []model.PricePoint{p}})
	}
	return out
}
