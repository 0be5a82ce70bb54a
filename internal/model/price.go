package model

import "time"

// PricePoint is one hourly price observation in currency per MWh.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
}

// DayPriceSeries is the ordered price sequence for one calendar day.
// Points are addressed by position, not by hour of day: gaps in the source
// simply shrink the index space.
type DayPriceSeries struct {
	Date   time.Time
	Points []PricePoint
}

func (d DayPriceSeries) Len() int { return len(d.Points) }

// Prices returns the bare price values in position order.
func (d DayPriceSeries) Prices() []float64 {
	out := make([]float64, len(d.Points))
	for i, p := range d.Points {
		out[i] = p.Price
	}
	return out
}

// DayKey truncates t to local midnight in its own location.
func DayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthKey formats t as "2006-01".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
