package optimizer

import (
	"errors"
	"sort"

	"battery-arbitrage/internal/model"
)

// ErrInfeasible is returned when a window of the requested size cannot be
// placed inside the candidate span.
var ErrInfeasible = errors.New("optimizer: window infeasible")

// Role selects how a window is valued.
type Role int

const (
	// RoleBuy minimises PowerMW * sum(price).
	RoleBuy Role = iota
	// RoleSell maximises DeliverableEnergyMWh * mean(price).
	RoleSell
)

func (r Role) String() string {
	if r == RoleSell {
		return "sell"
	}
	return "buy"
}

// Span is the half-open index range [Lo, Hi).
type Span struct {
	Lo int
	Hi int
}

func (s Span) Width() int { return s.Hi - s.Lo }

// Selection is the winning index set for one role together with its cost
// (buy) or revenue (sell) and the heuristic that produced it.
type Selection struct {
	Indices   []int
	Value     float64
	Heuristic model.Heuristic
}

// SelectWindow compares the contiguous run [anchor, anchor+k) with the k
// best-priced positions of span and returns the better one for role.
// Best-k only wins on a strict improvement.
func SelectWindow(prices []float64, span Span, anchor, k int, role Role, batt model.BatteryConfig) (Selection, error) {
	if k < 1 || span.Lo < 0 || span.Hi > len(prices) || span.Width() < k {
		return Selection{}, ErrInfeasible
	}
	if anchor < span.Lo || anchor+k > span.Hi {
		return Selection{}, ErrInfeasible
	}
	best := bestK(prices, span, k, role)
	return choose(prices, contiguous(anchor, k), best, role, batt), nil
}

func contiguous(anchor, k int) []int {
	out := make([]int, k)
	for i := range out {
		out[i] = anchor + i
	}
	return out
}

// bestK returns the k cheapest (buy) or most expensive (sell) positions of
// span in ascending index order. Equal prices keep position order.
func bestK(prices []float64, span Span, k int, role Role) []int {
	idx := make([]int, 0, span.Width())
	for i := span.Lo; i < span.Hi; i++ {
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if role == RoleSell {
			return prices[idx[a]] > prices[idx[b]]
		}
		return prices[idx[a]] < prices[idx[b]]
	})
	out := append([]int(nil), idx[:k]...)
	sort.Ints(out)
	return out
}

func choose(prices []float64, contig, best []int, role Role, batt model.BatteryConfig) Selection {
	cv := valueOf(prices, contig, role, batt)
	bv := valueOf(prices, best, role, batt)

	bestWins := bv < cv
	if role == RoleSell {
		bestWins = bv > cv
	}
	if bestWins {
		return Selection{Indices: best, Value: bv, Heuristic: model.HeuristicBestK}
	}
	return Selection{Indices: contig, Value: cv, Heuristic: model.HeuristicContiguous}
}

func valueOf(prices []float64, idx []int, role Role, batt model.BatteryConfig) float64 {
	sum := 0.0
	for _, i := range idx {
		sum += prices[i]
	}
	if role == RoleSell {
		return batt.DeliverableEnergyMWh() * (sum / float64(len(idx)))
	}
	return batt.PowerMW * sum
}
