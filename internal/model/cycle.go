package model

// Heuristic names which candidate won a window selection.
// Keep these values stable; they are written to CSV and JSON output.
type Heuristic string

const (
	HeuristicContiguous Heuristic = "CONTIGUOUS"
	HeuristicBestK      Heuristic = "BEST_K"
)

// CycleResult is the best charge/discharge pairing found for one day.
// Indices refer to positions in the day's price series and are ascending.
type CycleResult struct {
	ChargeIndices    []int
	DischargeIndices []int

	ChargeHeuristic    Heuristic
	DischargeHeuristic Heuristic

	ChargeCost       float64 // PowerMW * sum of charge prices
	DischargeRevenue float64 // DeliverableEnergyMWh * mean discharge price
	Profit           float64
}

// LastCharge returns the highest charge index, or -1 for an empty result.
func (c CycleResult) LastCharge() int {
	return lastIndex(c.ChargeIndices)
}

// LastDischarge returns the highest discharge index, or -1 for an empty result.
func (c CycleResult) LastDischarge() int {
	return lastIndex(c.DischargeIndices)
}

func lastIndex(idx []int) int {
	m := -1
	for _, i := range idx {
		if i > m {
			m = i
		}
	}
	return m
}
