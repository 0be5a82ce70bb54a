package analysis

import (
	"sort"
)

// RankMonthsByProfit returns a copy of months sorted descending by total
// profit. Equal totals keep calendar order.
func RankMonthsByProfit(months []MonthStats) []MonthStats {
	out := append([]MonthStats(nil), months...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalProfit > out[j].TotalProfit
	})
	return out
}
