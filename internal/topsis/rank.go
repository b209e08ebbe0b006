package topsis

import (
	"math"
	"sort"
)

// CompetitionRanks ranks scores in descending order. Equal scores share the
// rank of their first position in sorted order ("1224" ranking). NaN scores
// come after every defined score and share one rank.
func CompetitionRanks(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := scores[order[a]], scores[order[b]]
		if math.IsNaN(sb) {
			return !math.IsNaN(sa)
		}
		return sa > sb
	})

	ranks := make([]int, len(scores))
	for pos, idx := range order {
		if pos > 0 && sameScore(scores[idx], scores[order[pos-1]]) {
			ranks[idx] = ranks[order[pos-1]]
			continue
		}
		ranks[idx] = pos + 1
	}

	return ranks
}

func sameScore(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return a == b
}
