package topsis

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Distances returns the Euclidean distance from row to the ideal-best and
// ideal-worst points.
func Distances(row, best, worst []float64) (distBest, distWorst float64) {
	return floats.Distance(row, best, 2), floats.Distance(row, worst, 2)
}

// Closeness is the relative closeness to the ideal solution. It is NaN when
// the alternative coincides with both ideal points.
func Closeness(distBest, distWorst float64) float64 {
	total := distBest + distWorst
	if total == 0 {
		return math.NaN()
	}
	return distWorst / total
}
