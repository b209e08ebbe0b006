package topsis

import (
	"gonum.org/v1/gonum/floats"
)

// IdealPoints returns the most and least preferred value of a weighted
// criterion column.
func IdealPoints(col []float64, impact Impact) (best, worst float64) {
	maxVal := floats.Max(col)
	minVal := floats.Min(col)

	if impact == Cost {
		return minVal, maxVal
	}
	return maxVal, minVal
}
