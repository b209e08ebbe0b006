package topsis

import (
	"gonum.org/v1/gonum/floats"
)

// NormalizeColumn divides every value of col by the Euclidean norm of col
// and then multiplies by weight. It reports false when the norm is zero.
func NormalizeColumn(col []float64, weight float64) ([]float64, bool) {
	result := make([]float64, len(col))
	copy(result, col)

	norm := floats.Norm(result, 2)
	if norm == 0 {
		return result, false
	}

	for i := range result {
		result[i] = result[i] / norm * weight
	}

	return result, true
}
