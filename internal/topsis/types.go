package topsis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Impact is the preference direction of a criterion.
type Impact int

const (
	Benefit Impact = iota // higher is better, "+"
	Cost                  // lower is better, "-"
)

func (i Impact) String() string {
	switch i {
	case Benefit:
		return "+"
	case Cost:
		return "-"
	}
	return fmt.Sprintf("Impact(%d)", int(i))
}

type (
	Weights []float64 // 1D: one weight per criterion
	Impacts []Impact  // 1D: one impact per criterion
)

// DecisionMatrix holds alternatives as rows and criteria as columns.
type DecisionMatrix struct {
	Alternatives []string   // row identifiers, first input column
	Criteria     []string   // column labels
	Values       *mat.Dense // 2D: alternatives x criteria
}

// NewDecisionMatrix copies rows into a dense matrix. Every row must have
// len(criteria) finite values.
func NewDecisionMatrix(alternatives, criteria []string, rows [][]float64) (DecisionMatrix, error) {
	if len(rows) == 0 {
		return DecisionMatrix{}, fmt.Errorf("%w: decision matrix has no alternatives", ErrMalformedInput)
	}
	if len(criteria) < MinCriteria {
		return DecisionMatrix{}, fmt.Errorf("%w: need at least %d criteria, got %d", ErrMalformedInput, MinCriteria, len(criteria))
	}
	if len(alternatives) != len(rows) {
		return DecisionMatrix{}, fmt.Errorf("%w: %d identifiers for %d rows", ErrMalformedInput, len(alternatives), len(rows))
	}

	cols := len(criteria)
	data := make([]float64, 0, len(rows)*cols)
	for rowIdx, row := range rows {
		if len(row) != cols {
			return DecisionMatrix{}, fmt.Errorf("%w: row %d has %d values, expected %d", ErrMalformedInput, rowIdx+1, len(row), cols)
		}
		for colIdx, v := range row {
			if !isFinite(v) {
				return DecisionMatrix{}, fmt.Errorf("%w: row %d, column %q holds non-finite value %v",
					ErrMalformedInput, rowIdx+1, criteria[colIdx], v)
			}
		}
		data = append(data, row...)
	}

	return DecisionMatrix{
		Alternatives: append([]string(nil), alternatives...),
		Criteria:     append([]string(nil), criteria...),
		Values:       mat.NewDense(len(rows), cols, data),
	}, nil
}

// checkFinite reports the first NaN or infinite cell of m.
func (m DecisionMatrix) checkFinite() error {
	rows, cols := m.Dims()
	for i := range rows {
		for j := range cols {
			if v := m.Values.At(i, j); !isFinite(v) {
				return fmt.Errorf("%w: row %d, column %q holds non-finite value %v",
					ErrMalformedInput, i+1, m.criterionName(j), v)
			}
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Dims returns the number of alternatives and criteria.
func (m DecisionMatrix) Dims() (alternatives, criteria int) {
	if m.Values == nil {
		return 0, 0
	}
	return m.Values.Dims()
}

type Result struct {
	Scores     []float64 // 1D: closeness coefficient per alternative, input order
	Ranks      []int     // 1D: competition rank per alternative, 1 = best
	IdealBest  []float64 // 1D: per criterion
	IdealWorst []float64 // 1D: per criterion
	DistBest   []float64 // 1D: per alternative
	DistWorst  []float64 // 1D: per alternative
}
