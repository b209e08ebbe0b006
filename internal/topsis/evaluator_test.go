package topsis

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var (
	referenceRows = [][]float64{
		{250, 16, 12, 5},
		{200, 16, 8, 3},
		{300, 32, 16, 4},
		{275, 32, 8, 4},
		{225, 16, 16, 2},
	}
	referenceWeights = Weights{0.25, 0.25, 0.25, 0.25}
	referenceImpacts = Impacts{Cost, Benefit, Benefit, Benefit}
)

func referenceMatrix(t testing.TB) DecisionMatrix {
	t.Helper()
	m, err := NewDecisionMatrix(
		[]string{"M1", "M2", "M3", "M4", "M5"},
		[]string{"Price", "Storage", "Camera", "Looks"},
		referenceRows,
	)
	require.NoError(t, err)
	return m
}

func randomMatrix(t testing.TB, rows, cols int) DecisionMatrix {
	t.Helper()
	ids := make([]string, rows)
	criteria := make([]string, cols)
	data := make([][]float64, rows)
	for i := range rows {
		ids[i] = fmt.Sprintf("A%d", i+1)
		data[i] = make([]float64, cols)
		for j := range cols {
			data[i][j] = rand.Float64()*100 + 1
		}
	}
	for j := range cols {
		criteria[j] = fmt.Sprintf("C%d", j+1)
	}
	m, err := NewDecisionMatrix(ids, criteria, data)
	require.NoError(t, err)
	return m
}

func TestEvaluate_ReferenceExample(t *testing.T) {
	res, err := Evaluate(referenceMatrix(t), referenceWeights, referenceImpacts)
	require.NoError(t, err)

	expected := []float64{
		0.5342768571821003,
		0.3083677687324685,
		0.6916322312675315,
		0.534736584486838,
		0.40104612151678615,
	}
	require.Len(t, res.Scores, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i], res.Scores[i], 1e-12, "score of row %d", i)
	}
	assert.Equal(t, []int{3, 5, 1, 2, 4}, res.Ranks)

	assert.InDelta(t, 0.053419485738657506, res.DistBest[2], 1e-12)
	assert.InDelta(t, 0.11981355336343749, res.DistWorst[2], 1e-12)
}

func TestEvaluate_IdealPointsFollowImpacts(t *testing.T) {
	res, err := Evaluate(referenceMatrix(t), referenceWeights, referenceImpacts)
	require.NoError(t, err)

	// price is a cost: best is the lowest weighted price
	assert.Less(t, res.IdealBest[0], res.IdealWorst[0])
	for j := 1; j < 4; j++ {
		assert.Greater(t, res.IdealBest[j], res.IdealWorst[j])
	}
}

func TestEvaluate_DoesNotMutateInputs(t *testing.T) {
	m := referenceMatrix(t)
	weights := append(Weights(nil), referenceWeights...)

	_, err := Evaluate(m, weights, referenceImpacts)
	require.NoError(t, err)

	for i, row := range referenceRows {
		for j, v := range row {
			assert.Equal(t, v, m.Values.At(i, j))
		}
	}
	assert.Equal(t, referenceWeights, weights)
}

func TestEvaluate_ScoresWithinUnitInterval(t *testing.T) {
	for range 20 {
		m := randomMatrix(t, 12, 5)
		impacts := Impacts{Benefit, Cost, Benefit, Cost, Benefit}
		res, err := Evaluate(m, Weights{1, 2, 3, 4, 5}, impacts)
		require.NoError(t, err)

		for _, s := range res.Scores {
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 1.0)
		}
	}
}

func TestEvaluate_RankOrderMatchesScores(t *testing.T) {
	m := randomMatrix(t, 30, 4)
	res, err := Evaluate(m, Weights{1, 1, 1, 1}, Impacts{Benefit, Benefit, Cost, Cost})
	require.NoError(t, err)

	for i := range res.Scores {
		for j := range res.Scores {
			switch {
			case res.Scores[i] > res.Scores[j]:
				assert.Less(t, res.Ranks[i], res.Ranks[j])
			case res.Scores[i] == res.Scores[j]:
				assert.Equal(t, res.Ranks[i], res.Ranks[j])
			}
		}
	}
}

func TestEvaluate_WeightScalingInvariance(t *testing.T) {
	m := referenceMatrix(t)
	base, err := Evaluate(m, Weights{1, 2, 3, 4}, referenceImpacts)
	require.NoError(t, err)

	scaled, err := Evaluate(m, Weights{7.5, 15, 22.5, 30}, referenceImpacts)
	require.NoError(t, err)

	assert.InDeltaSlice(t, base.Scores, scaled.Scores, 1e-12)
	assert.Equal(t, base.Ranks, scaled.Ranks)
}

func TestEvaluate_Reproducible(t *testing.T) {
	m := randomMatrix(t, 50, 6)
	weights := Weights{1, 2, 1, 2, 1, 2}
	impacts := Impacts{Benefit, Cost, Benefit, Cost, Benefit, Cost}

	first, err := Evaluate(m, weights, impacts)
	require.NoError(t, err)
	second, err := Evaluate(m, weights, impacts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestEvaluate_ParallelMatchesSerial(t *testing.T) {
	m := randomMatrix(t, 200, 8)
	weights := Weights{1, 2, 3, 4, 5, 6, 7, 8}
	impacts := Impacts{Benefit, Cost, Benefit, Cost, Benefit, Cost, Benefit, Cost}

	serial, err := NewEvaluator().Evaluate(m, weights, impacts)
	require.NoError(t, err)
	parallel, err := NewEvaluator(WithParallelism(4)).Evaluate(m, weights, impacts)
	require.NoError(t, err)

	// bit-identical, not just close
	assert.Equal(t, serial, parallel)
}

func TestEvaluate_SingleAlternativeIsUndefined(t *testing.T) {
	m, err := NewDecisionMatrix([]string{"only"}, []string{"a", "b"}, [][]float64{{3, 4}})
	require.NoError(t, err)

	res, err := Evaluate(m, Weights{1, 1}, Impacts{Benefit, Cost})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(res.Scores[0]))
	assert.Equal(t, []int{1}, res.Ranks)
}

func TestEvaluate_Errors(t *testing.T) {
	m := referenceMatrix(t)

	tests := []struct {
		name    string
		matrix  DecisionMatrix
		weights Weights
		impacts Impacts
		want    error
	}{
		{"empty matrix", DecisionMatrix{}, referenceWeights, referenceImpacts, ErrMalformedInput},
		{"too few weights", m, Weights{1, 1, 1}, referenceImpacts, ErrDimensionMismatch},
		{"too many impacts", m, referenceWeights, append(Impacts{Cost}, referenceImpacts...), ErrDimensionMismatch},
		{"unknown impact", m, referenceWeights, Impacts{Cost, Benefit, Impact(7), Benefit}, ErrInvalidImpact},
		{"zero weight", m, Weights{0, 1, 1, 1}, referenceImpacts, ErrMalformedInput},
		{"negative weight", m, Weights{1, -1, 1, 1}, referenceImpacts, ErrMalformedInput},
		{"nan weight", m, Weights{1, 1, math.NaN(), 1}, referenceImpacts, ErrMalformedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Evaluate(tt.matrix, tt.weights, tt.impacts)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEvaluate_DegenerateColumn(t *testing.T) {
	m, err := NewDecisionMatrix(
		[]string{"a", "b", "c"},
		[]string{"x", "zeros", "y"},
		[][]float64{{1, 0, 2}, {2, 0, 3}, {3, 0, 1}},
	)
	require.NoError(t, err)

	for _, p := range []int{1, 3} {
		_, err = NewEvaluator(WithParallelism(p)).Evaluate(m, Weights{1, 1, 1}, Impacts{Benefit, Benefit, Cost})
		require.ErrorIs(t, err, ErrDegenerateColumn)
		assert.Contains(t, err.Error(), `"zeros"`)
	}
}

func TestNewDecisionMatrix_Errors(t *testing.T) {
	_, err := NewDecisionMatrix(nil, []string{"a", "b"}, nil)
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = NewDecisionMatrix([]string{"x"}, []string{"a"}, [][]float64{{1}})
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = NewDecisionMatrix([]string{"x", "y"}, []string{"a", "b"}, [][]float64{{1, 2}})
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = NewDecisionMatrix([]string{"x", "y"}, []string{"a", "b"}, [][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrMalformedInput)

	for _, bad := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err = NewDecisionMatrix([]string{"x", "y"}, []string{"a", "b"}, [][]float64{{bad, 1}, {1, 2}})
		require.ErrorIs(t, err, ErrMalformedInput)
		assert.Contains(t, err.Error(), `row 1, column "a"`)
	}
}

func TestEvaluate_NonFiniteCell(t *testing.T) {
	m := DecisionMatrix{
		Alternatives: []string{"x", "y"},
		Criteria:     []string{"a", "b"},
		Values:       mat.NewDense(2, 2, []float64{1, 2, 3, math.Inf(1)}),
	}

	res, err := Evaluate(m, Weights{1, 1}, Impacts{Benefit, Benefit})
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrMalformedInput)
	assert.Contains(t, err.Error(), `row 2, column "b"`)
}

func BenchmarkEvaluate(b *testing.B) {
	sizes := []struct {
		alternatives int
		criteria     int
		parallelism  int
	}{
		{250, 4, 1},
		{250, 10, 1},
		{5000, 10, 1},
		{5000, 10, 8},
	}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("Alternatives%d_Criteria%d_P%d", size.alternatives, size.criteria, size.parallelism), func(b *testing.B) {
			m := randomMatrix(b, size.alternatives, size.criteria)
			weights := make(Weights, size.criteria)
			impacts := make(Impacts, size.criteria)
			for j := range weights {
				weights[j] = 1
				if j%2 == 1 {
					impacts[j] = Cost
				}
			}
			e := NewEvaluator(WithParallelism(size.parallelism))

			b.ResetTimer()
			for b.Loop() {
				_, _ = e.Evaluate(m, weights, impacts)
			}
		})
	}
}
