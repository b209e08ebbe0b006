// Package topsis ranks alternatives with the Technique for Order Preference
// by Similarity to Ideal Solution.
package topsis

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/tensorplex-labs/topsis/internal/utils/logger"
)

type Evaluator struct {
	Parallelism int
}

type EvaluatorOption func(*Evaluator)

// WithParallelism bounds the number of goroutines used for per-column and
// per-row reductions. Values below 2 keep evaluation on the calling goroutine.
func WithParallelism(n int) EvaluatorOption {
	return func(e *Evaluator) {
		e.Parallelism = n
	}
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		Parallelism: 1,
	}

	for _, opt := range opts {
		opt(e)
	}

	logger.Sugar().Debugw("Evaluator configured", "parallelism", e.Parallelism)
	return e
}

// Evaluate scores and ranks every alternative of m. It does not modify its
// inputs.
func Evaluate(m DecisionMatrix, weights Weights, impacts Impacts) (*Result, error) {
	return NewEvaluator().Evaluate(m, weights, impacts)
}

func (e *Evaluator) Evaluate(m DecisionMatrix, weights Weights, impacts Impacts) (*Result, error) {
	startTime := time.Now()

	rows, cols := m.Dims()
	if rows < 1 {
		return nil, fmt.Errorf("%w: decision matrix has no alternatives", ErrMalformedInput)
	}
	if cols < MinCriteria {
		return nil, fmt.Errorf("%w: need at least %d criteria, got %d", ErrMalformedInput, MinCriteria, cols)
	}
	if err := m.checkFinite(); err != nil {
		return nil, err
	}
	if err := checkDimensions(cols, len(weights), len(impacts)); err != nil {
		return nil, err
	}
	if err := validateImpacts(impacts); err != nil {
		return nil, err
	}
	if err := validateWeights(weights); err != nil {
		return nil, err
	}

	weighted := mat.NewDense(rows, cols, nil)
	idealBest := make([]float64, cols)
	idealWorst := make([]float64, cols)

	err := e.forEach(cols, func(j int) error {
		col, ok := NormalizeColumn(mat.Col(nil, j, m.Values), weights[j])
		if !ok {
			return fmt.Errorf("%w: criterion %q is all zero and cannot be normalized", ErrDegenerateColumn, m.criterionName(j))
		}
		weighted.SetCol(j, col)
		idealBest[j], idealWorst[j] = IdealPoints(col, impacts[j])
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Trace().Floats64("idealBest", idealBest).Floats64("idealWorst", idealWorst).Msg("ideal points computed")

	res := &Result{
		Scores:     make([]float64, rows),
		IdealBest:  idealBest,
		IdealWorst: idealWorst,
		DistBest:   make([]float64, rows),
		DistWorst:  make([]float64, rows),
	}

	_ = e.forEach(rows, func(i int) error {
		res.DistBest[i], res.DistWorst[i] = Distances(weighted.RawRowView(i), idealBest, idealWorst)
		res.Scores[i] = Closeness(res.DistBest[i], res.DistWorst[i])
		return nil
	})

	res.Ranks = CompetitionRanks(res.Scores)

	log.Debug().Msgf("Evaluated %d alternatives against %d criteria in %v", rows, cols, time.Since(startTime))
	return res, nil
}

// forEach calls fn for every index in [0, n). When several calls fail the
// error of the lowest index is returned, so parallel and serial runs report
// the same failure.
func (e *Evaluator) forEach(n int, fn func(idx int) error) error {
	errs := make([]error, n)

	if e.Parallelism < 2 {
		for idx := range n {
			errs[idx] = fn(idx)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(e.Parallelism)
		for idx := range n {
			g.Go(func() error {
				errs[idx] = fn(idx)
				return nil
			})
		}
		_ = g.Wait()
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (m DecisionMatrix) criterionName(j int) string {
	if j < len(m.Criteria) {
		return m.Criteria[j]
	}
	return fmt.Sprintf("#%d", j+1)
}
