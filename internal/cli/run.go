// Package cli wires the topsis command line: argument parsing, table I/O
// and the evaluator.
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/topsis/internal/table"
	"github.com/tensorplex-labs/topsis/internal/topsis"
)

// Invocation holds the four positional arguments of one run.
type Invocation struct {
	InputPath  string
	Weights    string
	Impacts    string
	ResultPath string
}

type Options struct {
	Parallelism    int
	ScorePrecision int
	Delimiter      rune
	Show           bool
}

// Run evaluates one invocation end to end. Nothing is written to
// ResultPath unless every step succeeds.
func Run(inv Invocation, opts Options, stdout io.Writer) error {
	startTime := time.Now()
	tableOpts := []table.Option{
		table.WithDelimiter(opts.Delimiter),
		table.WithScorePrecision(opts.ScorePrecision),
	}

	tbl, err := table.Load(inv.InputPath, tableOpts...)
	if err != nil {
		return err
	}

	weights, impacts, err := topsis.ParseArguments(len(tbl.Criteria()), inv.Weights, inv.Impacts)
	if err != nil {
		return err
	}

	matrix, err := tbl.Matrix()
	if err != nil {
		return err
	}

	res, err := topsis.NewEvaluator(topsis.WithParallelism(opts.Parallelism)).Evaluate(matrix, weights, impacts)
	if err != nil {
		return err
	}

	if err := table.Write(inv.ResultPath, tbl, res, tableOpts...); err != nil {
		return err
	}

	if opts.Show {
		summary, err := table.Summary(tbl, res)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, summary)
	}
	fmt.Fprintln(stdout, table.SavedMessage(inv.ResultPath))

	log.Info().
		Str("input", inv.InputPath).
		Str("result", inv.ResultPath).
		Int("alternatives", len(tbl.Rows)).
		Dur("elapsed", time.Since(startTime)).
		Msg("topsis evaluation complete")
	return nil
}

// ErrorMessage renders err for the terminal.
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, topsis.ErrUsage):
		return err.Error()
	case errors.Is(err, topsis.ErrUnexpected), topsis.Kind(err) == "UnexpectedError":
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}
