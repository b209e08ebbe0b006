package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/topsis/internal/config"
	"github.com/tensorplex-labs/topsis/internal/topsis"
	"github.com/tensorplex-labs/topsis/internal/utils/logger"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2

	usageLine = "topsis [flags] <InputDataFile> <Weights> <Impacts> <ResultFileName>"
)

type flags struct {
	logger.Flags
	show        bool
	precision   int
	parallelism int
	delimiter   string
}

// NewRootCommand builds the topsis command. Flags must precede the
// positional arguments so that impacts such as "-,+,+" are not read as
// shorthand flags.
func NewRootCommand(stdout io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   usageLine,
		Short: "Rank alternatives with TOPSIS",
		Long: `Rank the alternatives of a CSV decision table with TOPSIS.

The first column of InputDataFile identifies each alternative and every other
column is a numeric criterion. Weights and Impacts are comma-separated lists
with one entry per criterion; impacts are '+' (benefit) or '-' (cost).
ResultFileName receives the input columns plus "Topsis Score" and "Rank".
A .json extension writes JSON and a .gz or .zst suffix compresses the output.`,
		Example:       `  topsis data.csv "1,1,1,2" "+,+,-,+" result.csv`,
		Args:          exactArgs(4),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(f.Flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := f.options(cmd)
			if err != nil {
				return err
			}
			return Run(Invocation{
				InputPath:  args[0],
				Weights:    args[1],
				Impacts:    args[2],
				ResultPath: args[3],
			}, opts, stdout)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w\nUsage: %s", topsis.ErrUsage, err, usageLine)
	})
	cmd.Flags().BoolVar(&f.Debug, "debug", false, "sets log level to debug")
	cmd.Flags().BoolVar(&f.Trace, "trace", false, "sets log level to trace")
	cmd.Flags().BoolVar(&f.Info, "info", false, "sets log level to info")
	cmd.Flags().BoolVar(&f.show, "show", false, "print the ranking after writing the result file")
	cmd.Flags().IntVar(&f.precision, "precision", -1, "decimals written for scores (-1 = shortest exact)")
	cmd.Flags().IntVar(&f.parallelism, "parallel", 1, "goroutines used for column and row reductions")
	cmd.Flags().StringVar(&f.delimiter, "delimiter", ",", "field delimiter of the input and result files")

	return cmd
}

// options merges environment configuration with explicitly set flags.
func (f *flags) options(cmd *cobra.Command) (Options, error) {
	cfg, err := config.LoadCLIEnv()
	if err != nil {
		return Options{}, fmt.Errorf("%w: load config: %w", topsis.ErrUnexpected, err)
	}

	if cmd.Flags().Changed("precision") {
		cfg.ScorePrecision = f.precision
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallelism = f.parallelism
	}
	if cmd.Flags().Changed("delimiter") {
		cfg.Delimiter = f.delimiter
	}
	if err := cfg.Validate(); err != nil {
		return Options{}, fmt.Errorf("%w: %w", topsis.ErrUsage, err)
	}

	return Options{
		Parallelism:    cfg.Parallelism,
		ScorePrecision: cfg.ScorePrecision,
		Delimiter:      cfg.DelimiterRune(),
		Show:           f.show,
	}, nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return fmt.Errorf("%w: expected %d arguments, got %d\nUsage: %s", topsis.ErrUsage, n, len(args), usageLine)
		}
		return nil
	}
}

// Execute runs the command with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand(stdout)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return ExitOK
	}

	log.Debug().Err(err).Str("kind", topsis.Kind(err)).Msg("topsis invocation failed")
	fmt.Fprintln(stderr, ErrorMessage(err))
	if errors.Is(err, topsis.ErrUsage) {
		return ExitUsage
	}
	return ExitError
}
