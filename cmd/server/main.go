package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/tensorplex-labs/topsis/internal/config"
	"github.com/tensorplex-labs/topsis/internal/server"
	"github.com/tensorplex-labs/topsis/internal/topsis"
	"github.com/tensorplex-labs/topsis/internal/utils/logger"
)

func main() {
	var flags logger.Flags

	cmd := &cobra.Command{
		Use:           "topsis-server",
		Short:         "Serve TOPSIS evaluations over HTTP",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(flags)

			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			evaluator := topsis.NewEvaluator(topsis.WithParallelism(cfg.Parallelism))
			return server.NewServer(&cfg.ServerEnvConfig, evaluator).Start(ctx)
		},
	}
	cmd.Flags().BoolVar(&flags.Debug, "debug", false, "sets log level to debug")
	cmd.Flags().BoolVar(&flags.Trace, "trace", false, "sets log level to trace")
	cmd.Flags().BoolVar(&flags.Info, "info", false, "sets log level to info")

	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}
