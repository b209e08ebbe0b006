// Package logger provides a global logger for the application
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
)

var Logger = zap.NewNop()

// Flags mirrors the verbosity switches accepted by every entrypoint.
type Flags struct {
	Debug bool
	Trace bool
	Info  bool
}

func initLogger(out io.Writer, flags Flags) {
	// .env is optional; env vars set by the shell still apply
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out}).With().Caller().Logger()

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if environment == "" {
		environment = "prod"
	}

	var logLevel zerolog.Level
	switch environment {
	case "dev", "test":
		logLevel = zerolog.DebugLevel
	case "prod":
		logLevel = zerolog.WarnLevel
	default:
		logLevel = zerolog.WarnLevel
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (warn and above)")
	}

	if flags.Debug {
		logLevel = zerolog.DebugLevel
	} else if flags.Trace {
		logLevel = zerolog.TraceLevel
	} else if flags.Info {
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
	Logger = newZapLogger(environment, logLevel)

	switch logLevel {
	case zerolog.DebugLevel:
		log.Debug().Str("environment", environment).Msg("Debug logging enabled")
	case zerolog.TraceLevel:
		log.Trace().Str("environment", environment).Msg("Trace logging enabled")
	case zerolog.InfoLevel:
		log.Info().Str("environment", environment).Msg("Info logging enabled")
	}
}

func newZapLogger(environment string, level zerolog.Level) *zap.Logger {
	var cfg zap.Config
	if environment == "prod" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zapLevel(level)
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		log.Error().Err(err).Msg("failed to build zap logger, falling back to no-op")
		return zap.NewNop()
	}
	return l
}

func zapLevel(level zerolog.Level) zap.AtomicLevel {
	switch level {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case zerolog.InfoLevel:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	case zerolog.WarnLevel:
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return zap.NewAtomicLevelAt(zap.ErrorLevel)
}

// Init initializes the logger with the configuration from the environment
// and the verbosity flags of the entrypoint.
// It sets up the global logger to use zerolog with console output on stderr.
// Example usage:
//
//	logger.Init(logger.Flags{Debug: debug}) <- inside a cobra PersistentPreRun
//
// Then, `topsis --debug data.csv "1,1,1" "+,+,-" out.csv`
func Init(flags Flags) {
	initLogger(os.Stderr, flags)
}

// Sugar returns a sugared logger for easier use
func Sugar() *zap.SugaredLogger {
	return Logger.Sugar()
}
