// Package config defines environment configuration structs and loaders.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type AppConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"prod"`
	EvaluatorEnvConfig
	OutputEnvConfig
	ServerEnvConfig
}

func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EvaluatorEnvConfig tunes the evaluator.
type EvaluatorEnvConfig struct {
	Parallelism int `env:"TOPSIS_PARALLELISM" envDefault:"1"`
}

// OutputEnvConfig controls how result tables are written.
type OutputEnvConfig struct {
	// ScorePrecision is the number of decimals written for scores; -1 writes
	// the shortest representation that round-trips.
	ScorePrecision int    `env:"TOPSIS_SCORE_PRECISION" envDefault:"-1"`
	Delimiter      string `env:"TOPSIS_DELIMITER" envDefault:","`
}

// ServerEnvConfig configures the evaluation server.
type ServerEnvConfig struct {
	Host            string        `env:"TOPSIS_SERVER_HOST" envDefault:"0.0.0.0"`
	Port            int           `env:"TOPSIS_SERVER_PORT" envDefault:"8080"`
	BodyLimit       int           `env:"TOPSIS_SERVER_BODY_LIMIT" envDefault:"4194304"`
	ShutdownTimeout time.Duration `env:"TOPSIS_SERVER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func (c *ServerEnvConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *AppConfig) Validate() error {
	if err := c.EvaluatorEnvConfig.Validate(); err != nil {
		return err
	}
	if err := c.OutputEnvConfig.Validate(); err != nil {
		return err
	}
	return c.ServerEnvConfig.Validate()
}

func (c *EvaluatorEnvConfig) Validate() error {
	if c.Parallelism < 1 {
		return fmt.Errorf("TOPSIS_PARALLELISM must be at least 1, got %d", c.Parallelism)
	}
	return nil
}

func (c *OutputEnvConfig) Validate() error {
	if c.ScorePrecision < -1 {
		return fmt.Errorf("TOPSIS_SCORE_PRECISION must be -1 or greater, got %d", c.ScorePrecision)
	}
	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("TOPSIS_DELIMITER must be a single character, got %q", c.Delimiter)
	}
	return nil
}

func (c *ServerEnvConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("TOPSIS_SERVER_PORT out of range: %d", c.Port)
	}
	return nil
}

// DelimiterRune returns the configured delimiter, defaulting to ','.
func (c *OutputEnvConfig) DelimiterRune() rune {
	r := []rune(c.Delimiter)
	if len(r) != 1 {
		return ','
	}
	return r[0]
}
