package config

import (
	"github.com/caarlos0/env/v11"
)

// CLIConfig is the part of the environment the command line tool reads.
type CLIConfig struct {
	EvaluatorEnvConfig
	OutputEnvConfig
}

// LoadCLIEnv parses CLIConfig without validating it, so that command line
// flags can override the environment first.
func LoadCLIEnv() (*CLIConfig, error) {
	cfg, err := env.ParseAs[CLIConfig]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *CLIConfig) Validate() error {
	if err := c.EvaluatorEnvConfig.Validate(); err != nil {
		return err
	}
	return c.OutputEnvConfig.Validate()
}
