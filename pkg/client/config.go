package client

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config configures the evaluation client.
type Config struct {
	BaseURL         string        `env:"TOPSIS_CLIENT_BASE_URL, default=http://127.0.0.1:8080"`
	Timeout         time.Duration `env:"TOPSIS_CLIENT_TIMEOUT, default=30s"`
	RetryMax        int           `env:"TOPSIS_CLIENT_RETRY_MAX, default=3"`
	RetryWaitMin    time.Duration `env:"TOPSIS_CLIENT_RETRY_WAIT_MIN, default=200ms"`
	RetryWaitMax    time.Duration `env:"TOPSIS_CLIENT_RETRY_WAIT_MAX, default=5s"`
	ZstdCompression bool          `env:"TOPSIS_CLIENT_ZSTD, default=true"`
}

func LoadConfig(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("process client env: %w", err)
	}
	return cfg, nil
}

// NewFromEnv builds a client from TOPSIS_CLIENT_* environment variables.
func NewFromEnv(ctx context.Context) (*Client, error) {
	cfg, err := LoadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return New(cfg)
}
