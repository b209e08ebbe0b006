// Package server exposes the evaluator over HTTP.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/topsis/internal/config"
	"github.com/tensorplex-labs/topsis/internal/topsis"
	"github.com/tensorplex-labs/topsis/pkg/api"
)

const defaultShutdownTimeout = 5 * time.Second

type Server struct {
	App       *fiber.App
	config    *config.ServerEnvConfig
	evaluator *topsis.Evaluator
}

func NewServer(cfg *config.ServerEnvConfig, evaluator *topsis.Evaluator) *Server {
	if cfg == nil {
		cfg = &config.ServerEnvConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			BodyLimit:       4 * 1024 * 1024,
			ShutdownTimeout: defaultShutdownTimeout,
		}
	}
	if evaluator == nil {
		evaluator = topsis.NewEvaluator()
	}

	log.Info().
		Any("serverConfig", cfg).
		Int("parallelism", evaluator.Parallelism).
		Msg("Server configuration loaded")

	app := fiber.New(fiber.Config{
		ErrorHandler:          fiberErrHandler,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(ZstdMiddleware([]string{api.HealthPath}))

	s := &Server{
		App:       app,
		config:    cfg,
		evaluator: evaluator,
	}

	app.Get(api.HealthPath, s.handleHealth)
	app.Post(api.EvaluatePath, s.handleEvaluate)

	return s
}

func fiberErrHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	log.Error().
		Err(err).
		Int("status_code", code).
		Str("path", c.Path()).
		Str("method", c.Method()).
		Msg("Fiber error handler triggered")

	return c.Status(code).JSON(createResponse(map[string]any{}, err))
}

// Start listens until ctx is cancelled and then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", s.config.Address()).Msg("evaluation server listening")
		errCh <- s.App.Listen(s.config.Address())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("shutting down evaluation server")
	return s.App.ShutdownWithContext(ctx)
}
