package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/descent"
	"github.com/aretw0/descent/internal/logging"
	"github.com/aretw0/descent/pkg/adapters/memory"
	"github.com/aretw0/descent/pkg/adapters/redis"
	"github.com/aretw0/descent/pkg/config"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/observability"
	"github.com/aretw0/descent/pkg/session"
)

// Options are the flags shared by every command.
type Options struct {
	ConfigPath string
	LogLevel   string
	// Redis, when set, stores traces in Redis instead of memory.
	Redis    string
	TraceTTL time.Duration
	Metrics  bool
}

// Runtime bundles what a command needs after setup.
type Runtime struct {
	Settings config.Settings
	Logger   *slog.Logger
	Engine   *descent.Engine
	Metrics  *observability.Metrics
}

// Setup loads settings, configures logging and builds the engine.
func Setup(opts Options) (*Runtime, error) {
	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return nil, err
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.DefaultPath
	}
	settings, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("error loading settings: %w", err)
	}

	rt := &Runtime{Settings: settings, Logger: logger}
	rt.Engine = createEngine(rt, opts.Metrics)
	return rt, nil
}

// createEngine initializes a descent engine with standard CLI conventions.
func createEngine(rt *Runtime, withMetrics bool) *descent.Engine {
	engineOpts := []descent.Option{
		descent.WithLogger(rt.Logger),
		descent.WithSettings(rt.Settings),
	}

	if withMetrics {
		rt.Metrics = observability.NewMetrics()
		engineOpts = append(engineOpts, descent.WithLifecycleHooks(rt.Metrics.Hooks(rt.Logger)))
	} else {
		engineOpts = append(engineOpts, descent.WithLifecycleHooks(createDebugHooks(rt.Logger)))
	}

	return descent.New(engineOpts...)
}

// NewManager picks the trace store: Redis when an address is given, memory otherwise.
// The Redis store also provides the distributed lock.
func NewManager(opts Options, logger *slog.Logger) *session.Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	if opts.Redis == "" {
		return session.NewManager(memory.NewStore(),
			session.WithLocker(memory.NewLocker()),
			session.WithLogger(logger),
		)
	}

	var storeOpts []redis.Option
	if opts.TraceTTL > 0 {
		storeOpts = append(storeOpts, redis.WithTTL(opts.TraceTTL))
	}
	store := redis.New(opts.Redis, storeOpts...)
	logger.Info("Using Redis trace store", "addr", opts.Redis)
	return session.NewManager(store,
		session.WithLocker(redis.NewLocker(store.Client(), redis.DefaultPrefix+"lock:")),
		session.WithLogger(logger),
	)
}

// createLogger configures the application logger on stderr, keeping stdout
// free for command output.
func createLogger(level string) (*slog.Logger, error) {
	if level == "" || level == "off" {
		return logging.NewNop(), nil
	}
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			logger.Debug("Compile", "expression", e.Expression, "numeric_gradient", e.NumericGradient, "error", e.Err)
		},
		OnSample: func(ctx context.Context, e *domain.SampleEvent) {
			logger.Debug("Sample", "cells", e.Cells, "gaps", e.Gaps, "duration", e.Duration)
		},
		OnTrace: func(ctx context.Context, e *domain.TraceEvent) {
			logger.Debug("Trace", "reason", e.Reason, "status", e.Status, "points", e.Points)
		},
	}
}
