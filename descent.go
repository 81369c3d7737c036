package descent

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/aretw0/descent/internal/logging"
	"github.com/aretw0/descent/pkg/config"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/field"
	"github.com/aretw0/descent/pkg/surface"
	"github.com/aretw0/descent/pkg/tracer"
)

// Engine is the high-level entry point for the descent library.
// It holds no per-field state: every call works on the snapshot it is given,
// so one Engine can serve concurrent requests.
type Engine struct {
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	resolution  int
	tracerOpts  tracer.Options
	compileOpts field.CompileOptions
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithResolution sets the number of surface samples per axis.
func WithResolution(n int) Option {
	return func(e *Engine) {
		e.resolution = n
	}
}

// WithTracerOptions overrides the step size, step budget or gradient floor.
func WithTracerOptions(opts tracer.Options) Option {
	return func(e *Engine) {
		e.tracerOpts = opts
	}
}

// WithNumericGradient skips symbolic differentiation.
func WithNumericGradient(enabled bool) Option {
	return func(e *Engine) {
		e.compileOpts.NumericGradient = enabled
	}
}

// WithSettings applies the engine-related parts of user settings.
func WithSettings(s config.Settings) Option {
	return func(e *Engine) {
		e.resolution = s.Resolution
		e.tracerOpts = s.Tracer
		e.compileOpts.NumericGradient = s.NumericGradient
	}
}

// New initializes a new Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		resolution: domain.GridResolution,
		tracerOpts: tracer.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	return eng
}

// Compile sanitizes markup, translates it and compiles it into a snapshot.
// Every failure wraps domain.ErrParseFailure. A failed symbolic derivative is
// not an error: the snapshot then uses the numeric gradient and carries an advisory.
func (e *Engine) Compile(ctx context.Context, markup string) (*field.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean, err := config.SanitizeMarkup(markup)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
		e.emitCompile(ctx, markup, nil, err)
		return nil, err
	}

	snap, err := field.Compile(clean, e.compileOpts)
	if err != nil {
		e.logger.Warn("compile failed", "markup", clean, "error", err)
		e.emitCompile(ctx, clean, nil, err)
		return nil, err
	}
	if snap.DerivativeErr != nil {
		e.logger.Info("using numeric gradient", "expression", snap.Expression, "error", snap.DerivativeErr)
	}
	e.emitCompile(ctx, clean, snap, nil)
	return snap, nil
}

// Surface samples snap over ranges.
func (e *Engine) Surface(ctx context.Context, snap *field.Snapshot, ranges domain.Ranges) (*domain.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ranges.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	grid := surface.Sample(snap.Evaluator, ranges, surface.WithResolution(e.resolution))
	if e.hooks.OnSample != nil {
		gaps := 0
		for _, row := range grid.Z {
			for _, v := range row {
				if math.IsNaN(v) {
					gaps++
				}
			}
		}
		e.hooks.OnSample(ctx, &domain.SampleEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventSample},
			Cells:     len(grid.X) * len(grid.Y),
			Gaps:      gaps,
			Duration:  time.Since(start),
		})
	}
	return grid, nil
}

// Trace walks the gradient of snap from start. The trace is returned even when
// it is too short to animate, together with domain.ErrPathTooShort.
func (e *Engine) Trace(ctx context.Context, snap *field.Snapshot, start domain.Point, mode domain.Mode) (*domain.Trace, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !start.Finite() {
		return nil, fmt.Errorf("%w: (%g, %g)", domain.ErrInvalidStartPoint, start.X, start.Y)
	}

	began := time.Now()
	t := tracer.Trace(snap.Evaluator, start, mode, e.tracerOpts)
	t.Expression = snap.Expression
	t.CreatedAt = time.Now().UTC()

	e.logger.Debug("trace finished",
		"expression", snap.Expression,
		"mode", mode,
		"reason", t.Reason,
		"points", len(t.Waypoints),
	)
	if e.hooks.OnTrace != nil {
		e.hooks.OnTrace(ctx, &domain.TraceEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTrace},
			Reason:    t.Reason,
			Status:    t.Status(),
			Points:    len(t.Waypoints),
			Duration:  time.Since(began),
		})
	}
	return t, t.Err()
}

// Evaluate samples the value and gradient of snap at (x, y).
func (e *Engine) Evaluate(snap *field.Snapshot, x, y float64) domain.Sample {
	gx, gy := snap.Evaluator.Gradient(x, y)
	return domain.Sample{
		X:         x,
		Y:         y,
		Z:         snap.Evaluator.Evaluate(x, y),
		GradientX: gx,
		GradientY: gy,
	}
}

func (e *Engine) emitCompile(ctx context.Context, markup string, snap *field.Snapshot, err error) {
	if e.hooks.OnCompile == nil {
		return
	}
	ev := &domain.CompileEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCompile},
		Markup:    markup,
		Err:       err,
	}
	if snap != nil {
		ev.Expression = snap.Expression
		ev.NumericGradient = snap.NumericGradient()
	}
	e.hooks.OnCompile(ctx, ev)
}
