package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/aretw0/descent/internal/logging"
	"github.com/aretw0/descent/pkg/animation"
	"github.com/aretw0/descent/pkg/config"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/field"
	"github.com/aretw0/descent/pkg/ports"
)

// Controller is the interactive glue between a display host and the engine.
//
// The compiled field is held behind an atomic pointer and replaced whole on
// every successful Update; readers never see a half-built snapshot. Only one
// animation runs at a time. Every failure path re-enables the controls.
type Controller struct {
	engine   ports.Engine
	renderer ports.Renderer
	sched    *animation.Scheduler
	logger   *slog.Logger

	snap atomic.Pointer[field.Snapshot]

	mu       sync.Mutex // serializes user actions and guards settings
	settings config.Settings
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithControllerLogger sets the logger for the Controller.
func WithControllerLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithSettings sets the initial settings. They are not validated here.
func WithSettings(s config.Settings) ControllerOption {
	return func(c *Controller) {
		c.settings = s
	}
}

// NewController creates a Controller. Frames are requested from req.
func NewController(engine ports.Engine, renderer ports.Renderer, req animation.FrameRequester, opts ...ControllerOption) *Controller {
	c := &Controller{
		engine:   engine,
		renderer: renderer,
		sched:    animation.NewScheduler(req),
		logger:   logging.NewNop(),
		settings: config.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current field, or nil before the first successful Update.
func (c *Controller) Snapshot() *field.Snapshot { return c.snap.Load() }

// Settings returns a copy of the current settings.
func (c *Controller) Settings() config.Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// Animating reports whether a path animation is running.
func (c *Controller) Animating() bool { return c.sched.Running() }

// Update compiles markup and redraws the surface. On failure the previous
// snapshot and surface stay in place and the error is shown.
func (c *Controller) Update(ctx context.Context, markup string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.engine.Compile(ctx, markup)
	if err != nil {
		c.renderer.ShowMessage(fmt.Sprintf("Error: %v", err))
		return err
	}
	grid, err := c.engine.Surface(ctx, snap, c.settings.Ranges)
	if err != nil {
		c.renderer.ShowMessage(fmt.Sprintf("Error evaluating function: %v", err))
		return err
	}

	c.stopLocked()
	c.snap.Store(snap)
	c.renderer.DrawSurface(grid, c.settings.Opacity)
	c.renderer.ShowMessage(snap.Advisory())
	c.logger.Info("field updated", "expression", snap.Expression, "numeric_gradient", snap.NumericGradient())
	return nil
}

// Animate traces from the start point given as text and replays the path.
// A running animation is cancelled first.
func (c *Controller) Animate(ctx context.Context, startX, startY string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	start, err := domain.ParsePoint(startX, startY)
	if err != nil {
		c.renderer.ShowMessage("Please select a valid start point by clicking on the surface.")
		return err
	}
	snap := c.snap.Load()
	if snap == nil {
		c.renderer.ShowMessage("Enter a function first.")
		return fmt.Errorf("%w: no field compiled", domain.ErrParseFailure)
	}

	c.renderer.ShowMessage("")
	c.stopLocked()
	c.renderer.SetControlsEnabled(false)

	trace, err := c.engine.Trace(ctx, snap, start, c.settings.Mode())
	if err != nil {
		if errors.Is(err, domain.ErrPathTooShort) {
			c.renderer.ShowMessage("Cannot calculate path from this start point (gradient may be zero).")
		} else {
			c.renderer.ShowMessage(fmt.Sprintf("Error: %v", err))
		}
		c.stopLocked()
		return err
	}

	path := trace.Waypoints
	c.renderer.DrawPath(path)
	err = c.sched.Start(animation.Playback{
		Frames:  len(path),
		FPS:     c.settings.FPS,
		OnFrame: func(i int) { c.renderer.MoveMarker(path[i]) },
		OnDone:  func() { c.renderer.SetControlsEnabled(true) },
	})
	if err != nil {
		c.renderer.ShowMessage(fmt.Sprintf("Error: %v", err))
		c.stopLocked()
		return err
	}
	c.logger.Debug("animation started", "points", len(path), "reason", trace.Reason, "fps", c.settings.FPS)
	return nil
}

// Clear cancels any animation and removes the path.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// SetOpacity restyles the surface.
func (c *Controller) SetOpacity(v float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: opacity %g outside [0, 1]", domain.ErrInvalidConfig, v)
	}
	c.settings.Opacity = v
	c.renderer.SetOpacity(v)
	return nil
}

// SetFPS changes the playback rate used by the next animation.
func (c *Controller) SetFPS(fps int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := config.ValidateFPS(fps); err != nil {
		return err
	}
	c.settings.FPS = fps
	return nil
}

// SetAscend selects ascent (true) or descent for the next animation.
func (c *Controller) SetAscend(ascend bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.settings.Ascend = ascend
}

// SetRanges changes the plot bounds and redraws the current surface, if any.
func (c *Controller) SetRanges(ctx context.Context, r domain.Ranges) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := r.Validate(); err != nil {
		return err
	}
	c.settings.Ranges = r

	snap := c.snap.Load()
	if snap == nil {
		return nil
	}
	grid, err := c.engine.Surface(ctx, snap, r)
	if err != nil {
		return err
	}
	c.stopLocked()
	c.renderer.DrawSurface(grid, c.settings.Opacity)
	return nil
}

// PickStart formats a clicked surface point as start-point text.
func PickStart(x, y float64) (string, string) {
	return fmt.Sprintf("%.4f", x), fmt.Sprintf("%.4f", y)
}

// stopLocked cancels the animation, clears the path and re-enables controls.
func (c *Controller) stopLocked() {
	c.sched.Cancel()
	c.renderer.ClearPath()
	c.renderer.SetControlsEnabled(true)
}
