package tracer

import (
	"math"

	"github.com/aretw0/descent/pkg/domain"
)

// Field is a height function with a gradient.
type Field interface {
	Evaluate(x, y float64) float64
	Gradient(x, y float64) (float64, float64)
}

// Options tune the walk. Zero values take the package defaults.
type Options struct {
	LearningRate  float64 `json:"learning_rate,omitempty" yaml:"learning_rate" mapstructure:"learning_rate"`
	MaxSteps      int     `json:"max_steps,omitempty" yaml:"max_steps" mapstructure:"max_steps"`
	GradientFloor float64 `json:"gradient_floor,omitempty" yaml:"gradient_floor" mapstructure:"gradient_floor"`
}

// DefaultOptions returns the standard walk parameters.
func DefaultOptions() Options {
	return Options{
		LearningRate:  domain.LearningRate,
		MaxSteps:      domain.MaxSteps,
		GradientFloor: domain.GradientFloor,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.LearningRate > 0 {
		d.LearningRate = o.LearningRate
	}
	if o.MaxSteps > 0 {
		d.MaxSteps = o.MaxSteps
	}
	if o.GradientFloor > 0 {
		d.GradientFloor = o.GradientFloor
	}
	return d
}

// Trace walks f from start. Each step samples the field, records the point,
// then moves by sign·lr·∇f. The returned trace is complete even when it is too
// short to animate; check Trace.Err.
func Trace(f Field, start domain.Point, mode domain.Mode, opts Options) *domain.Trace {
	o := opts.withDefaults()
	t := &domain.Trace{
		Start:     start,
		Mode:      mode,
		Reason:    domain.ReasonStepBudgetExhausted,
		Waypoints: make([]domain.Waypoint, 0, 64),
	}

	sign := mode.Sign()
	x, y := start.X, start.Y
	for t.Steps = 0; t.Steps < o.MaxSteps; t.Steps++ {
		z := f.Evaluate(x, y)
		if !finite(x) || !finite(y) || !finite(z) {
			t.Reason = domain.ReasonNonFiniteState
			break
		}
		t.Waypoints = append(t.Waypoints, domain.Waypoint{X: x, Y: y, Z: z})

		gx, gy := f.Gradient(x, y)
		if !finite(gx) || !finite(gy) || (math.Abs(gx) < o.GradientFloor && math.Abs(gy) < o.GradientFloor) {
			t.Reason = domain.ReasonFlatGradient
			break
		}
		x += sign * o.LearningRate * gx
		y += sign * o.LearningRate * gy
	}
	return t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
