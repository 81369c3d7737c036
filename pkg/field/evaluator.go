package field

import (
	"math"

	"github.com/aretw0/descent/pkg/calc"
	"github.com/aretw0/descent/pkg/domain"
)

// Evaluable is a compiled expression of x and y.
type Evaluable interface {
	Evaluate(calc.Scope) (calc.Value, error)
}

// Evaluator samples a field and its gradient.
type Evaluator struct {
	f           Evaluable
	dx, dy      Evaluable
	singularity Singularity
	step        float64
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithPartials sets the symbolic partial derivatives. If either is nil the
// evaluator falls back to the numeric gradient.
func WithPartials(dx, dy Evaluable) Option {
	return func(e *Evaluator) {
		e.dx, e.dy = dx, dy
	}
}

// WithSingularity sets the policy for the removable singularity at the origin.
func WithSingularity(s Singularity) Option {
	return func(e *Evaluator) {
		e.singularity = s
	}
}

// WithDifferenceStep overrides the central-difference half-width.
func WithDifferenceStep(h float64) Option {
	return func(e *Evaluator) {
		if h > 0 {
			e.step = h
		}
	}
}

// New creates an Evaluator for f.
func New(f Evaluable, opts ...Option) *Evaluator {
	e := &Evaluator{f: f, step: domain.DifferenceStep}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NumericGradient reports whether Gradient uses central differences.
func (e *Evaluator) NumericGradient() bool {
	return e.dx == nil || e.dy == nil
}

// Singularity returns the singularity policy in effect.
func (e *Evaluator) Singularity() Singularity { return e.singularity }

// Evaluate returns f(x, y), or NaN when the sample is undefined.
func (e *Evaluator) Evaluate(x, y float64) float64 {
	if e.singularity.Kind != SingularityNone && math.Hypot(x, y) < domain.SingularRadius {
		switch e.singularity.Kind {
		case SingularityLimit:
			return e.singularity.Value
		case SingularityOffset:
			x, y = e.singularity.At.X, e.singularity.At.Y
		}
	}
	return sample(e.f, x, y)
}

// Gradient returns (∂f/∂x, ∂f/∂y) at (x, y). Components may be NaN.
func (e *Evaluator) Gradient(x, y float64) (float64, float64) {
	if e.NumericGradient() {
		h := e.step
		gx := (e.Evaluate(x+h, y) - e.Evaluate(x-h, y)) / (2 * h)
		gy := (e.Evaluate(x, y+h) - e.Evaluate(x, y-h)) / (2 * h)
		return gx, gy
	}
	return sample(e.dx, x, y), sample(e.dy, x, y)
}

func sample(f Evaluable, x, y float64) float64 {
	v, err := f.Evaluate(calc.Scope{domain.VarX: x, domain.VarY: y})
	if err != nil {
		return math.NaN()
	}
	return Decode(v)
}

// Decode converts an evaluation result to a finite real or NaN.
// Complex results are replaced by their magnitude.
func Decode(v calc.Value) float64 {
	var r float64
	switch v := v.(type) {
	case calc.Real:
		r = v.Float64()
	case calc.Complex:
		r = v.Abs()
	default:
		return math.NaN()
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return math.NaN()
	}
	return r
}
