package surface

import (
	"github.com/aretw0/descent/pkg/domain"
)

// Field is anything that yields a height for a point of the plane.
type Field interface {
	Evaluate(x, y float64) float64
}

// Option configures Sample.
type Option func(*config)

type config struct {
	resolution int
}

// WithResolution sets the number of samples per axis. Values below 2 are ignored.
func WithResolution(n int) Option {
	return func(c *config) {
		if n >= 2 {
			c.resolution = n
		}
	}
}

// Sample evaluates f on an inclusive, evenly spaced grid over r.
// Undefined samples stay NaN so the renderer can show them as gaps.
func Sample(f Field, r domain.Ranges, opts ...Option) *domain.Grid {
	cfg := config{resolution: domain.GridResolution}
	for _, opt := range opts {
		opt(&cfg)
	}

	xs := Linspace(r.XMin, r.XMax, cfg.resolution)
	ys := Linspace(r.YMin, r.YMax, cfg.resolution)
	z := make([][]float64, len(ys))
	for i, y := range ys {
		row := make([]float64, len(xs))
		for j, x := range xs {
			row[j] = f.Evaluate(x, y)
		}
		z[i] = row
	}
	return &domain.Grid{X: xs, Y: ys, Z: z, Ranges: r}
}

// Linspace returns n evenly spaced values from lo to hi, both included.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
