package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Point is a position in the plane of the field.
type Point struct {
	X float64 `json:"x" yaml:"x" mapstructure:"x"`
	Y float64 `json:"y" yaml:"y" mapstructure:"y"`
}

// Finite reports whether both coordinates are finite.
func (p Point) Finite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// ParsePoint reads a start point from user input.
func ParsePoint(x, y string) (Point, error) {
	px, errX := strconv.ParseFloat(strings.TrimSpace(x), 64)
	py, errY := strconv.ParseFloat(strings.TrimSpace(y), 64)
	p := Point{X: px, Y: py}
	if errX != nil || errY != nil || !p.Finite() {
		return Point{}, fmt.Errorf("%w: (%q, %q)", ErrInvalidStartPoint, x, y)
	}
	return p, nil
}

// Waypoint is one recorded sample along a traced path.
type Waypoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Point drops the height.
func (w Waypoint) Point() Point { return Point{X: w.X, Y: w.Y} }

// Ranges holds the axis bounds of a plot. Z bounds are passed through to the renderer.
type Ranges struct {
	XMin float64 `json:"x_min" yaml:"x_min" mapstructure:"x_min"`
	XMax float64 `json:"x_max" yaml:"x_max" mapstructure:"x_max"`
	YMin float64 `json:"y_min" yaml:"y_min" mapstructure:"y_min"`
	YMax float64 `json:"y_max" yaml:"y_max" mapstructure:"y_max"`
	ZMin float64 `json:"z_min" yaml:"z_min" mapstructure:"z_min"`
	ZMax float64 `json:"z_max" yaml:"z_max" mapstructure:"z_max"`
}

// DefaultRanges returns the bounds used when none are configured.
func DefaultRanges() Ranges {
	return Ranges{XMin: -3, XMax: 3, YMin: -3, YMax: 3, ZMin: -2, ZMax: 10}
}

// Validate checks that every axis has finite bounds with min < max.
func (r Ranges) Validate() error {
	axes := []struct {
		name     string
		min, max float64
	}{
		{"x", r.XMin, r.XMax},
		{"y", r.YMin, r.YMax},
		{"z", r.ZMin, r.ZMax},
	}
	for _, a := range axes {
		if !isFinite(a.min) || !isFinite(a.max) {
			return fmt.Errorf("%w: %s range must be finite", ErrInvalidConfig, a.name)
		}
		if a.min >= a.max {
			return fmt.Errorf("%w: %s range [%g, %g] is empty", ErrInvalidConfig, a.name, a.min, a.max)
		}
	}
	return nil
}

// Grid is a height field sampled over Ranges.
// Z is row-major: Z[i][j] is the height at (X[j], Y[i]). NaN cells are gaps.
type Grid struct {
	X      []float64   `json:"x"`
	Y      []float64   `json:"y"`
	Z      [][]float64 `json:"-"`
	Ranges Ranges      `json:"ranges"`
}

type gridJSON struct {
	X      []float64    `json:"x"`
	Y      []float64    `json:"y"`
	Z      [][]*float64 `json:"z"`
	Ranges Ranges       `json:"ranges"`
}

// MarshalJSON encodes NaN cells as null, which JSON cannot otherwise represent.
func (g Grid) MarshalJSON() ([]byte, error) {
	out := gridJSON{X: g.X, Y: g.Y, Ranges: g.Ranges, Z: make([][]*float64, len(g.Z))}
	for i, row := range g.Z {
		cells := make([]*float64, len(row))
		for j := range row {
			if isFinite(row[j]) {
				v := row[j]
				cells[j] = &v
			}
		}
		out.Z[i] = cells
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores null cells as NaN.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var in gridJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	g.X, g.Y, g.Ranges = in.X, in.Y, in.Ranges
	g.Z = make([][]float64, len(in.Z))
	for i, row := range in.Z {
		cells := make([]float64, len(row))
		for j, c := range row {
			if c == nil {
				cells[j] = math.NaN()
			} else {
				cells[j] = *c
			}
		}
		g.Z[i] = cells
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sample is the value and gradient of a field at one point.
type Sample struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	GradientX float64 `json:"gradient_x"`
	GradientY float64 `json:"gradient_y"`
}

// MarshalJSON encodes non-finite components as null.
func (s Sample) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		X         float64  `json:"x"`
		Y         float64  `json:"y"`
		Z         *float64 `json:"z"`
		GradientX *float64 `json:"gradient_x"`
		GradientY *float64 `json:"gradient_y"`
	}{s.X, s.Y, finiteOrNil(s.Z), finiteOrNil(s.GradientX), finiteOrNil(s.GradientY)})
}

func finiteOrNil(v float64) *float64 {
	if !isFinite(v) {
		return nil
	}
	return &v
}
