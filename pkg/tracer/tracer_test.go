package tracer

import (
	"math"
	"testing"

	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/field"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bowl struct{}

func (bowl) Evaluate(x, y float64) float64            { return x*x + y*y }
func (bowl) Gradient(x, y float64) (float64, float64) { return 2 * x, 2 * y }

type saddle struct{}

func (saddle) Evaluate(x, y float64) float64            { return x*x - y*y }
func (saddle) Gradient(x, y float64) (float64, float64) { return 2 * x, -2 * y }

type funcField struct {
	eval func(x, y float64) float64
	grad func(x, y float64) (float64, float64)
}

func (f funcField) Evaluate(x, y float64) float64            { return f.eval(x, y) }
func (f funcField) Gradient(x, y float64) (float64, float64) { return f.grad(x, y) }

func TestTrace_DescendsBowl(t *testing.T) {
	tr := Trace(bowl{}, domain.Point{X: 1, Y: 1}, domain.ModeDescend, Options{})

	require.NoError(t, tr.Err())
	assert.Equal(t, domain.StatusSuccess, tr.Status())
	assert.Equal(t, domain.ReasonFlatGradient, tr.Reason)
	assert.Less(t, tr.Steps, domain.MaxSteps)
	assert.Equal(t, domain.Waypoint{X: 1, Y: 1, Z: 2}, tr.Waypoints[0])

	last := tr.Last()
	assert.InDelta(t, 0, last.X, 1e-4)
	assert.InDelta(t, 0, last.Y, 1e-4)
	assert.InDelta(t, 0, last.Z, 1e-8)

	for i := 1; i < len(tr.Waypoints); i++ {
		prev, cur := tr.Waypoints[i-1], tr.Waypoints[i]
		assert.Less(t, cur.Z, prev.Z, "z must decrease at step %d", i)

		gx, gy := bowl{}.Gradient(prev.X, prev.Y)
		moved := math.Hypot(cur.X-prev.X, cur.Y-prev.Y)
		assert.LessOrEqual(t, moved, domain.LearningRate*math.Hypot(gx, gy)+1e-12)
	}
}

func TestTrace_AscendsSaddle(t *testing.T) {
	tr := Trace(saddle{}, domain.Point{X: 0, Y: 0.5}, domain.ModeAscend, Options{MaxSteps: 10})

	require.NoError(t, tr.Err())
	assert.Equal(t, domain.ReasonStepBudgetExhausted, tr.Reason)
	assert.Equal(t, 10, tr.Steps)
	assert.Len(t, tr.Waypoints, 10)
	// ascent along y on -y^2 moves toward the ridge at y=0
	assert.Less(t, math.Abs(tr.Last().Y), 0.5)
}

func TestTrace_StartAtCriticalPoint(t *testing.T) {
	tr := Trace(bowl{}, domain.Point{}, domain.ModeDescend, Options{})

	assert.Equal(t, domain.ReasonFlatGradient, tr.Reason)
	assert.Len(t, tr.Waypoints, 1)
	assert.Equal(t, domain.StatusInsufficientPath, tr.Status())
	assert.ErrorIs(t, tr.Err(), domain.ErrPathTooShort)
}

func TestTrace_NonFiniteStart(t *testing.T) {
	f := funcField{
		eval: func(x, y float64) float64 { return math.NaN() },
		grad: func(x, y float64) (float64, float64) { return 1, 1 },
	}
	tr := Trace(f, domain.Point{X: 1, Y: 1}, domain.ModeDescend, Options{})

	assert.Equal(t, domain.ReasonNonFiniteState, tr.Reason)
	assert.Empty(t, tr.Waypoints)
	assert.ErrorIs(t, tr.Err(), domain.ErrPathTooShort)
}

func TestTrace_DropsPointThatLeavesDomain(t *testing.T) {
	// log(x) walked downhill runs into x <= 0
	f := funcField{
		eval: func(x, y float64) float64 {
			if x <= 0 {
				return math.NaN()
			}
			return math.Log(x)
		},
		grad: func(x, y float64) (float64, float64) { return 1 / x, 0 },
	}
	tr := Trace(f, domain.Point{X: 0.5, Y: 0}, domain.ModeDescend, Options{LearningRate: 1})

	assert.Equal(t, domain.ReasonNonFiniteState, tr.Reason)
	for _, w := range tr.Waypoints {
		assert.Greater(t, w.X, 0.0)
	}
}

func TestTrace_NonFiniteGradientKeepsPoint(t *testing.T) {
	f := funcField{
		eval: func(x, y float64) float64 { return 0 },
		grad: func(x, y float64) (float64, float64) { return math.Inf(1), 0 },
	}
	tr := Trace(f, domain.Point{X: 1, Y: 2}, domain.ModeDescend, Options{})

	assert.Equal(t, domain.ReasonFlatGradient, tr.Reason)
	require.Len(t, tr.Waypoints, 1)
	assert.Equal(t, domain.Point{X: 1, Y: 2}, tr.Waypoints[0].Point())
}

func TestTrace_CompiledField(t *testing.T) {
	snap, err := field.Compile("x^2+y^2", field.CompileOptions{})
	require.NoError(t, err)

	tr := Trace(snap.Evaluator, domain.Point{X: 1, Y: 1}, domain.ModeDescend, Options{})
	require.NoError(t, tr.Err())
	assert.Equal(t, domain.ReasonFlatGradient, tr.Reason)
	assert.InDelta(t, 0, tr.Last().Z, 1e-8)
}

func TestOptions_Defaults(t *testing.T) {
	o := Options{MaxSteps: 3}.withDefaults()
	assert.Equal(t, 3, o.MaxSteps)
	assert.Equal(t, domain.LearningRate, o.LearningRate)
	assert.Equal(t, domain.GradientFloor, o.GradientFloor)
}
