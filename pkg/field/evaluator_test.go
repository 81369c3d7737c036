package field

import (
	"errors"
	"math"
	"testing"

	"github.com/aretw0/descent/pkg/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEvaluable struct {
	value calc.Value
	err   error
	calls int
}

func (s *stubEvaluable) Evaluate(calc.Scope) (calc.Value, error) {
	s.calls++
	return s.value, s.err
}

func program(t *testing.T, expr string) *calc.Program {
	t.Helper()
	n, err := calc.Parse(expr)
	require.NoError(t, err)
	p, err := calc.Compile(n)
	require.NoError(t, err)
	return p
}

func TestDecode(t *testing.T) {
	assert.Equal(t, 2.5, Decode(calc.Real(2.5)))
	assert.InDelta(t, 5, Decode(calc.Complex(complex(3, 4))), 1e-12)
	assert.True(t, math.IsNaN(Decode(calc.Real(math.Inf(1)))))
	assert.True(t, math.IsNaN(Decode(calc.Real(math.NaN()))))
	assert.True(t, math.IsNaN(Decode(calc.Complex(complex(math.Inf(1), 1)))))
	assert.True(t, math.IsNaN(Decode(nil)))
}

func TestEvaluator_ErrorBecomesNaN(t *testing.T) {
	stub := &stubEvaluable{err: errors.New("boom")}
	e := New(stub)
	assert.True(t, math.IsNaN(e.Evaluate(1, 1)))
	assert.Equal(t, 1, stub.calls)
}

func TestEvaluator_ComplexUsesMagnitude(t *testing.T) {
	e := New(program(t, "sqrt(x)"))
	assert.InDelta(t, 2, e.Evaluate(-4, 0), 1e-12)
}

func TestEvaluator_SymbolicGradient(t *testing.T) {
	e := New(program(t, "x^2+y^2"), WithPartials(program(t, "2*x"), program(t, "2*y")))
	require.False(t, e.NumericGradient())

	gx, gy := e.Gradient(1, 2)
	assert.Equal(t, 2.0, gx)
	assert.Equal(t, 4.0, gy)
}

func TestEvaluator_NumericFallback(t *testing.T) {
	e := New(program(t, "x^2+3*x*y"))
	require.True(t, e.NumericGradient())

	gx, gy := e.Gradient(1, 2)
	assert.InDelta(t, 8, gx, 1e-6)
	assert.InDelta(t, 3, gy, 1e-6)
}

func TestEvaluator_PartialMissingFallsBack(t *testing.T) {
	e := New(program(t, "x*y"), WithPartials(program(t, "y"), nil))
	assert.True(t, e.NumericGradient())
}

func TestEvaluator_NonFiniteGradient(t *testing.T) {
	e := New(program(t, "x"), WithPartials(program(t, "1/x"), program(t, "0")))
	gx, gy := e.Gradient(0, 0)
	assert.True(t, math.IsNaN(gx))
	assert.Equal(t, 0.0, gy)
}
