package calc

import (
	"math"
	"math/cmplx"
)

// Value is the result of an evaluation: either Real or Complex.
type Value interface {
	isValue()
}

// Real is a value on the real line.
type Real float64

// Complex is a value with a non-zero imaginary part.
type Complex complex128

func (Real) isValue()    {}
func (Complex) isValue() {}

// Float64 returns the real value.
func (r Real) Float64() float64 { return float64(r) }

// Abs returns the magnitude of the complex value.
func (c Complex) Abs() float64 { return cmplx.Abs(complex128(c)) }

func toValue(z complex128) Value {
	if imag(z) == 0 {
		return Real(real(z))
	}
	return Complex(z)
}

// function is a unary function with a real fast path and a complex continuation.
type function struct {
	re func(float64) float64
	c  func(complex128) complex128
}

var functions = map[string]function{
	"sin":  {math.Sin, cmplx.Sin},
	"cos":  {math.Cos, cmplx.Cos},
	"tan":  {math.Tan, cmplx.Tan},
	"exp":  {math.Exp, cmplx.Exp},
	"log":  {math.Log, cmplx.Log},
	"sqrt": {math.Sqrt, cmplx.Sqrt},
	"sinh": {math.Sinh, cmplx.Sinh},
	"cosh": {math.Cosh, cmplx.Cosh},
	"tanh": {math.Tanh, cmplx.Tanh},
	"asin": {math.Asin, cmplx.Asin},
	"acos": {math.Acos, cmplx.Acos},
	"atan": {math.Atan, cmplx.Atan},
	"abs":  {math.Abs, func(z complex128) complex128 { return complex(cmplx.Abs(z), 0) }},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
}

func isConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// IsFunction reports whether name is a function Compile understands.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// apply stays real while the real result is defined and continues into the complex
// plane only when the real function leaves its domain.
func (f function) apply(z complex128) complex128 {
	if imag(z) == 0 {
		x := real(z)
		if r := f.re(x); !math.IsNaN(r) || math.IsNaN(x) {
			return complex(r, 0)
		}
	}
	return f.c(z)
}

func arith(op byte, a, b complex128) complex128 {
	if imag(a) == 0 && imag(b) == 0 {
		x, y := real(a), real(b)
		switch op {
		case '+':
			return complex(x+y, 0)
		case '-':
			return complex(x-y, 0)
		case '*':
			return complex(x*y, 0)
		case '/':
			return complex(x/y, 0)
		case '^':
			if r := math.Pow(x, y); !math.IsNaN(r) || math.IsNaN(x) || math.IsNaN(y) {
				return complex(r, 0)
			}
		}
	}
	switch op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	}
	return cmplx.Pow(a, b)
}
