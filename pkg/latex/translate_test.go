package latex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{"Fraction", `\frac{a}{b}`, "(a)/(b)"},
		{"Root", `\sqrt{x^2+y^2}`, "sqrt((x^2+y^2))"},
		{"Grouped Exponent", "x^{2}+y^{2}", "x^(2)+y^(2)"},
		{"Left Right Dropped", `\left(x+1\right)`, "(x+1)"},
		{"Function Call", `\sin\left(x\right)`, "sin(x)"},
		{"Cdot", `2\cdot x`, "2*x"},
		{"Times", `a\times b`, "a*b"},
		{"Ln Maps To Log", `\ln\left(x\right)`, "log(x)"},
		{"Pi", `\pi r^2`, "pir^2"},
		{"Hyperbolic", `\tanh\left(y\right)`, "tanh(y)"},
		{"Whitespace Dropped", "x + y", "x+y"},
		{"Spacing Commands Dropped", `x\,y\;z\ w`, "xyzw"},
		{"Escaped Braces", `\{x\}`, "(x)"},
		{"Nested Fraction", `\frac{\frac{1}{x}}{y}`, "((1)/(x))/(y)"},
		{"Fraction With Spaces", `\frac {a} {b}`, "(a)/(b)"},
		{"Fraction In Root", `\sqrt{\frac{x}{2}}`, "sqrt(((x)/(2)))"},
		{"Nested Groups", "{x+{y}}", "(x+(y))"},
		{"Unknown Command Passes Through", `\foo{x}`, "foo(x)"},
		{"Fraction Without Groups", `\frac 12`, "frac12"},
		{"Fraction Missing Denominator", `\frac{a}`, "(a)/()"},
		{"Root Without Group", `\sqrt x`, "sqrtx"},
		{"Trailing Escape", `x\`, `x\`},
		{"Empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Translate(tt.markup))
		})
	}
}

func TestIsCommand(t *testing.T) {
	for _, w := range []string{"frac", "sqrt", "left", "right", "sin", "ln", "cdot", "abs"} {
		assert.True(t, IsCommand(w), w)
	}
	assert.False(t, IsCommand("foo"))
	assert.False(t, IsCommand(""))
}
