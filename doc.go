/*
Package descent visualizes gradient descent on two-variable fields written in typeset notation.

A field such as \frac{\sin\left(\sqrt{x^2+y^2}\right)}{\sqrt{x^2+y^2}} is translated into a flat
infix expression, compiled together with its symbolic partial derivatives, sampled on a grid
for a 3-D surface, and walked downhill (or uphill) from a start point with a fixed step size.
The resulting path can be replayed at a fixed frame rate by the animation scheduler.

# Architecture

The root package exposes a stateless Engine used by every host: the CLI, the HTTP API and the
MCP server. The pieces it drives live in pkg/:

  - latex: typeset markup to flat expression.
  - lexer: tokenizer and implicit-multiplication inserter.
  - calc: parser, compiler and symbolic differentiation.
  - field: evaluator with the numeric-gradient fallback and immutable snapshots.
  - surface: grid sampler.
  - tracer: fixed-step gradient walker.
  - animation: frame-rate independent replay.
  - session: interactive controller for display hosts.

# Usage

	eng := descent.New()

	snap, err := eng.Compile(ctx, `x^2+y^2`)
	if err != nil {
		log.Fatal(err) // wraps domain.ErrParseFailure
	}

	grid, _ := eng.Surface(ctx, snap, domain.DefaultRanges())
	trace, err := eng.Trace(ctx, snap, domain.Point{X: 1, Y: 1}, domain.ModeDescend)
	if errors.Is(err, domain.ErrPathTooShort) {
		// nothing to animate
	}
*/
package descent
