package field

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/descent/pkg/calc"
	"github.com/aretw0/descent/pkg/domain"
	"github.com/aretw0/descent/pkg/latex"
	"github.com/aretw0/descent/pkg/lexer"
)

// Snapshot is an immutable compiled field. Consumers hold a reference to the
// snapshot they started with; recompilation produces a new one.
type Snapshot struct {
	Markup     string
	Expression string
	Evaluator  *Evaluator
	// DerivativeErr is set when symbolic differentiation failed and the
	// evaluator uses the numeric gradient.
	DerivativeErr error
	GradientX     string
	GradientY     string
	CompiledAt    time.Time
}

// NumericGradient reports whether the snapshot runs in the degraded gradient mode.
func (s *Snapshot) NumericGradient() bool { return s.Evaluator.NumericGradient() }

// Advisory returns user-facing text for the degraded mode, or "".
func (s *Snapshot) Advisory() string {
	if !s.NumericGradient() {
		return ""
	}
	if s.DerivativeErr != nil {
		return fmt.Sprintf("Symbolic derivative unavailable (%v); using numeric gradient.", s.DerivativeErr)
	}
	return "Using numeric gradient."
}

// CompileOptions tune Compile.
type CompileOptions struct {
	// NumericGradient skips symbolic differentiation.
	NumericGradient bool
}

// Translate runs the typeset-to-flat half of the pipeline.
func Translate(markup string) string {
	return lexer.Normalize(latex.Translate(markup))
}

// Compile translates markup and compiles it into a Snapshot.
// Failures wrap domain.ErrParseFailure. A failed derivative is not an error.
func Compile(markup string, opts CompileOptions) (*Snapshot, error) {
	expr := Translate(markup)
	node, err := calc.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
	}
	if extra := unknownSymbols(node); len(extra) > 0 {
		return nil, fmt.Errorf("%w: %w: %s", domain.ErrParseFailure, calc.ErrUndefinedSymbol, strings.Join(extra, ", "))
	}
	f, err := calc.Compile(node)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
	}

	snap := &Snapshot{
		Markup:     markup,
		Expression: expr,
		CompiledAt: time.Now(),
	}
	evalOpts := []Option{WithSingularity(DetectSingularity(node))}

	if opts.NumericGradient {
		snap.Evaluator = New(f, evalOpts...)
		return snap, nil
	}

	dx, dy, err := partials(node)
	if err != nil {
		snap.DerivativeErr = fmt.Errorf("%w: %w", domain.ErrDerivativeUnavailable, err)
	} else {
		snap.GradientX, snap.GradientY = dx.String(), dy.String()
		evalOpts = append(evalOpts, WithPartials(dx, dy))
	}
	snap.Evaluator = New(f, evalOpts...)
	return snap, nil
}

func partials(node calc.Node) (*calc.Program, *calc.Program, error) {
	var progs [2]*calc.Program
	for i, v := range []string{domain.VarX, domain.VarY} {
		d, err := calc.Derivative(node, v)
		if err != nil {
			return nil, nil, err
		}
		p, err := calc.Compile(d)
		if err != nil {
			return nil, nil, err
		}
		progs[i] = p
	}
	return progs[0], progs[1], nil
}

func unknownSymbols(n calc.Node) []string {
	var extra []string
	for _, s := range calc.FreeSymbols(n) {
		if s != domain.VarX && s != domain.VarY {
			extra = append(extra, s)
		}
	}
	return extra
}
