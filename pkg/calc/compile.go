package calc

import "fmt"

// Scope binds variable names to values for one evaluation.
type Scope map[string]float64

type evalFunc func(Scope) (complex128, error)

// Program is a compiled expression. It is immutable and safe for concurrent use.
type Program struct {
	root Node
	eval evalFunc
}

// Compile turns a tree into a Program. Unknown functions and wrong arities are
// reported here; unbound variables only when evaluating.
func Compile(n Node) (*Program, error) {
	fn, err := compile(n)
	if err != nil {
		return nil, err
	}
	return &Program{root: n, eval: fn}, nil
}

// Evaluate runs the program against scope.
func (p *Program) Evaluate(scope Scope) (Value, error) {
	z, err := p.eval(scope)
	if err != nil {
		return nil, err
	}
	return toValue(z), nil
}

// Node returns the tree the program was compiled from.
func (p *Program) Node() Node { return p.root }

// String returns the expression in flat infix form.
func (p *Program) String() string { return p.root.String() }

func compile(n Node) (evalFunc, error) {
	switch n := n.(type) {
	case *Number:
		v := complex(n.Value, 0)
		return func(Scope) (complex128, error) { return v, nil }, nil

	case *Symbol:
		if c, ok := constants[n.Name]; ok {
			v := complex(c, 0)
			return func(Scope) (complex128, error) { return v, nil }, nil
		}
		name := n.Name
		return func(s Scope) (complex128, error) {
			v, ok := s[name]
			if !ok {
				return 0, fmt.Errorf("%w: %s", ErrUndefinedSymbol, name)
			}
			return complex(v, 0), nil
		}, nil

	case *Unary:
		x, err := compile(n.X)
		if err != nil {
			return nil, err
		}
		if n.Op == '+' {
			return x, nil
		}
		return func(s Scope) (complex128, error) {
			v, err := x(s)
			if err != nil {
				return 0, err
			}
			if imag(v) == 0 {
				return complex(-real(v), 0), nil
			}
			return -v, nil
		}, nil

	case *Binary:
		l, err := compile(n.L)
		if err != nil {
			return nil, err
		}
		r, err := compile(n.R)
		if err != nil {
			return nil, err
		}
		op := n.Op
		return func(s Scope) (complex128, error) {
			a, err := l(s)
			if err != nil {
				return 0, err
			}
			b, err := r(s)
			if err != nil {
				return 0, err
			}
			return arith(op, a, b), nil
		}, nil

	case *Call:
		f, ok := functions[n.Name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, n.Name)
		}
		if len(n.Args) != 1 {
			return nil, fmt.Errorf("%w: %s expects 1, got %d", ErrArity, n.Name, len(n.Args))
		}
		arg, err := compile(n.Args[0])
		if err != nil {
			return nil, err
		}
		return func(s Scope) (complex128, error) {
			v, err := arg(s)
			if err != nil {
				return 0, err
			}
			return f.apply(v), nil
		}, nil
	}
	return nil, fmt.Errorf("calc: unsupported node %T", n)
}
