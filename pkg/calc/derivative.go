package calc

import "fmt"

// Derivative returns the symbolic derivative of n with respect to variable v.
// Only the constant identities needed to keep trees small are folded; the result
// is not simplified.
func Derivative(n Node, v string) (Node, error) {
	switch n := n.(type) {
	case *Number:
		return num(0), nil

	case *Symbol:
		if n.Name == v {
			return num(1), nil
		}
		return num(0), nil

	case *Unary:
		d, err := Derivative(n.X, v)
		if err != nil {
			return nil, err
		}
		if n.Op == '+' {
			return d, nil
		}
		return neg(d), nil

	case *Binary:
		return derivBinary(n, v)

	case *Call:
		return derivCall(n, v)
	}
	return nil, fmt.Errorf("%w: %T", ErrNoDerivative, n)
}

func derivBinary(n *Binary, v string) (Node, error) {
	du, err := Derivative(n.L, v)
	if err != nil {
		return nil, err
	}
	dw, err := Derivative(n.R, v)
	if err != nil {
		return nil, err
	}
	u, w := n.L, n.R

	switch n.Op {
	case '+':
		return add(du, dw), nil
	case '-':
		return sub(du, dw), nil
	case '*':
		return add(mul(du, w), mul(u, dw)), nil
	case '/':
		return div(sub(mul(du, w), mul(u, dw)), pow(w, num(2))), nil
	case '^':
		switch {
		case !dependsOn(w, v):
			// w * u^(w-1) * u'
			return mul(mul(w, pow(u, sub(w, num(1)))), du), nil
		case !dependsOn(u, v):
			// u^w * log(u) * w'
			return mul(mul(n, call("log", u)), dw), nil
		default:
			// u^w * (w' log(u) + w u'/u)
			return mul(n, add(mul(dw, call("log", u)), div(mul(w, du), u))), nil
		}
	}
	return nil, fmt.Errorf("%w: operator %q", ErrNoDerivative, n.Op)
}

func derivCall(n *Call, v string) (Node, error) {
	if len(n.Args) != 1 {
		return nil, fmt.Errorf("%w: %s with %d arguments", ErrNoDerivative, n.Name, len(n.Args))
	}
	u := n.Args[0]
	du, err := Derivative(u, v)
	if err != nil {
		return nil, err
	}

	switch n.Name {
	case "sin":
		return mul(call("cos", u), du), nil
	case "cos":
		return mul(neg(call("sin", u)), du), nil
	case "tan":
		return div(du, pow(call("cos", u), num(2))), nil
	case "exp":
		return mul(n, du), nil
	case "log":
		return div(du, u), nil
	case "sqrt":
		return div(du, mul(num(2), n)), nil
	case "sinh":
		return mul(call("cosh", u), du), nil
	case "cosh":
		return mul(call("sinh", u), du), nil
	case "tanh":
		return mul(sub(num(1), pow(n, num(2))), du), nil
	case "asin":
		return div(du, call("sqrt", sub(num(1), pow(u, num(2))))), nil
	case "acos":
		return neg(div(du, call("sqrt", sub(num(1), pow(u, num(2)))))), nil
	case "atan":
		return div(du, add(num(1), pow(u, num(2)))), nil
	case "abs":
		return mul(div(u, n), du), nil
	}
	return nil, fmt.Errorf("%w: function %s", ErrNoDerivative, n.Name)
}

func num(v float64) Node { return &Number{Value: v} }

func call(name string, arg Node) Node { return &Call{Name: name, Args: []Node{arg}} }

func isNum(n Node, v float64) bool {
	c, ok := n.(*Number)
	return ok && c.Value == v
}

func bothNum(a, b Node) (float64, float64, bool) {
	x, ok1 := a.(*Number)
	y, ok2 := b.(*Number)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return x.Value, y.Value, true
}

func add(a, b Node) Node {
	switch {
	case isNum(a, 0):
		return b
	case isNum(b, 0):
		return a
	}
	if x, y, ok := bothNum(a, b); ok {
		return num(x + y)
	}
	return &Binary{Op: '+', L: a, R: b}
}

func sub(a, b Node) Node {
	switch {
	case isNum(b, 0):
		return a
	case isNum(a, 0):
		return neg(b)
	}
	if x, y, ok := bothNum(a, b); ok {
		return num(x - y)
	}
	return &Binary{Op: '-', L: a, R: b}
}

func mul(a, b Node) Node {
	switch {
	case isNum(a, 0), isNum(b, 0):
		return num(0)
	case isNum(a, 1):
		return b
	case isNum(b, 1):
		return a
	}
	if x, y, ok := bothNum(a, b); ok {
		return num(x * y)
	}
	return &Binary{Op: '*', L: a, R: b}
}

func div(a, b Node) Node {
	switch {
	case isNum(a, 0):
		return num(0)
	case isNum(b, 1):
		return a
	}
	return &Binary{Op: '/', L: a, R: b}
}

func pow(a, b Node) Node {
	switch {
	case isNum(b, 0):
		return num(1)
	case isNum(b, 1):
		return a
	}
	return &Binary{Op: '^', L: a, R: b}
}

func neg(a Node) Node {
	switch a := a.(type) {
	case *Number:
		return num(-a.Value)
	case *Unary:
		if a.Op == '-' {
			return a.X
		}
	}
	return &Unary{Op: '-', X: a}
}
