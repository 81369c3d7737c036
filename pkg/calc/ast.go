package calc

import (
	"sort"
	"strconv"
	"strings"
)

// Node is a parsed expression tree.
type Node interface {
	String() string
	prec() int
}

// Number is a numeric literal.
type Number struct{ Value float64 }

// Symbol is a variable or a named constant.
type Symbol struct{ Name string }

// Unary is a sign applied to an operand. Op is '-' or '+'.
type Unary struct {
	Op byte
	X  Node
}

// Binary is an infix operation. Op is one of + - * / ^.
type Binary struct {
	Op   byte
	L, R Node
}

// Call is a function application.
type Call struct {
	Name string
	Args []Node
}

const (
	precSum = iota + 1
	precProduct
	precUnary
	precPower
	precAtom
)

func (n *Number) prec() int {
	if n.Value < 0 {
		return precUnary
	}
	return precAtom
}
func (*Symbol) prec() int { return precAtom }
func (*Unary) prec() int  { return precUnary }
func (*Call) prec() int   { return precAtom }
func (n *Binary) prec() int {
	switch n.Op {
	case '+', '-':
		return precSum
	case '*', '/':
		return precProduct
	}
	return precPower
}

func (n *Number) String() string { return strconv.FormatFloat(n.Value, 'g', -1, 64) }
func (n *Symbol) String() string { return n.Name }

func (n *Unary) String() string {
	return string(n.Op) + wrap(n.X, n.X.prec() < precUnary)
}

func (n *Binary) String() string {
	p := n.prec()
	var left, right bool
	if n.Op == '^' {
		left = n.L.prec() <= p
		right = n.R.prec() < precUnary
	} else {
		left = n.L.prec() < p
		right = n.R.prec() < p || (n.R.prec() == p && (n.Op == '-' || n.Op == '/'))
	}
	return wrap(n.L, left) + string(n.Op) + wrap(n.R, right)
}

func (n *Call) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Name + "(" + strings.Join(args, ",") + ")"
}

func wrap(n Node, paren bool) string {
	if paren {
		return "(" + n.String() + ")"
	}
	return n.String()
}

// Walk visits n and its descendants depth-first, stopping a branch when fn returns false.
func Walk(n Node, fn func(Node) bool) {
	if !fn(n) {
		return
	}
	switch n := n.(type) {
	case *Unary:
		Walk(n.X, fn)
	case *Binary:
		Walk(n.L, fn)
		Walk(n.R, fn)
	case *Call:
		for _, a := range n.Args {
			Walk(a, fn)
		}
	}
}

// FreeSymbols returns the sorted variable names in n, constants excluded.
func FreeSymbols(n Node) []string {
	seen := map[string]bool{}
	Walk(n, func(n Node) bool {
		if s, ok := n.(*Symbol); ok && !isConstant(s.Name) {
			seen[s.Name] = true
		}
		return true
	})
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// dependsOn reports whether variable v occurs in n.
func dependsOn(n Node, v string) bool {
	found := false
	Walk(n, func(n Node) bool {
		if s, ok := n.(*Symbol); ok && s.Name == v {
			found = true
		}
		return !found
	})
	return found
}
