package calc

import (
	"fmt"
	"strconv"

	"github.com/aretw0/descent/pkg/lexer"
)

type parser struct {
	src  string
	toks []lexer.Token
	pos  int
}

// Parse parses a flat infix expression into a tree.
// Errors are *SyntaxError values wrapping ErrSyntax.
func Parse(expr string) (Node, error) {
	p := &parser{src: expr, toks: lexer.Tokenize(expr)}
	if len(p.toks) == 0 {
		return nil, p.errorf(len(expr), "unexpected end of expression")
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t, ok := p.peek(); ok {
		return nil, p.errorf(t.Pos, "unexpected %q", t.Text)
	}
	return n, nil
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.accept("+") || p.accept("-") {
		op := p.toks[p.pos-1].Text[0]
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept("*") || p.accept("/") {
		op := p.toks[p.pos-1].Text[0]
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &Binary{Op: op, L: left, R: right}
	}
	return left, nil
}

func (p *parser) unary() (Node, error) {
	if p.accept("-") || p.accept("+") {
		op := p.toks[p.pos-1].Text[0]
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Unary{Op: op, X: x}, nil
	}
	return p.power()
}

func (p *parser) power() (Node, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.accept("^") {
		exp, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &Binary{Op: '^', L: base, R: exp}, nil
	}
	return base, nil
}

func (p *parser) primary() (Node, error) {
	t, ok := p.next()
	if !ok {
		return nil, p.errorf(len(p.src), "unexpected end of expression")
	}
	switch {
	case t.Kind == lexer.Number:
		v, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.errorf(t.Pos, "invalid number %q", t.Text)
		}
		return &Number{Value: v}, nil

	case t.Kind == lexer.Ident:
		if !p.accept("(") {
			return &Symbol{Name: t.Text}, nil
		}
		args, err := p.args()
		if err != nil {
			return nil, err
		}
		return &Call{Name: t.Text, Args: args}, nil

	case t.Text == "(":
		if n, ok := p.peek(); ok && n.Text == ")" {
			return nil, p.errorf(n.Pos, "empty parentheses")
		}
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return n, nil
	}
	return nil, p.errorf(t.Pos, "unexpected %q", t.Text)
}

// args parses a call's argument list after its opening parenthesis.
func (p *parser) args() ([]Node, error) {
	if p.accept(")") {
		return nil, nil
	}
	var args []Node
	for {
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.accept(",") {
			continue
		}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		return args, nil
	}
}

func (p *parser) peek() (lexer.Token, bool) {
	if p.pos >= len(p.toks) {
		return lexer.Token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) next() (lexer.Token, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}

func (p *parser) accept(op string) bool {
	if t, ok := p.peek(); ok && t.Kind == lexer.Op && t.Text == op {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(op string) error {
	if p.accept(op) {
		return nil
	}
	if t, ok := p.peek(); ok {
		return p.errorf(t.Pos, "expected %q, found %q", op, t.Text)
	}
	return p.errorf(len(p.src), "parenthesis %q expected", op)
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
