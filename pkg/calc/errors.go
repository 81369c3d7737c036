package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax wraps every parse error.
	ErrSyntax = errors.New("syntax error")
	// ErrUnknownFunction is returned by Compile for calls to unsupported functions.
	ErrUnknownFunction = errors.New("unknown function")
	// ErrArity is returned by Compile when a function gets the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrUndefinedSymbol is returned by Evaluate when a variable is not bound.
	ErrUndefinedSymbol = errors.New("undefined symbol")
	// ErrNoDerivative is returned by Derivative for constructs it cannot differentiate.
	ErrNoDerivative = errors.New("no symbolic derivative")
)

// SyntaxError reports where parsing failed.
type SyntaxError struct {
	Pos int // byte offset into the expression
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s (char %d)", e.Msg, e.Pos+1)
}

func (e *SyntaxError) Unwrap() error { return ErrSyntax }
