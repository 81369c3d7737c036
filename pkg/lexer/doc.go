/*
Package lexer turns a flat expression string into one a conventional infix parser
accepts.

Typeset input juxtaposes operands: "2x", "xy", "x^2y", "(x+1)(x-1)". Normalize
re-lexes the string, splits merged identifiers into single-letter variables (function
names and constants are kept whole) and writes every implied product as an explicit
"*":

	lexer.Normalize("2x")      // 2*x
	lexer.Normalize("xy")      // x*y
	lexer.Normalize("sin(x)")  // sin(x)
	lexer.Normalize("x^2y")    // x^2*y

Normalize is idempotent.
*/
package lexer
