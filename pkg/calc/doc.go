/*
Package calc is the expression engine behind descent: it parses flat infix
expressions, compiles them into evaluable programs and differentiates them
symbolically.

Grammar, loosest binding first:

	expr    = term { ("+" | "-") term }
	term    = unary { ("*" | "/") unary }
	unary   = ("-" | "+") unary | power
	power   = primary [ "^" unary ]             // right-associative
	primary = number | name [ "(" args ")" ] | "(" expr ")"

Names pi and e are constants. Every other bare name is a variable resolved from the
Scope at evaluation time.

Evaluation stays in the reals until a function leaves its real domain (square root
or logarithm of a negative number, fractional power of a negative base, asin/acos
outside [-1, 1]); from there the value is carried as a complex number and Evaluate
returns a Complex.
*/
package calc
