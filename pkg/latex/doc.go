/*
Package latex translates the typeset notation produced by math input widgets into a
flat infix expression.

The translator recognizes a fixed command subset (fractions, roots, elementary
functions, pi and multiplication symbols). Anything else is passed through as
literal text, so malformed or unknown input degrades into a string that the
expression parser later rejects instead of failing here.

	latex.Translate(`\frac{a}{b}`)      // (a)/(b)
	latex.Translate(`\sqrt{x^2+y^2}`)   // sqrt((x^2+y^2))
	latex.Translate(`x^{2}\cdot y`)     // x^(2)*y

The output still contains implicit products and merged identifiers; run it through
lexer.Normalize before parsing.
*/
package latex
