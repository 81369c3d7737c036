/*
Package field turns compiled expressions into real-valued scalar fields of x and y.

An Evaluator never fails: evaluation errors and non-finite results become NaN,
complex results are replaced by their magnitude. Gradients come from symbolic
partials when they are available and from a central difference otherwise.

Compile runs the whole pipeline from typeset markup to an immutable Snapshot:

	latex.Translate -> lexer.Normalize -> calc.Parse -> calc.Compile -> calc.Derivative
*/
package field
