// Package dsl reads and writes the two line-oriented text formats.
//
// # Labels
//
// Both formats are built from brace-delimited labels. Braces inside a label
// are depth-counted, so a label may carry LaTeX markup:
//
//	{\mathbf{I}^{\mathscr{A}}_{X,Y}}
//
// Labels are trimmed and normalized to Unicode NFC. An empty or unbalanced
// label is an ErrCodeInvalidLabel error. Outside labels, '%' starts a comment
// that runs to the end of the line.
//
// # Diagram Format
//
// Every line {f}{A}{B} declares the morphism f: A -> B. An optional block of
// L{A}{Label} lines before the first morphism sets display labels:
//
//	L{A}{\mathcal{A}}
//	{f}{A}{B}
//	{g}{B}{C}
//	{h}{A}{C}
//
// # Equation Format
//
// Every line is a list of composites separated by '=', each composite
// written codomain first:
//
//	{g}{f} = {h}
//
// A single composite on a line is a self-equality. Self-equalities describe
// cycles and chains that no pair of parallel paths explains.
//
// # Errors
//
// Every error is a *errors.Error carrying the 1-based line and the rune
// offset of the offending token, so callers can point at it:
//
//	_, err := dsl.ParseEquations("= {f}")
//	// INVALID_EQUATION: line 1:0: '=' with no preceding morphism
package dsl
