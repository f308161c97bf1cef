// Package minipy implements an interpreter for a small Python-flavoured
// language. The supported subset covers:
//   - Variable assignment, including augmented forms (+=, -=, *=, /=, %=,
//     &=, |=, ^=, <<=, >>=).
//   - Number (64-bit float) and double-quoted string literals.
//   - Arithmetic (+, -, *, /, %), bitwise (&, |, ^, <<, >>), comparison
//     (==, !=, <, >, <=, >=) and unary (-, +, ~, not) operators.
//   - `print(expr)`, `if/else`, and `while` with indentation-delimited
//     blocks, Python style.
//
// Comments beginning with `#` run to end of line. There are no booleans
// at runtime: comparisons produce a number holding exactly 1.0 or 0.0,
// and conditions treat any non-zero number as true. Programs execute in
// one flat variable scope.
package minipy
