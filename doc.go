// Package scicalc implements a scientific calculator over float64.
//
// Expressions are single lines of ordinary infix math: "1 + 3 - 2 * 2^2 /
// (3! - 1)". Exponentiation is right-associative and binds tighter than
// negation, so "-2^3^2" is "-(2^(3^2))". Postfix "!" binds tighter than
// anything else and extends to non-integers through the gamma function.
// "a // b" is floor division and "a % b" is the remainder with the sign of a.
// There is no implicit multiplication; "2 pi" is an error.
//
// A Context holds the state of a calculator session: constants, variables,
// functions, and the history of evaluated inputs. An input of the form
// "name = expr" assigns to a variable, and the name "ans" always refers to
// the most recent successful result.
//
//	ctx := scicalc.NewContext()
//	scicalc.Evaluate("a = 2", ctx)
//	scicalc.Evaluate("b = 5", ctx)
//	r, err := scicalc.Evaluate("sqrt(a^2 + b^2)", ctx)
//
// A Context is not safe for concurrent use.
package scicalc
