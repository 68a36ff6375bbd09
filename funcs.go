package scicalc

import (
	"math"
)

// Func is a function from reals to a real.
type Func interface {
	// Call evaluates the function. If Arity returns a positive number, then
	// len(args) equals it. Call must not modify args or retain it.
	Call(args []float64) (float64, error)

	// Arity returns the number of arguments the function takes. Zero means the
	// function is variadic and may be called with any number of arguments,
	// including none.
	Arity() int
}

var globalfuncs = map[string]Func{
	"sqrt":   Monadic(math.Sqrt),
	"root":   Dyadic(root),
	"fac":    Monadic(factorial),
	"mean":   Variadic(mean),
	"stddev": Variadic(stddev),
	"min":    Dyadic(math.Min),
	"max":    Dyadic(math.Max),
	"abs":    Monadic(math.Abs),
	"round":  Monadic(math.Round),
	"floor":  Monadic(math.Floor),
	"ceil":   Monadic(math.Ceil),
	"exp":    Monadic(math.Exp),
	"ln":     Monadic(math.Log),
	"log10":  Monadic(log10),
	"log":    Dyadic(logb),

	// trig
	"sin":   Monadic(math.Sin),
	"cos":   Monadic(math.Cos),
	"tan":   Monadic(math.Tan),
	"sinh":  Monadic(math.Sinh),
	"cosh":  Monadic(math.Cosh),
	"tanh":  Monadic(math.Tanh),
	"asin":  Monadic(math.Asin),
	"acos":  Monadic(math.Acos),
	"atan":  Monadic(math.Atan),
	"asinh": Monadic(math.Asinh),
	"acosh": Monadic(math.Acosh),
	"atanh": Monadic(math.Atanh),
}

// DefaultFuncs returns the names of the functions every context has unless
// disabled, in sorted order.
func DefaultFuncs() []string {
	r := make([]string, 0, len(globalfuncs))
	for k := range globalfuncs {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

type monadic struct {
	f func(float64) float64
}

func (m monadic) Call(args []float64) (float64, error) {
	return m.f(args[0]), nil
}

func (monadic) Arity() int {
	return 1
}

// Monadic wraps a function of one variable into a Func. Results outside the
// function's domain should be NaN rather than errors.
func Monadic(f func(float64) float64) Func {
	return monadic{f}
}

type dyadic struct {
	f func(x, y float64) float64
}

func (d dyadic) Call(args []float64) (float64, error) {
	return d.f(args[0], args[1]), nil
}

func (dyadic) Arity() int {
	return 2
}

// Dyadic wraps a function of two variables into a Func.
func Dyadic(f func(x, y float64) float64) Func {
	return dyadic{f}
}

type variadic struct {
	f func([]float64) float64
}

func (v variadic) Call(args []float64) (float64, error) {
	return v.f(args), nil
}

func (variadic) Arity() int {
	return 0
}

// Variadic wraps a function of any number of variables into a Func.
func Variadic(f func([]float64) float64) Func {
	return variadic{f}
}

type general struct {
	n int
	f func([]float64) (float64, error)
}

func (g general) Call(args []float64) (float64, error) {
	return g.f(args)
}

func (g general) Arity() int {
	return g.n
}

// FuncOf creates a Func from a function that may fail. Errors it returns are
// reported by evaluation as they are; errors that do not implement CalcError
// classify as CalculationError. Panics if arity is negative.
func FuncOf(arity int, f func(args []float64) (float64, error)) Func {
	if arity < 0 {
		panic("scicalc: negative arity")
	}
	return general{arity, f}
}

// factorials holds n! for each n for which it is finite.
var factorials [171]float64

func init() {
	factorials[0] = 1
	for i := 1; i < len(factorials); i++ {
		factorials[i] = factorials[i-1] * float64(i)
	}
}

// factorial computes Γ(x+1). Integers use exact products where the result is
// finite, so that e.g. 3! is exactly 6.
func factorial(x float64) float64 {
	if x >= 0 && x < float64(len(factorials)) && x == math.Trunc(x) {
		return factorials[int(x)]
	}
	return math.Gamma(x + 1)
}

func mean(args []float64) float64 {
	var sum float64
	for _, x := range args {
		sum += x
	}
	// No arguments gives 0/0, which is NaN.
	return sum / float64(len(args))
}

// stddev computes the population standard deviation.
func stddev(args []float64) float64 {
	m := mean(args)
	var sum float64
	for _, x := range args {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(args)))
}
