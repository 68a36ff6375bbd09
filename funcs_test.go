package scicalc_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func TestFuncArity(t *testing.T) {
	fixed := map[string]int{
		"sqrt": 1, "root": 2, "fac": 1, "mean": 0, "stddev": 0, "min": 2,
		"max": 2, "abs": 1, "round": 1, "floor": 1, "ceil": 1, "exp": 1,
		"ln": 1, "log10": 1, "log": 2, "sin": 1, "cos": 1, "tan": 1,
		"sinh": 1, "cosh": 1, "tanh": 1, "asin": 1, "acos": 1, "atan": 1,
		"asinh": 1, "acosh": 1, "atanh": 1,
	}
	ctx := scicalc.NewContext()
	names := scicalc.DefaultFuncs()
	if len(names) != len(fixed) {
		t.Errorf("have %d functions %q, want %d", len(names), names, len(fixed))
	}
	for _, name := range names {
		n, ok := fixed[name]
		if !ok {
			t.Errorf("no test case for %q", name)
			continue
		}
		args := make([]float64, n+1)
		_, ok, err := ctx.Call(name, args)
		if !ok {
			t.Errorf("%s is not defined", name)
			continue
		}
		if n == 0 {
			if err != nil {
				t.Errorf("variadic %s with %d args: %v", name, len(args), err)
			}
			continue
		}
		if k := scicalc.KindOf(err); k != scicalc.ArgumentError {
			t.Errorf("%s with %d args gave %v, want ArgumentError", name, len(args), err)
		}
	}
}

func TestFuncOf(t *testing.T) {
	errOdd := errors.New("odd")
	even := scicalc.FuncOf(1, func(args []float64) (float64, error) {
		if math.Mod(args[0], 2) != 0 {
			return 0, errOdd
		}
		return args[0] / 2, nil
	})
	ctx := scicalc.NewContext(scicalc.WithFunc("half", even))
	if r, err := scicalc.Evaluate("half(8)", ctx); err != nil || r != 4 {
		t.Errorf("half(8) gave %g, %v", r, err)
	}
	r, err := scicalc.Evaluate("half(7) + 1", ctx)
	if !errors.Is(err, errOdd) {
		t.Errorf("half(7) gave %g, %v", r, err)
	}
	if k := scicalc.KindOf(err); k != scicalc.CalculationError {
		t.Errorf("custom error has kind %v", k)
	}
	if _, err := scicalc.Evaluate("half(8, 2)", ctx); scicalc.KindOf(err) != scicalc.ArgumentError {
		t.Errorf("half(8, 2) gave %v", err)
	}
}

func TestFuncOfNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("negative arity didn't panic")
		}
	}()
	scicalc.FuncOf(-1, nil)
}

func ExampleWithFunc() {
	sum := scicalc.Variadic(func(args []float64) float64 {
		var s float64
		for _, x := range args {
			s += x
		}
		return s
	})
	ctx := scicalc.NewContext(
		scicalc.WithFunc("hypot", scicalc.Dyadic(math.Hypot)),
		scicalc.WithFunc("sum", sum),
	)
	for _, in := range []string{"hypot(3, 4)", "sum()", "sum(1, 2, 3)", "hypot(1)"} {
		r, err := scicalc.Evaluate(in, ctx)
		fmt.Println(in, r, err)
	}

	// Output:
	// hypot(3, 4) 5 <nil>
	// sum() 0 <nil>
	// sum(1, 2, 3) 6 <nil>
	// hypot(1) 0 1: cannot call hypot with 1 arguments (want 2)
}
