package scicalc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// prec is the precision used for functions computed with big.Float before
// rounding to float64. It is large enough that results which are exact
// integers round to those integers.
const prec = 128

func bigf(x float64) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

// positive reports whether x is positive and finite, which is the domain in
// which bigfloat's Log and Pow are defined.
func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}

// root computes the nth root of x. If x is negative and n is an odd integer,
// the result is the negative real root.
func root(x, n float64) float64 {
	if x < 0 && math.Abs(math.Mod(n, 2)) == 1 {
		return -root(-x, n)
	}
	if !positive(x) || n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return math.Pow(x, 1/n)
	}
	if x == 1 {
		return 1
	}
	one := bigf(1)
	w := new(big.Float).SetPrec(prec).Quo(one, bigf(n))
	z := new(big.Float).SetPrec(prec)
	bigfloat.Pow(z, bigf(x), w)
	r, _ := z.Float64()
	return r
}

// logb computes the logarithm of x in base b.
func logb(x, b float64) float64 {
	if !positive(x) || !positive(b) || b == 1 {
		return math.Log(x) / math.Log(b)
	}
	if x == 1 {
		return 0
	}
	num := new(big.Float).SetPrec(prec)
	bigfloat.Log(num, bigf(x))
	den := new(big.Float).SetPrec(prec)
	bigfloat.Log(den, bigf(b))
	num.Quo(num, den)
	r, _ := num.Float64()
	return r
}

func log10(x float64) float64 {
	return logb(x, 10)
}
