//go:build go1.18
// +build go1.18

package scicalc_test

import (
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("y = x!")
	f.Add("ans // 0")
	f.Fuzz(func(t *testing.T, s string) {
		ctx := scicalc.NewContext(scicalc.SetVar("x", 0))
		scicalc.Evaluate(s, ctx)
		if h := ctx.History(); len(h) != 1 {
			t.Errorf("%q recorded %d history entries", s, len(h))
		}
	})
}
