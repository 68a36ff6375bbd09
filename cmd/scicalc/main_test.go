package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zephyrtronium/scicalc"
)

func TestGiven(t *testing.T) {
	ctx, err := given([][2]string{{"x", "2"}, {"y", "sqrt(16)"}, {"x", "x"}})
	if err == nil {
		t.Fatal("redefining x in terms of itself should fail")
	}
	if !strings.Contains(err.Error(), "setting x") {
		t.Errorf("error doesn't name x: %v", err)
	}
	if ctx != nil {
		t.Errorf("context despite errors")
	}

	ctx, err = given([][2]string{{"x", "2"}, {"y", "sqrt(16)"}})
	if err != nil {
		t.Fatal(err)
	}
	if r, err := scicalc.Evaluate("x*y", ctx); err != nil || r != 8 {
		t.Errorf("x*y gave %g, %v", r, err)
	}

	_, err = given([][2]string{{"pi", "3"}, {"e", "("}})
	if err == nil {
		t.Fatal("no errors")
	}
	for _, want := range []string{"setting pi", "setting e"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%q missing from %v", want, err)
		}
	}
}

func TestInput(t *testing.T) {
	in, closer, err := input("", nil)
	if err != nil || in != nil {
		t.Errorf("no input gave %v, %v", in, err)
	}
	if err := closer(); err != nil {
		t.Errorf("closing no input: %v", err)
	}
	in, _, err = input("", []string{"1+1", "x = 2"})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(in)
	if want, got := "1+1\nx = 2", string(b); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if _, _, err := input("/nonexistent/file", nil); err == nil {
		t.Errorf("opened missing file")
	}
}

func TestInputFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(name, []byte("1+1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	in, closer, err := input(name, []string{"2"})
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(in)
	if want, got := "1+1\n\n2", string(b); got != want {
		t.Errorf("want %q, got %q", want, got)
	}
	if err := closer(); err != nil {
		t.Errorf("closing input: %v", err)
	}
	if err := closer(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("file wasn't closed: second close gave %v", err)
	}
}
