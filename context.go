package scicalc

import (
	"math"

	"github.com/krotik/common/stringutil"
)

// AnsName is the reserved variable name that refers to the most recent
// successful result in a context's history.
const AnsName = "ans"

// Context is the state of a calculator session: variables, functions, and the
// history of evaluations. It is not safe to use a Context concurrently.
type Context struct {
	vars  map[string]*variable
	funcs map[string]Func
	hist  []HistEntry
}

type variable struct {
	value    float64
	constant bool
}

// HistEntry is a record of one evaluation.
type HistEntry struct {
	// Input is the text that was evaluated.
	Input string
	// Result is the result of the evaluation. It is meaningful only if Err
	// is nil.
	Result float64
	// Err is the error that prevented a result, if any.
	Err error
}

// OK returns whether the evaluation produced a result.
func (h HistEntry) OK() bool {
	return h.Err == nil
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name     string
		val      float64
		constant bool
	}
	funcopt struct {
		name string
		fn   Func
	}
)

func (varopt) ctxOption()  {}
func (funcopt) ctxOption() {}

// SetVar sets the initial value of an ordinary variable in the context.
// Options replace whatever the name held before, including constants.
func SetVar(name string, val float64) ContextOption {
	return varopt{name: name, val: val}
}

// SetConst defines a constant in the context. Assignments to the name fail.
func SetConst(name string, val float64) ContextOption {
	return varopt{name: name, val: val, constant: true}
}

// WithFunc adds a function to the context, or replaces a default function of
// the same name. To remove a default function, pass nil for fn.
func WithFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// constants are the initial values of every context.
var constants = map[string]float64{
	"pi":  math.Pi,
	"e":   math.E,
	"inf": math.Inf(1),
	"nan": math.NaN(),
}

// NewContext creates a new evaluation context with the default constants and
// functions, then applies options in order.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{
		vars:  make(map[string]*variable, len(constants)),
		funcs: globalfuncs,
	}
	for k, v := range constants {
		ctx.vars[k] = &variable{value: v, constant: true}
	}
	copied := false
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case varopt:
			ctx.vars[opt.name] = &variable{value: opt.val, constant: opt.constant}
		case funcopt:
			if !copied {
				// Never modify the global table.
				m := make(map[string]Func, len(ctx.funcs)+1)
				for k, v := range ctx.funcs {
					m[k] = v
				}
				ctx.funcs = m
				copied = true
			}
			if opt.fn == nil {
				delete(ctx.funcs, opt.name)
			} else {
				ctx.funcs[opt.name] = opt.fn
			}
		default:
			panic("scicalc: unknown option type")
		}
	}
	return &ctx
}

// Lookup returns the value of a variable. If there is no such variable, then
// ok is false. If the name is ans and there is no previous result, then ok is
// true and err is an *AnsError.
func (ctx *Context) Lookup(name string) (v float64, ok bool, err error) {
	if name == AnsName {
		v, err := ctx.Ans()
		return v, true, err
	}
	x := ctx.vars[name]
	if x == nil {
		return 0, false, nil
	}
	return x.value, true, nil
}

// Call calls a function by name. If there is no such function, then ok is
// false. If the function has a fixed arity that differs from len(args), then
// err is a *CallError. Otherwise, the result is that of the function.
func (ctx *Context) Call(name string, args []float64) (v float64, ok bool, err error) {
	return ctx.call(name, args, 0)
}

// call is Call for a call at column col of an input.
func (ctx *Context) call(name string, args []float64, col int) (v float64, ok bool, err error) {
	f := ctx.funcs[name]
	if f == nil {
		return 0, false, nil
	}
	if n := f.Arity(); n != 0 && n != len(args) {
		return 0, true, &CallError{Col: col, Func: name, Arity: n, Len: len(args)}
	}
	v, err = f.Call(args)
	return v, true, err
}

// Assign sets the value of a variable, creating it if needed. It is an
// error to assign to a constant or to ans.
func (ctx *Context) Assign(name string, v float64) error {
	if name == AnsName {
		return &ConstantError{Name: name}
	}
	x := ctx.vars[name]
	switch {
	case x == nil:
		ctx.vars[name] = &variable{value: v}
	case x.constant:
		return &ConstantError{Name: name}
	default:
		x.value = v
	}
	return nil
}

// Ans returns the result of the most recent successful evaluation.
func (ctx *Context) Ans() (float64, error) {
	if len(ctx.hist) == 0 {
		return 0, &AnsError{Empty: true}
	}
	for i := len(ctx.hist) - 1; i >= 0; i-- {
		if h := ctx.hist[i]; h.Err == nil {
			return h.Result, nil
		}
	}
	return 0, &AnsError{}
}

// IsConst returns whether name is a constant, meaning assignments to it fail.
func (ctx *Context) IsConst(name string) bool {
	if name == AnsName {
		return true
	}
	x := ctx.vars[name]
	return x != nil && x.constant
}

// Vars returns the names of all variables and constants in the context, in
// sorted order.
func (ctx *Context) Vars() []string {
	r := make([]string, 0, len(ctx.vars))
	for k := range ctx.vars {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// Funcs returns the names of all functions in the context, in sorted order.
func (ctx *Context) Funcs() []string {
	r := make([]string, 0, len(ctx.funcs))
	for k := range ctx.funcs {
		r = append(r, k)
	}
	sortstrs(r)
	return r
}

// History returns a copy of the context's evaluation history, oldest first.
func (ctx *Context) History() []HistEntry {
	return append(([]HistEntry)(nil), ctx.hist...)
}

// ClearHistory removes all history entries. Afterward, ans is undefined.
func (ctx *Context) ClearHistory() {
	ctx.hist = nil
}

// Clone creates a copy of a context. Changes to variables and history in the
// copy do not affect the original.
func (ctx *Context) Clone() *Context {
	n := Context{
		vars:  make(map[string]*variable, len(ctx.vars)),
		funcs: ctx.funcs,
		hist:  ctx.History(),
	}
	for k, v := range ctx.vars {
		x := *v
		n.vars[k] = &x
	}
	return &n
}

// record appends a history entry.
func (ctx *Context) record(input string, r float64, err error) {
	ctx.hist = append(ctx.hist, HistEntry{Input: input, Result: r, Err: err})
}

// undefined creates an error for a missing variable or function name,
// suggesting a similar known name if there is one.
func (ctx *Context) undefined(name string, fn bool, col int) error {
	err := &NameError{Name: name, Func: fn, Col: col}
	if !fn {
		if ctx.funcs[name] != nil {
			// A function used as a variable.
			err.Suggest = name + "(...)"
			return err
		}
		err.Suggest = closest(name, append(ctx.Vars(), AnsName))
		return err
	}
	if s := closest(name, ctx.Funcs()); s != "" {
		err.Suggest = s + "(...)"
	}
	return err
}

// closest returns the name in known with the smallest edit distance from
// name, provided the distance is at most 2 and less than the length of name.
// Ties go to the first name in known.
func closest(name string, known []string) string {
	best, dist := "", 3
	if len(name) < dist {
		dist = len(name)
	}
	for _, k := range known {
		if d := stringutil.LevenshteinDistance(name, k); d < dist {
			best, dist = k, d
		}
	}
	return best
}
