package scicalc

import (
	"math"
)

// Evaluate parses and evaluates an input in ctx. If the input is an
// assignment, the variable is set only if evaluation succeeds. Every call
// appends exactly one entry to the context's history, including calls for
// inputs that do not parse.
func Evaluate(input string, ctx *Context) (float64, error) {
	_, r, err := EvaluateExpr(input, ctx)
	return r, err
}

// EvaluateExpr is like Evaluate but also returns the parsed input, which is
// nil if the input does not parse.
func EvaluateExpr(input string, ctx *Context) (*Expr, float64, error) {
	e, err := Parse(input)
	if err != nil {
		ctx.record(input, 0, err)
		return nil, 0, err
	}
	r, err := ctx.Eval(e)
	return e, r, err
}

// Eval evaluates a parsed input and records the outcome in the context's
// history. If an error occurs, e.g. a missing variable definition or an
// assignment to a constant, then the result is 0 and the variable table is
// unchanged.
func (ctx *Context) Eval(e *Expr) (float64, error) {
	if e == nil || e.n == nil {
		err := &TreeError{Node: nodeNone.String()}
		src := ""
		if e != nil {
			src = e.src
		}
		ctx.record(src, 0, err)
		return 0, err
	}
	r, err := e.n.eval(ctx)
	if err == nil && e.target != "" {
		err = ctx.Assign(e.target, r)
	}
	if err != nil {
		r = 0
	}
	ctx.record(e.src, r, err)
	return r, err
}

// eval computes the node's value.
func (n *node) eval(ctx *Context) (float64, error) {
	switch n.kind {
	case nodeNum:
		return n.num, nil
	case nodeName:
		v, ok, err := ctx.Lookup(n.name)
		if !ok {
			return 0, ctx.undefined(n.name, false, n.pos)
		}
		return v, err
	case nodeCall:
		args := make([]float64, len(n.args))
		for i, a := range n.args {
			v, err := a.eval(ctx)
			if err != nil {
				return 0, err
			}
			args[i] = v
		}
		v, ok, err := ctx.call(n.name, args, n.pos)
		if !ok {
			return 0, ctx.undefined(n.name, true, n.pos)
		}
		if err != nil {
			return 0, err
		}
		return v, nil
	case nodeNeg:
		v, err := n.left.eval(ctx)
		return -v, err
	case nodeNop:
		return n.left.eval(ctx)
	case nodeFac:
		v, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		return factorial(v), nil
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodeFloorDiv, nodeMod, nodePow:
		l, err := n.left.eval(ctx)
		if err != nil {
			return 0, err
		}
		r, err := n.right.eval(ctx)
		if err != nil {
			return 0, err
		}
		return arith(n.kind, l, r), nil
	default:
		return 0, &TreeError{Node: n.kind.String()}
	}
}

// arith applies a binary operator. Division by zero follows IEEE 754.
func arith(op nodeKind, l, r float64) float64 {
	switch op {
	case nodeAdd:
		return l + r
	case nodeSub:
		return l - r
	case nodeMul:
		return l * r
	case nodeDiv:
		return l / r
	case nodeFloorDiv:
		return math.Floor(l / r)
	case nodeMod:
		// Same sign as the dividend.
		return math.Mod(l, r)
	case nodePow:
		return math.Pow(l, r)
	default:
		panic("scicalc: arith on " + op.String())
	}
}

// EvalString is a shortcut to evaluate an input in a new context created with
// the given options.
func EvalString(src string, opts ...ContextOption) (float64, error) {
	return Evaluate(src, NewContext(opts...))
}
