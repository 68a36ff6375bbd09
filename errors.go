package scicalc

import (
	"errors"
	"strconv"
)

// Kind classifies the errors produced by parsing and evaluation.
type Kind int8

const (
	// NoError is the kind of a nil error.
	NoError Kind = iota
	// SyntaxError is the kind of input that does not match the grammar.
	SyntaxError
	// ParserError is the kind of a parse tree which cannot be evaluated.
	// Parse never produces one; it can only appear from a zero Expr.
	ParserError
	// UndefinedIdentifier is the kind of a lookup for a variable or function
	// that does not exist.
	UndefinedIdentifier
	// ArgumentError is the kind of a function call with the wrong number of
	// arguments.
	ArgumentError
	// AssignmentError is the kind of an assignment to a constant.
	AssignmentError
	// CalculationError is the kind of anything else that prevents a result,
	// such as using ans before any result exists or an error from a custom
	// function.
	CalculationError
)

func (k Kind) String() string {
	switch k {
	case NoError:
		return "No error"
	case SyntaxError:
		return "Syntax error"
	case ParserError:
		return "Parser error"
	case UndefinedIdentifier:
		return "Undefined variable"
	case ArgumentError:
		return "Argument error"
	case AssignmentError:
		return "Assignment error"
	case CalculationError:
		return "Calculation error"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// CalcError is an error with a Kind. Every error that Parse and Evaluate
// create implements CalcError.
type CalcError interface {
	error
	Kind() Kind
}

// KindOf classifies an error. Errors that do not implement CalcError, e.g.
// errors returned from custom functions, are CalculationErrors.
func KindOf(err error) Kind {
	if err == nil {
		return NoError
	}
	var ce CalcError
	if errors.As(err, &ce) {
		return ce.Kind()
	}
	return CalculationError
}

// NameError is an error from a lookup for a variable or function that is
// missing from the evaluation context.
type NameError struct {
	// Name is the name that was missing.
	Name string
	// Func is whether the name was used as a function.
	Func bool
	// Suggest is a known name close to Name, or the empty string if there is
	// none.
	Suggest string
	// Col is the position of the name in the input.
	Col int
}

func (err *NameError) Error() string {
	s := "undefined variable: "
	if err.Func {
		s = "undefined function: "
	}
	s += strconv.Quote(err.Name)
	if err.Suggest != "" {
		s += " (did you mean " + strconv.Quote(err.Suggest) + "?)"
	}
	return s
}

func (*NameError) Kind() Kind { return UndefinedIdentifier }

// CallError is an error indicating a function call with the wrong number of
// arguments.
type CallError struct {
	// Col is the position of the function name, or 0 if the call did not come
	// from an expression.
	Col int
	// Func is the function name that was called.
	Func string
	// Arity is the number of arguments the function takes.
	Arity int
	// Len is the number of arguments the call supplied.
	Len int
}

func (err *CallError) Error() string {
	s := "cannot call " + err.Func + " with " + strconv.Itoa(err.Len) + " arguments (want " + strconv.Itoa(err.Arity) + ")"
	if err.Col > 0 {
		return errpos(err.Col, s)
	}
	return s
}

func (*CallError) Kind() Kind { return ArgumentError }

// ConstantError is an error indicating an assignment to a constant or to
// the reserved name ans.
type ConstantError struct {
	// Name is the constant.
	Name string
}

func (err *ConstantError) Error() string {
	return "can't assign value to constant " + strconv.Quote(err.Name)
}

func (*ConstantError) Kind() Kind { return AssignmentError }

// AnsError is an error indicating a use of ans when no previous result
// exists.
type AnsError struct {
	// Empty is whether the history was entirely empty, as opposed to
	// containing only failed evaluations.
	Empty bool
}

func (err *AnsError) Error() string {
	if err.Empty {
		return "cannot use " + strconv.Quote(AnsName) + " without a previous equation"
	}
	return "cannot use " + strconv.Quote(AnsName) + " without a previous valid solution"
}

func (*AnsError) Kind() Kind { return CalculationError }

// TreeError is an error indicating an expression tree that cannot be
// evaluated.
type TreeError struct {
	// Node names the kind of the invalid node.
	Node string
}

func (err *TreeError) Error() string {
	return "invalid syntax tree (" + err.Node + ")"
}

func (*TreeError) Kind() Kind { return ParserError }

var (
	_ CalcError = (*NameError)(nil)
	_ CalcError = (*CallError)(nil)
	_ CalcError = (*ConstantError)(nil)
	_ CalcError = (*AnsError)(nil)
	_ CalcError = (*TreeError)(nil)
)
