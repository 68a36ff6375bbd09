package scicalc

import (
	"errors"
	"strconv"
	"strings"
)

// Input = Assign | Expr
// Assign = name '=' Expr
// Expr = num | name | Call | Neg | Plus | Fac | Add | Sub | Mul | Div | FloorDiv | Mod | Pow | '(' Expr ')'
// Call = funcname '(' [ Expr { ',' Expr } ] ')'
// Neg = '-' Expr
// Plus = '+' Expr
// Fac = Expr '!'
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// FloorDiv = Expr '//' Expr
// Mod = Expr '%' Expr
// Pow = Expr '^' Expr

// Expr is a parsed input that can be evaluated with a context.
type Expr struct {
	// n is the root node of the expression.
	n *node
	// target is the variable the input assigns to, if any.
	target string
	// src is the input text.
	src string
	// names is the list of variable names used in the expression.
	names []string
}

// parsectx holds general data for parsing.
type parsectx struct {
	// names is the set of variable names that have been seen this parse.
	names map[string]bool
}

// Parse parses an input so it can be evaluated with a context. An input is
// either an expression or an assignment "name = expression".
func Parse(src string) (*Expr, error) {
	scan := lex(strings.NewReader(src))
	p := parsectx{
		names: make(map[string]bool),
	}
	first, err := scan.next()
	if err != nil {
		return nil, err
	}
	scan.push(first)
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	ex := Expr{src: src}
	tok := scan.must()
	if tok.kind == tokenAssign {
		// Only a name that is the entire left side can be assigned.
		if n == nil || n.kind != nodeName || first.kind != tokenIdent || n.pos != first.pos {
			return nil, &AssignTargetError{Col: tok.pos}
		}
		ex.target = n.name
		// The target isn't a use of the variable.
		p.names = make(map[string]bool)
		n, err = parseterm(scan, &p, exprprec)
		if err != nil {
			return nil, err
		}
		tok = scan.must()
	}
	if tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok)
	}
	ex.n = n
	ex.names = make([]string, 0, len(p.names))
	for k := range p.names {
		ex.names = append(ex.names, k)
	}
	sortstrs(ex.names)
	return &ex, nil
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent, tokenOpen:
			return nil, &MissingOperatorError{Col: tok.pos, Term: tok.text}
		case tokenOp:
			if tok.text == "!" {
				// Postfix factorial binds more tightly than any other
				// operator, so it always applies to the term so far.
				n = &node{kind: nodeFac, pos: tok.pos, left: n}
				continue
			}
			// Binary operator.
			prec := binop(tok.text)
			if prec.op == nodeNone {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				end := scan.must()
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			n = &node{kind: prec.op, pos: tok.pos, left: n, right: rhs}
		case tokenClose, tokenSep, tokenAssign, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("scicalc: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary
// and any encountered token must be valid as the start of a subexpression.
func parselhs(scan *lexer, p *parsectx, until operator) (*node, error) {
	tok, err := scan.next()
	if err != nil {
		return nil, err
	}
	var n *node
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			// The lexer only produces valid literals.
			panic("scicalc: invalid number: " + tok.text + " (" + err.Error() + ")")
		}
		// Out of range literals are ±Inf or 0, which is what we want anyway.
		n = &node{kind: nodeNum, pos: tok.pos, name: tok.text, num: v}
	case tokenIdent:
		open, err := scan.next()
		if err != nil {
			return nil, err
		}
		if open.kind != tokenOpen {
			scan.push(open)
			p.names[tok.text] = true
			n = &node{kind: nodeName, pos: tok.pos, name: tok.text}
			break
		}
		args, err := parsearglist(scan, p, open)
		if err != nil {
			return nil, err
		}
		n = &node{kind: nodeCall, pos: tok.pos, name: tok.text, args: args}
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.op == nodeNone {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			end := scan.must()
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = &node{kind: prec.op, pos: tok.pos, left: rhs}
	case tokenOpen:
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose: // do nothing
		case tokenEOF:
			return nil, &BracketError{Col: tok.pos, Left: tok.text}
		default:
			return nil, itShouldNotHaveEndedThisWay(end)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		n = rhs
	case tokenClose:
		// This might be part of niladic func(), so just let the caller decide
		// what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenAssign:
		return nil, &AssignTargetError{Col: tok.pos}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("scicalc: unknown token: " + tok.String())
	}
	return n, nil
}

// parsearglist parses a parenthesized list of zero or more args. The open
// paren has already been scanned.
func parsearglist(scan *lexer, p *parsectx, open lexToken) ([]*node, error) {
	var args []*node
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting unclosed brackets is more helpful
			// than empty expression, if that's what we'd do here.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: open.pos, Left: open.text}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if rhs == nil {
				// No expression parsed.
				// func() is allowed, but func(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			return append(args, rhs), nil
		case tokenSep:
			args = append(args, rhs)
		case tokenEOF:
			return nil, &BracketError{Col: open.pos, Left: open.text}
		case tokenAssign:
			return nil, &AssignTargetError{Col: end.pos}
		default:
			panic("scicalc: parseterm ended on non-end token " + end.String())
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression.
func itShouldNotHaveEndedThisWay(tok lexToken) error {
	switch tok.kind {
	case tokenClose:
		// A close bracket outside of any open one.
		return &BracketError{Col: tok.pos, Right: tok.text}
	case tokenSep:
		// Separator outside a function call.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenAssign:
		return &AssignTargetError{Col: tok.pos}
	default:
		panic("scicalc: it really should not have ended this way: " + tok.String())
	}
}

// Vars returns the variable names used when evaluating the expression, in
// sorted order. The assignment target is not included unless the expression
// also uses it.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// Target returns the name of the variable the input assigns to, or the empty
// string if the input is not an assignment.
func (e *Expr) Target() string {
	return e.target
}

// Source returns the text the expression was parsed from.
func (e *Expr) Source() string {
	return e.src
}

// String creates a string representation of the parsed input with every term
// parenthesized.
func (e *Expr) String() string {
	var b strings.Builder
	if e.target != "" {
		b.WriteString(e.target)
		b.WriteString(" = ")
	}
	if e.n != nil {
		e.n.fmt(&b)
	}
	return b.String()
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op nodeKind
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// Binding strengths. Postfix ! is not in the table; it always applies to the
// term before it.
const (
	precSum     = 1
	precProduct = 5
	precUnary   = 10
	precPow     = 15
)

var binops = map[string]operator{
	"+":  {precSum, false, nodeAdd},
	"-":  {precSum, false, nodeSub},
	"*":  {precProduct, false, nodeMul},
	"/":  {precProduct, false, nodeDiv},
	"//": {precProduct, false, nodeFloorDiv},
	"%":  {precProduct, false, nodeMod},
	"^":  {precPow, true, nodePow},
}

var unops = map[string]operator{
	"+": {precUnary, true, nodeNop},
	"-": {precUnary, true, nodeNeg},
}

// binop gets a binary operator for a token string. The op of the result is
// nodeNone if there is no such operator.
func binop(text string) operator {
	return binops[text]
}

// unop is like binop for prefix operators.
func unop(text string) operator {
	return unops[text]
}

// exprprec is the precedence required to parse an entire subexpression.
var exprprec = operator{-128, true, nodeNone}
