// Package repl implements the line handling behind the scicalc shell: it
// evaluates each input line in a persistent context and writes results,
// errors, and command output.
package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/krotik/common/logutil"

	"github.com/zephyrtronium/scicalc"
)

// EOT is the line the terminal produces at the end of input.
const EOT = "\x04"

// Session is a calculator session reading one line at a time.
type Session struct {
	ctx    *scicalc.Context
	out    io.Writer
	format string
	echo   bool
	log    logutil.Logger
}

// New creates a session that evaluates in ctx and writes to out. format is
// the fmt verb for results. If echo is true, the fully parenthesized form of
// each input is printed before its result. log receives debug messages for
// each evaluation and may be nil.
func New(ctx *scicalc.Context, out io.Writer, format string, echo bool, log logutil.Logger) *Session {
	if format == "" {
		format = "%g"
	}
	return &Session{ctx: ctx, out: out, format: format, echo: echo, log: log}
}

func (s *Session) debug(msg ...interface{}) {
	if s.log != nil {
		s.log.Debug(msg...)
	}
}

// Context returns the session's evaluation context.
func (s *Session) Context() *scicalc.Context {
	return s.ctx
}

// Line handles one line of input. It returns false when the session should
// end. A variable with the same name as a command takes precedence over
// the command.
func (s *Session) Line(line string) bool {
	cmd := strings.TrimSpace(line)
	if _, ok, _ := s.ctx.Lookup(cmd); ok {
		s.eval(line)
		return true
	}
	switch {
	case cmd == "":
		return true
	case cmd == EOT, strings.EqualFold(cmd, "exit"):
		return false
	case cmd == "vars":
		s.vars()
		return true
	case cmd == "history":
		s.history()
		return true
	case cmd == "clear":
		s.ctx.ClearHistory()
		fmt.Fprintln(s.out, "history cleared")
		return true
	}
	s.eval(line)
	return true
}

func (s *Session) eval(line string) {
	e, r, err := scicalc.EvaluateExpr(line, s.ctx)
	if err != nil {
		if s.echo && e != nil {
			fmt.Fprintln(s.out, e)
		}
		s.debug("evaluating ", line, ": ", err)
		s.failed(line, err)
		return
	}
	if s.echo {
		fmt.Fprint(s.out, e)
	}
	s.debug("evaluated ", line)
	fmt.Fprintf(s.out, " = "+s.format+"\n", r)
}

// failed writes an error. Errors with a position get a marker under the
// offending column.
func (s *Session) failed(line string, err error) {
	if c := Col(err); c > 0 {
		fmt.Fprintf(s.out, "\t%s\n\t%s^\n", line, strings.Repeat(" ", c-1))
	}
	fmt.Fprintf(s.out, "%v: %v\n", scicalc.KindOf(err), err)
}

// Col returns the 1-based input column an error refers to, or 0 if it has
// none.
func Col(err error) int {
	var (
		ie scicalc.InputError
		ne *scicalc.NameError
		ce *scicalc.CallError
	)
	switch {
	case errors.As(err, &ie):
		return ie.Pos()
	case errors.As(err, &ne):
		return ne.Col
	case errors.As(err, &ce):
		return ce.Col
	}
	return 0
}

func (s *Session) vars() {
	for _, name := range s.ctx.Vars() {
		v, _, _ := s.ctx.Lookup(name)
		c := ""
		if s.ctx.IsConst(name) {
			c = " (const)"
		}
		fmt.Fprintf(s.out, "%s = "+s.format+"%s\n", name, v, c)
	}
}

func (s *Session) history() {
	for i, h := range s.ctx.History() {
		if h.OK() {
			fmt.Fprintf(s.out, "%d: %s = "+s.format+"\n", i+1, h.Input, h.Result)
			continue
		}
		fmt.Fprintf(s.out, "%d: %s : %v\n", i+1, h.Input, scicalc.KindOf(h.Err))
	}
}
