package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/krotik/common/errorutil"
	"github.com/krotik/common/fileutil"
	"github.com/krotik/common/logutil"
	"github.com/krotik/common/termutil"

	"github.com/zephyrtronium/scicalc"
	"github.com/zephyrtronium/scicalc/internal/repl"
	"github.com/zephyrtronium/scicalc/internal/wscalc"
)

// Config keys.
const (
	ResultFormat  = "ResultFormat"
	HistoryFile   = "HistoryFile"
	ListenAddress = "ListenAddress"
)

var defaultConfig = map[string]interface{}{
	ResultFormat:  "%g",
	HistoryFile:   "",
	ListenAddress: "",
}

var logger = logutil.GetLogger("scicalc")

func main() {
	var (
		inname, verb, confname, addr string
		with                         [][2]string
		echo, verbose                bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file, one expression per line (- for stdin)")
	flag.StringVar(&verb, "fmt", "", "result formatting string (default %g)")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&echo, "echo", false, "print parse trees")
	flag.StringVar(&confname, "config", "", "JSON config file, created with defaults if missing")
	flag.StringVar(&addr, "serve", "", "serve websocket sessions on this address instead of reading input")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	var level logutil.Level = logutil.Info
	if verbose {
		level = logutil.Debug
	}
	logger.AddLogSink(level, logutil.SimpleFormatter(), os.Stderr)

	conf := defaultConfig
	if confname != "" {
		var err error
		conf, err = fileutil.LoadConfig(confname, defaultConfig)
		if err != nil {
			fatal("loading config: ", err)
		}
		logger.Debug("loaded config from ", confname)
	}
	if verb == "" {
		verb = fileutil.ConfStr(conf, ResultFormat)
	}
	if addr == "" {
		addr = fileutil.ConfStr(conf, ListenAddress)
	}

	ctx, err := given(with)
	if err != nil {
		fatal(err)
	}

	if addr != "" {
		serve(addr, verb, with)
		return
	}

	var log logutil.Logger
	if verbose {
		log = logger
	}
	if err := run(ctx, inname, fileutil.ConfStr(conf, HistoryFile), verb, echo, log); err != nil {
		fatal(err)
	}
}

func fatal(msg ...interface{}) {
	logger.Error(msg...)
	os.Exit(1)
}

// given creates the session context with the -given definitions. Each value
// is evaluated as an expression on its own.
func given(with [][2]string) (*scicalc.Context, error) {
	ctx := scicalc.NewContext()
	errs := errorutil.NewCompositeError()
	for _, d := range with {
		nm, vl := d[0], d[1]
		r, err := scicalc.EvalString(vl)
		if err != nil {
			errs.Add(fmt.Errorf("setting %s: %w", nm, err))
			continue
		}
		if err := ctx.Assign(nm, r); err != nil {
			errs.Add(fmt.Errorf("setting %s: %w", nm, err))
		}
	}
	if errs.HasErrors() {
		return nil, errs
	}
	return ctx, nil
}

// serve runs the websocket server. Every connection starts with the -given
// definitions.
func serve(addr, verb string, with [][2]string) {
	var opts []scicalc.ContextOption
	for _, d := range with {
		// Already checked by given.
		r, _ := scicalc.EvalString(d[1])
		opts = append(opts, scicalc.SetVar(d[0], r))
	}
	h := wscalc.NewHandler(opts...)
	h.Format = verb
	h.Log = logger
	mux := http.NewServeMux()
	mux.Handle("/calc", h)
	logger.Info("serving websocket sessions on ", addr, "/calc")
	fatal(http.ListenAndServe(addr, mux))
}

// run reads lines from the input file and the command line arguments, or
// from an interactive terminal if there are neither.
func run(ctx *scicalc.Context, inname, histfile, verb string, echo bool, log logutil.Logger) error {
	term, err := termutil.NewConsoleLineTerminal(os.Stdout)
	if err != nil {
		return err
	}
	in, closeInput, err := input(inname, flag.Args())
	if err != nil {
		return err
	}
	if in != nil {
		// The wrapper reads all of its input up front.
		term, err = termutil.AddFileReadingWrapper(term, in, true)
		if cerr := closeInput(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	} else {
		if term, err = termutil.AddHistoryMixin(term, histfile, isExit); err != nil {
			return err
		}
		words := append(ctx.Vars(), scicalc.AnsName)
		for _, f := range ctx.Funcs() {
			words = append(words, f+"(")
		}
		if term, err = termutil.AddAutoCompleteMixin(term, termutil.NewWordListDict(words)); err != nil {
			return err
		}
		if err := term.StartTerm(); err != nil {
			return err
		}
		defer term.StopTerm()
		term.WriteString("scicalc: type exit to quit\n")
	}

	s := repl.New(ctx, term, verb, echo, log)
	for {
		line, err := term.NextLine()
		if err != nil {
			return err
		}
		if !s.Line(line) {
			return nil
		}
	}
}

func isExit(line string) bool {
	return strings.EqualFold(strings.TrimSpace(line), "exit")
}

// input opens the batch input, or returns nil if input is interactive. The
// returned close function is never nil.
func input(inname string, args []string) (io.Reader, func() error, error) {
	var rs []io.Reader
	closer := func() error { return nil }
	switch inname {
	case "":
	case "-":
		rs = append(rs, os.Stdin)
	default:
		f, err := os.Open(inname)
		if err != nil {
			return nil, closer, err
		}
		rs = append(rs, f)
		closer = f.Close
	}
	if len(args) > 0 {
		if len(rs) > 0 {
			rs = append(rs, strings.NewReader("\n"))
		}
		rs = append(rs, strings.NewReader(strings.Join(args, "\n")))
	}
	if len(rs) == 0 {
		return nil, closer, nil
	}
	return io.MultiReader(rs...), closer, nil
}
