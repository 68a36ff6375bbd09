package scicalc

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/krotik/common/errorutil"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a numeric literal.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open paren.
	tokenOpen
	// tokenClose is a close paren.
	tokenClose
	// tokenSep is the function arguments separator.
	tokenSep
	// tokenAssign is the assignment sign.
	tokenAssign
)

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=tokenKind -trimprefix=token
//go:generate go mod tidy

// Operators contains the runes which begin operator tokens. The only
// operator longer than one rune is "//", floor division.
const Operators = "+-*/%^!"

// punct maps the single-rune tokens other than operators to their kinds.
var punct = map[rune]tokenKind{
	'(': tokenOpen,
	')': tokenClose,
	',': tokenSep,
	'=': tokenAssign,
}

// terminates reports whether r ends a number or identifier without being part
// of it.
func terminates(r rune) bool {
	_, ok := punct[r]
	return ok || unicode.IsSpace(r) || strings.ContainsRune(Operators, r)
}

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
	p    lexToken
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{
		src:  src,
		rune: 1,
	}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	errorutil.AssertTrue(l.p.kind == tokenNone, "scicalc: double push")
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	errorutil.AssertTrue(tok.kind != tokenNone, "scicalc: no pushed token")
	l.p = lexToken{}
	return tok
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	errorutil.AssertOk(l.src.UnreadRune())
	l.rune--
}

// next scans the next token from the input. The first time EOF is encountered,
// the result is an EOF token with a nil error. Subsequent times, if the EOF
// token is not pushed, the result is an empty token with io.EOF.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	if l.eof {
		return lexToken{}, io.EOF
	}
	defer l.buf.Reset()
	tok := lexToken{pos: l.rune}
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				tok.kind = tokenEOF
				l.eof = true
				return tok, nil
			}
			return tok, err
		}
		switch {
		case unicode.IsSpace(r):
			tok.pos++
			continue
		case '0' <= r && r <= '9', r == '.':
			l.unreadRune()
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.text, tok.kind = l.buf.String(), tokenNum
			return tok, nil
		case isLetter(r):
			l.buf.WriteRune(r)
			if err := l.scanIdent(); err != nil {
				return tok, err
			}
			tok.text, tok.kind = l.buf.String(), tokenIdent
			return tok, nil
		case r == '/':
			tok.text, tok.kind = "/", tokenOp
			if ok, err := l.accept(oneOf("/")); err != nil {
				return tok, err
			} else if ok {
				tok.text = "//"
			}
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.text, tok.kind = string(r), tokenOp
			return tok, nil
		}
		if k, ok := punct[r]; ok {
			tok.text, tok.kind = string(r), k
			return tok, nil
		}
		// Write the rune so that it shows up in the error message.
		l.buf.WriteRune(r)
		return tok, l.error("")
	}
}

// accept scans the next rune into the buffer if it satisfies pred. EOF is
// not an error.
func (l *lexer) accept(pred func(rune) bool) (bool, error) {
	r, err := l.readRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	if !pred(r) {
		l.unreadRune()
		return false, nil
	}
	l.buf.WriteRune(r)
	return true, nil
}

func oneOf(set string) func(rune) bool {
	return func(r rune) bool { return strings.ContainsRune(set, r) }
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// digits scans a run of decimal digits and returns its length.
func (l *lexer) digits() (int, error) {
	n := 0
	for {
		ok, err := l.accept(isDigit)
		if err != nil || !ok {
			return n, err
		}
		n++
	}
}

// scanNum scans a literal in three parts: integer digits, an optional
// fraction, and an optional exponent with an optional sign. The integer and
// fraction together need at least one digit, and an exponent needs at least
// one digit.
func (l *lexer) scanNum() error {
	n, err := l.digits()
	if err != nil {
		return err
	}
	if ok, err := l.accept(oneOf(".")); err != nil {
		return err
	} else if ok {
		m, err := l.digits()
		if err != nil {
			return err
		}
		n += m
	}
	if n == 0 {
		return l.endNum(false)
	}
	if ok, err := l.accept(oneOf("eE")); err != nil {
		return err
	} else if ok {
		if _, err := l.accept(oneOf("+-")); err != nil {
			return err
		}
		m, err := l.digits()
		if err != nil {
			return err
		}
		if m == 0 {
			return l.endNum(false)
		}
	}
	return l.endNum(true)
}

// endNum checks the rune after a number. Any rune that does not terminate
// the number makes it invalid and is included in the error.
func (l *lexer) endNum(valid bool) error {
	r, err := l.readRune()
	switch {
	case errors.Is(err, io.EOF):
	case err != nil:
		return err
	case terminates(r):
		l.unreadRune()
	default:
		l.buf.WriteRune(r)
		valid = false
	}
	if !valid {
		return l.error("number")
	}
	return nil
}

// scanIdent scans the rest of an identifier after its first letter.
func (l *lexer) scanIdent() error {
	for {
		ok, err := l.accept(isIdent)
		if err != nil || !ok {
			return err
		}
	}
}

// isLetter reports whether r may begin an identifier. Identifiers are ASCII.
func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isIdent(r rune) bool {
	return isLetter(r) || isDigit(r) || r == '_' || r == '.'
}

func (l *lexer) error(kind string) error {
	return &LexError{
		Text:     l.buf.String(),
		Scanning: kind,
		Col:      l.rune - 1,
	}
}
