// Package dialect reads the engine's textual rule notation into value
// blocks. The notation is what the CLI and the conformance harness use;
// embedders building rules in Go can skip it entirely.
//
//	[some "a" | collect [keep across some digit] , <end>]
//
// Supported literals: words, set-words (x:), datatype words (integer!),
// typeset words (any-series!), tags (<here>), strings ("..."), chars
// (#"a"), binaries (#{DEADBEEF}), integers, true/false, null, quoted
// values ('x), groups ( ... ), and get-groups :( ... ). Semicolon
// comments run to end of line.
package dialect

import (
	"fmt"
	"strings"

	"github.com/roach88/matcha/internal/value"
)

// Error is a read error with a 1-based source position.
type Error struct {
	Line    int
	Col     int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// Read parses rule text into a block.
func Read(src string) (value.Block, error) {
	r := &reader{src: []rune(src), line: 1, col: 1}
	blk, err := r.readSeq(0)
	if err != nil {
		return nil, err
	}
	return blk, nil
}

type reader struct {
	src  []rune
	pos  int
	line int
	col  int
}

func (r *reader) errorf(format string, args ...any) *Error {
	return &Error{Line: r.line, Col: r.col, Message: fmt.Sprintf(format, args...)}
}

func (r *reader) eof() bool { return r.pos >= len(r.src) }

func (r *reader) peek() rune {
	if r.eof() {
		return 0
	}
	return r.src[r.pos]
}

func (r *reader) peekAt(off int) rune {
	if r.pos+off >= len(r.src) {
		return 0
	}
	return r.src[r.pos+off]
}

func (r *reader) next() rune {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c
}

func (r *reader) skipSpace() {
	for !r.eof() {
		c := r.peek()
		switch {
		case c == ';':
			for !r.eof() && r.peek() != '\n' {
				r.next()
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			r.next()
		default:
			return
		}
	}
}

// readSeq reads values until the terminator (0 means end of input).
func (r *reader) readSeq(term rune) (value.Block, error) {
	var out value.Block
	for {
		r.skipSpace()
		if r.eof() {
			if term != 0 {
				return nil, r.errorf("unexpected end of input, expected %q", term)
			}
			return out, nil
		}
		if term != 0 && r.peek() == term {
			r.next()
			return out, nil
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func (r *reader) readValue() (value.Value, error) {
	c := r.peek()
	switch {
	case c == '[':
		r.next()
		return r.readSeq(']')
	case c == '(':
		r.next()
		body, err := r.readSeq(')')
		if err != nil {
			return nil, err
		}
		return value.Group{Body: body}, nil
	case c == ':' && r.peekAt(1) == '(':
		r.next()
		r.next()
		body, err := r.readSeq(')')
		if err != nil {
			return nil, err
		}
		return value.GetGroup{Body: body}, nil
	case c == ']' || c == ')':
		return nil, r.errorf("unexpected %q", c)
	case c == '"':
		return r.readText()
	case c == '#':
		return r.readHash()
	case c == '<':
		return r.readTag()
	case c == '\'':
		r.next()
		r.skipSpace()
		if r.eof() {
			return nil, r.errorf("quote at end of input")
		}
		v, err := r.readValue()
		if err != nil {
			return nil, err
		}
		return value.Quoted{V: v}, nil
	case c == '|':
		r.next()
		if r.peek() == '|' {
			r.next()
			return value.Word("||"), nil
		}
		return value.Word("|"), nil
	case c == ',':
		r.next()
		return value.Word(","), nil
	case c >= '0' && c <= '9':
		return r.readInt()
	case (c == '-' || c == '+') && r.peekAt(1) >= '0' && r.peekAt(1) <= '9':
		return r.readInt()
	case isWordStart(c):
		return r.readWord()
	default:
		return nil, r.errorf("unexpected character %q", c)
	}
}

func (r *reader) readText() (value.Value, error) {
	r.next() // opening quote
	var sb strings.Builder
	for {
		if r.eof() {
			return nil, r.errorf("unterminated string")
		}
		c := r.next()
		switch c {
		case '"':
			return value.Text(sb.String()), nil
		case '\\':
			esc, err := r.readEscape()
			if err != nil {
				return nil, err
			}
			sb.WriteRune(esc)
		default:
			sb.WriteRune(c)
		}
	}
}

func (r *reader) readEscape() (rune, error) {
	if r.eof() {
		return 0, r.errorf("unterminated escape")
	}
	switch c := r.next(); c {
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	default:
		return 0, r.errorf("unknown escape \\%c", c)
	}
}

func (r *reader) readHash() (value.Value, error) {
	r.next() // '#'
	switch r.peek() {
	case '"':
		r.next()
		if r.eof() {
			return nil, r.errorf("unterminated char")
		}
		c := r.next()
		if c == '\\' {
			esc, err := r.readEscape()
			if err != nil {
				return nil, err
			}
			c = esc
		}
		if r.eof() || r.next() != '"' {
			return nil, r.errorf("char literal must hold exactly one character")
		}
		return value.Char(c), nil
	case '{':
		r.next()
		var digits []rune
		for {
			if r.eof() {
				return nil, r.errorf("unterminated binary")
			}
			c := r.next()
			if c == '}' {
				break
			}
			if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
				continue
			}
			if !isHexDigit(c) {
				return nil, r.errorf("invalid hex digit %q in binary", c)
			}
			digits = append(digits, c)
		}
		if len(digits)%2 != 0 {
			return nil, r.errorf("binary literal needs an even number of hex digits")
		}
		out := make(value.Binary, len(digits)/2)
		for i := 0; i < len(digits); i += 2 {
			out[i/2] = byte(hexVal(digits[i])<<4 | hexVal(digits[i+1]))
		}
		return out, nil
	default:
		return nil, r.errorf("expected #\"char\" or #{binary}")
	}
}

func (r *reader) readTag() (value.Value, error) {
	r.next() // '<'
	var sb strings.Builder
	for {
		if r.eof() {
			return nil, r.errorf("unterminated tag")
		}
		c := r.next()
		if c == '>' {
			if sb.Len() == 0 {
				return nil, r.errorf("empty tag")
			}
			return value.Tag(sb.String()), nil
		}
		if !isWordPart(c) {
			return nil, r.errorf("invalid character %q in tag", c)
		}
		sb.WriteRune(c)
	}
}

func (r *reader) readInt() (value.Value, error) {
	var sb strings.Builder
	if c := r.peek(); c == '-' || c == '+' {
		sb.WriteRune(r.next())
	}
	for !r.eof() && r.peek() >= '0' && r.peek() <= '9' {
		sb.WriteRune(r.next())
	}
	var n int64
	if _, err := fmt.Sscanf(sb.String(), "%d", &n); err != nil {
		return nil, r.errorf("bad integer %q", sb.String())
	}
	return value.Int(n), nil
}

func (r *reader) readWord() (value.Value, error) {
	var sb strings.Builder
	sb.WriteRune(r.next())
	for !r.eof() && isWordPart(r.peek()) {
		sb.WriteRune(r.next())
	}
	w := sb.String()

	// Set-word: trailing colon.
	if !r.eof() && r.peek() == ':' {
		r.next()
		return value.SetWord(w), nil
	}

	switch w {
	case "true":
		return value.Logic(true), nil
	case "false":
		return value.Logic(false), nil
	case "null":
		return value.Null{}, nil
	}

	// Datatype and typeset words end in '!'.
	if strings.HasSuffix(w, "!") {
		if k, ok := value.KindByName(w); ok {
			return value.Datatype(k), nil
		}
		if ts, ok := value.TypesetByName(w); ok {
			return ts, nil
		}
		return nil, r.errorf("unknown datatype %q", w)
	}
	return value.Word(w), nil
}

func isWordStart(c rune) bool {
	return c == '_' || c == '-' || c == '+' || c == '*' || c == '?' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordPart(c rune) bool {
	return isWordStart(c) || c == '!' || (c >= '0' && c <= '9')
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}
