package term

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseError reports a syntax error and the byte offset where it occurred.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid term at offset %d: %s", e.Offset, e.Message)
}

// Parse parses a single Erlang term literal from input.
// Trailing non-whitespace input after the term is an error.
func Parse(input string) (Term, error) {
	p := &parser{input: input}
	p.skipSpace()
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected input after term")
	}
	return t, nil
}

// ParseList parses input and requires the result to be a list.
// An empty or all-whitespace input yields an empty list, which keeps
// args= optional for zero-argument calls.
func ParseList(input string) (List, error) {
	if strings.TrimSpace(input) == "" {
		return List{}, nil
	}
	t, err := Parse(input)
	if err != nil {
		return nil, err
	}
	l, ok := t.(List)
	if !ok {
		return nil, &ParseError{Offset: 0, Message: "call arguments must be a list, e.g. [foo, \"bar\", 42]"}
	}
	return l, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Offset: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(s string) error {
	if !strings.HasPrefix(p.input[p.pos:], s) {
		return p.errorf("expected %q", s)
	}
	p.pos += len(s)
	return nil
}

func (p *parser) parseTerm() (Term, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}
	c := p.peek()
	switch {
	case c == '[':
		return p.parseList()
	case c == '{':
		return p.parseTuple()
	case c == '#':
		return p.parseMap()
	case c == '<':
		return p.parseBinary()
	case c == '"':
		s, err := p.parseQuoted('"')
		if err != nil {
			return nil, err
		}
		return Str(s), nil
	case c == '\'':
		s, err := p.parseQuoted('\'')
		if err != nil {
			return nil, err
		}
		return Atom(s), nil
	case c == '$':
		return p.parseChar()
	case c == '-' || c == '+' || isDigit(c):
		return p.parseNumber()
	case isAtomStart(c):
		return p.parseBareAtom(), nil
	default:
		return nil, p.errorf("unexpected character %q", c)
	}
}

func (p *parser) parseList() (Term, error) {
	elems, err := p.parseSeq('[', ']')
	if err != nil {
		return nil, err
	}
	return List(elems), nil
}

func (p *parser) parseTuple() (Term, error) {
	elems, err := p.parseSeq('{', '}')
	if err != nil {
		return nil, err
	}
	return Tuple(elems), nil
}

// parseSeq parses a comma-separated sequence of terms between open and close.
func (p *parser) parseSeq(open, close byte) ([]Term, error) {
	if err := p.expect(string(open)); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == close {
		p.pos++
		return nil, nil
	}
	var elems []Term
	for {
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		elems = append(elems, t)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case close:
			p.pos++
			return elems, nil
		default:
			return nil, p.errorf("expected %q or %q", ",", string(close))
		}
	}
}

func (p *parser) parseMap() (Term, error) {
	if err := p.expect("#{"); err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.peek() == '}' {
		p.pos++
		return Map{}, nil
	}
	var m Map
	for {
		k, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if err := p.expect("=>"); err != nil {
			return nil, err
		}
		v, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		m = append(m, Pair{Key: k, Value: v})
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return m, nil
		default:
			return nil, p.errorf(`expected "," or "}"`)
		}
	}
}

// parseBinary handles <<>>, <<"text">> and <<1,2,3>> forms, including
// mixtures such as <<"ab", 0, "cd">>. Size and type specifiers are not
// literals we accept.
func (p *parser) parseBinary() (Term, error) {
	if err := p.expect("<<"); err != nil {
		return nil, err
	}
	p.skipSpace()
	var buf []byte
	if p.peek() == '>' {
		if err := p.expect(">>"); err != nil {
			return nil, err
		}
		return Binary(buf), nil
	}
	for {
		p.skipSpace()
		switch {
		case p.peek() == '"':
			s, err := p.parseQuoted('"')
			if err != nil {
				return nil, err
			}
			buf = append(buf, s...)
		case p.peek() == '-' || p.peek() == '+' || isDigit(p.peek()):
			t, err := p.parseNumber()
			if err != nil {
				return nil, err
			}
			n, ok := t.(Int)
			if !ok || n < 0 || n > 255 {
				return nil, p.errorf("binary segment must be an integer in 0..255")
			}
			buf = append(buf, byte(n))
		default:
			return nil, p.errorf("expected string or integer binary segment")
		}
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			if err := p.expect(">>"); err != nil {
				return nil, err
			}
			return Binary(buf), nil
		default:
			return nil, p.errorf(`expected "," or ">>"`)
		}
	}
}

// parseQuoted reads a quote-delimited run (strings and quoted atoms share
// the same escape handling, only the delimiter differs).
func (p *parser) parseQuoted(quote byte) (string, error) {
	p.pos++ // opening quote
	var b strings.Builder
	for {
		if p.eof() {
			return "", p.errorf("unterminated %q", string(quote))
		}
		c := p.input[p.pos]
		switch c {
		case quote:
			p.pos++
			return b.String(), nil
		case '\\':
			p.pos++
			if p.eof() {
				return "", p.errorf("unterminated escape")
			}
			b.WriteByte(unescape(p.input[p.pos]))
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
}

// parseChar handles $c character literals, which evaluate to integers.
func (p *parser) parseChar() (Term, error) {
	p.pos++ // '$'
	if p.eof() {
		return nil, p.errorf("unterminated character literal")
	}
	if p.input[p.pos] == '\\' {
		p.pos++
		if p.eof() {
			return nil, p.errorf("unterminated escape")
		}
		c := unescape(p.input[p.pos])
		p.pos++
		return Int(c), nil
	}
	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	return Int(r), nil
}

func (p *parser) parseNumber() (Term, error) {
	start := p.pos
	if c := p.peek(); c == '-' || c == '+' {
		p.pos++
	}
	if !isDigit(p.peek()) {
		return nil, p.errorf("expected digit")
	}
	for isDigit(p.peek()) {
		p.pos++
	}

	// base#digits radix form, e.g. 16#ff
	if p.peek() == '#' {
		numText := p.input[start:p.pos]
		neg := strings.HasPrefix(numText, "-")
		base, err := strconv.ParseInt(strings.TrimLeft(numText, "+-"), 10, 64)
		if err != nil || base < 2 || base > 36 {
			return nil, p.errorf("invalid radix")
		}
		p.pos++
		dstart := p.pos
		for isBaseDigit(p.peek(), int(base)) {
			p.pos++
		}
		if p.pos == dstart {
			return nil, p.errorf("expected base-%d digits", base)
		}
		n, err := strconv.ParseInt(p.input[dstart:p.pos], int(base), 64)
		if err != nil {
			return nil, p.errorf("integer out of range")
		}
		if neg {
			n = -n
		}
		return Int(n), nil
	}

	// float needs a '.' followed by a digit; a bare trailing '.' is the
	// expression terminator, not part of the number
	isFloat := false
	if p.peek() == '.' && p.pos+1 < len(p.input) && isDigit(p.input[p.pos+1]) {
		isFloat = true
		p.pos++
		for isDigit(p.peek()) {
			p.pos++
		}
	}
	if isFloat && (p.peek() == 'e' || p.peek() == 'E') {
		p.pos++
		if c := p.peek(); c == '-' || c == '+' {
			p.pos++
		}
		if !isDigit(p.peek()) {
			return nil, p.errorf("expected exponent digits")
		}
		for isDigit(p.peek()) {
			p.pos++
		}
	}

	text := p.input[start:p.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, p.errorf("invalid float %q", text)
		}
		return Float(f), nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, p.errorf("integer out of range: %q", text)
	}
	return Int(n), nil
}

func (p *parser) parseBareAtom() Atom {
	start := p.pos
	for !p.eof() && isAtomChar(p.input[p.pos]) {
		p.pos++
	}
	return Atom(p.input[start:p.pos])
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'b':
		return '\b'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case '0':
		return 0
	case 'e':
		return 0x1b
	default:
		// \\, \', \" and anything else map to the character itself
		return c
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isBaseDigit(c byte, base int) bool {
	var v int
	switch {
	case c >= '0' && c <= '9':
		v = int(c - '0')
	case c >= 'a' && c <= 'z':
		v = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		v = int(c-'A') + 10
	default:
		return false
	}
	return v < base
}

func isAtomStart(c byte) bool {
	return c >= 'a' && c <= 'z'
}

func isAtomChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || isDigit(c) || c == '_' || c == '@'
}
