package term

import (
	"fmt"
	"strconv"
	"strings"
)

// Render converts a term back into Erlang source text. The output is
// always a valid literal that re-parses to an equal term, so it can be
// substituted directly into an expression handed to the runtime.
func Render(t Term) string {
	var b strings.Builder
	render(&b, t)
	return b.String()
}

func render(b *strings.Builder, t Term) {
	switch v := t.(type) {
	case Atom:
		renderAtom(b, string(v))
	case Str:
		renderQuoted(b, string(v), '"')
	case Int:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case Float:
		renderFloat(b, float64(v))
	case Binary:
		renderBinary(b, v)
	case List:
		renderSeq(b, []Term(v), '[', ']')
	case Tuple:
		renderSeq(b, []Term(v), '{', '}')
	case Map:
		renderMap(b, v)
	default:
		// Term is sealed; reaching this is a programming error.
		panic(fmt.Sprintf("term: cannot render %T", t))
	}
}

// renderAtom quotes the atom unless it matches the bare-atom grammar.
func renderAtom(b *strings.Builder, s string) {
	if isBareAtom(s) {
		b.WriteString(s)
		return
	}
	renderQuoted(b, s, '\'')
}

func isBareAtom(s string) bool {
	if s == "" || !isAtomStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAtomChar(s[i]) {
			return false
		}
	}
	return true
}

func renderQuoted(b *strings.Builder, s string, quote byte) {
	b.WriteByte(quote)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case quote, '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(quote)
}

// renderFloat always emits a form Erlang accepts as a float: the output
// must contain a '.' or an exponent ("1" is an integer to erl_scan).
func renderFloat(b *strings.Builder, f float64) {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	// Erlang requires a digit on both sides of the '.' in forms like 1e-5
	if strings.ContainsAny(s, "eE") && !strings.Contains(s, ".") {
		i := strings.IndexAny(s, "eE")
		s = s[:i] + ".0" + s[i:]
	}
	b.WriteString(s)
}

func renderBinary(b *strings.Builder, bin Binary) {
	if len(bin) == 0 {
		b.WriteString("<<>>")
		return
	}
	if isPrintable(bin) {
		b.WriteString("<<")
		renderQuoted(b, string(bin), '"')
		b.WriteString(">>")
		return
	}
	b.WriteString("<<")
	for i, c := range bin {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(c)))
	}
	b.WriteString(">>")
}

func isPrintable(bin []byte) bool {
	for _, c := range bin {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

func renderSeq(b *strings.Builder, elems []Term, open, close byte) {
	b.WriteByte(open)
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		render(b, e)
	}
	b.WriteByte(close)
}

func renderMap(b *strings.Builder, m Map) {
	b.WriteString("#{")
	for i, p := range m {
		if i > 0 {
			b.WriteByte(',')
		}
		render(b, p.Key)
		b.WriteString(" => ")
		render(b, p.Value)
	}
	b.WriteByte('}')
}
