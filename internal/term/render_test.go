package term

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   Term
		want string
	}{
		{"bare atom", Atom("ok"), "ok"},
		{"node atom stays bare", Atom("rabbit@db1"), "rabbit@db1"},
		{"atom needing quotes", Atom("hello world"), "'hello world'"},
		{"atom with quote", Atom("don't"), `'don\'t'`},
		{"uppercase start needs quotes", Atom("Error"), "'Error'"},
		{"string", Str("hi"), `"hi"`},
		{"string with escapes", Str("a\"b\\c\n"), `"a\"b\\c\n"`},
		{"integer", Int(-42), "-42"},
		{"float keeps decimal point", Float(1), "1.0"},
		{"float", Float(2.5), "2.5"},
		{"printable binary", Binary("abc"), `<<"abc">>`},
		{"raw binary", Binary{0, 1, 200}, "<<0,1,200>>"},
		{"empty binary", Binary(nil), "<<>>"},
		{"list", List{Atom("a"), Int(1)}, "[a,1]"},
		{"tuple", Tuple{Atom("ok"), Str("x")}, `{ok,"x"}`},
		{"map", Map{{Key: Atom("k"), Value: Int(1)}}, "#{k => 1}"},
		{"nested", List{Tuple{Atom("a"), List{Int(1)}}}, "[{a,[1]}]"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Render(tc.in))
		})
	}
}

// Rendered output is substituted into an -eval expression, so whatever we
// emit must parse back to an equal term.
func TestRenderRoundTrip(t *testing.T) {
	terms := []Term{
		Atom("ok"),
		Atom("with space"),
		Atom(`quo'te`),
		Str("line\nbreak"),
		Int(9007199254740993),
		Float(0.001),
		Binary("payload"),
		Binary{0xff, 0x00},
		List{Atom("a"), Tuple{Atom("b"), Int(2)}, Str("c")},
		Map{{Key: Str("k"), Value: List{Int(1), Int(2)}}},
	}
	for _, in := range terms {
		got, err := Parse(Render(in))
		require.NoError(t, err, "input %s", Render(in))
		// Empty containers normalize to nil slices on re-parse; none of the
		// fixtures are empty so direct equality holds.
		assert.Equal(t, in, got)
	}
}
