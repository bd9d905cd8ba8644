package term

// Term is a sealed interface representing an Erlang term literal.
// Only Atom, Str, Int, Float, Binary, List, Tuple, and Map implement it.
// Erlang booleans are the atoms 'true' and 'false', so there is no
// dedicated bool type.
type Term interface {
	term() // Sealed - only these types implement it
}

// Atom represents an Erlang atom. The value is the atom text without
// quotes; Render decides whether quoting is required.
type Atom string

func (Atom) term() {}

// Str represents an Erlang double-quoted string literal.
//
// Erlang strings are lists of character codes; we keep the textual form
// because the value is only ever rendered back into Erlang source.
type Str string

func (Str) term() {}

// Int represents an Erlang integer. Always int64.
type Int int64

func (Int) term() {}

// Float represents an Erlang float.
type Float float64

func (Float) term() {}

// Binary represents an Erlang binary literal such as <<"abc">> or <<1,2,3>>.
type Binary []byte

func (Binary) term() {}

// List represents an Erlang list of terms.
type List []Term

func (List) term() {}

// Tuple represents an Erlang tuple of terms.
type Tuple []Term

func (Tuple) term() {}

// Pair is one association of a Map. Order of pairs is preserved so that
// rendering reproduces the source order.
type Pair struct {
	Key   Term
	Value Term
}

// Map represents an Erlang map literal #{K => V, ...}.
type Map []Pair

func (Map) term() {}
