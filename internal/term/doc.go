// Package term models Erlang term literals: the subset of Erlang source
// syntax that can appear in a module's args= value.
//
// The package provides three things:
//
//   - A sealed Term interface with one implementation per literal kind
//     (Atom, Str, Int, Float, Binary, List, Tuple, Map).
//   - Parse/ParseList, a recursive-descent parser for the literal grammar.
//   - Render, which converts a Term back to valid Erlang source text so
//     it can be substituted into an expression evaluated by the runtime.
//
// The grammar intentionally covers literals only. Variables, operators,
// comprehensions, pids and refs are not part of it: those cannot be
// written down as constant call arguments.
package term
