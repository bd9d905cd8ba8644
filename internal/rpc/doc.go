// Package rpc dispatches one synchronous remote call against a running
// Erlang node.
//
// The distribution protocol, node discovery and call semantics all belong
// to the Erlang runtime: the dispatcher builds an `erl -hidden -noshell`
// command line whose -eval expression performs rpc:call/5 and prints the
// result, runs it once, and classifies the outcome. There are no retries
// and no state beyond the single subprocess.
//
// Process execution sits behind the Runner interface and ephemeral node
// naming behind NodeNamer, so tests can observe the exact command line
// and substitute canned results without an Erlang installation.
package rpc
