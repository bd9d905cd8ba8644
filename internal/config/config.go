// Package config turns the module's key=value argument tokens and the
// optional host defaults file into one InvocationConfig.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/erlcall/internal/term"
)

// DefaultTimeoutMillis is applied when neither the module arguments nor
// the defaults file specify a timeout.
const DefaultTimeoutMillis = 5000

// ErrNoArguments is returned when the token list is empty. Ansible always
// passes at least one key, so an empty list means the module was invoked
// by hand without arguments.
var ErrNoArguments = errors.New("no arguments were supplied")

// ArgumentError reports a module argument that could not be parsed.
type ArgumentError struct {
	Key     string
	Message string
	Err     error
}

func (e *ArgumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("argument %q: %s: %v", e.Key, e.Message, e.Err)
	}
	return fmt.Sprintf("argument %q: %s", e.Key, e.Message)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// Timeout is the call timeout: either a bound in milliseconds or
// unbounded when Infinite is set.
type Timeout struct {
	Infinite bool
	Millis   int64
}

// Term renders the timeout as the rpc:call timeout argument.
func (t Timeout) Term() term.Term {
	if t.Infinite {
		return term.Atom("infinity")
	}
	return term.Int(t.Millis)
}

// InvocationConfig describes exactly one remote call. It is built once
// per process invocation and never mutated afterwards.
type InvocationConfig struct {
	Node     string
	Module   string
	Function string
	Args     term.List
	Timeout  Timeout
	Cookie   string

	timeoutSet bool
	cookieSet  bool
}

// ParseModuleArgs consumes the ordered key=value tokens Ansible passes to
// the module. Recognized keys are node, module, function, args, timeout
// and cookie; unrecognized keys (and tokens without an '=') are silently
// ignored so plays can carry extra annotations. Later duplicates of a key
// overwrite earlier ones.
func ParseModuleArgs(tokens []string) (*InvocationConfig, error) {
	if len(tokens) == 0 {
		return nil, ErrNoArguments
	}

	cfg := &InvocationConfig{
		Args:    term.List{},
		Timeout: Timeout{Millis: DefaultTimeoutMillis},
	}
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			continue
		}
		switch key {
		case "node":
			cfg.Node = value
		case "module":
			cfg.Module = value
		case "function":
			cfg.Function = value
		case "args":
			list, err := term.ParseList(value)
			if err != nil {
				return nil, &ArgumentError{Key: "args", Message: "invalid term list", Err: err}
			}
			cfg.Args = list
		case "timeout":
			to, err := parseTimeout(value)
			if err != nil {
				return nil, err
			}
			cfg.Timeout = to
			cfg.timeoutSet = true
		case "cookie":
			cfg.Cookie = value
			cfg.cookieSet = true
		}
	}
	return cfg, nil
}

func parseTimeout(value string) (Timeout, error) {
	if value == "infinity" {
		return Timeout{Infinite: true}, nil
	}
	ms, err := strconv.ParseInt(value, 10, 64)
	if err != nil || ms < 0 {
		return Timeout{}, &ArgumentError{Key: "timeout", Message: `must be a non-negative integer or "infinity"`}
	}
	return Timeout{Millis: ms}, nil
}

// Validate checks the mandatory keys. It is called just before dispatch
// so that a play missing several keys reports all of them at once.
func (c *InvocationConfig) Validate() error {
	var missing []string
	if c.Node == "" {
		missing = append(missing, "node")
	}
	if c.Module == "" {
		missing = append(missing, "module")
	}
	if c.Function == "" {
		missing = append(missing, "function")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing mandatory arguments: %s", strings.Join(missing, ", "))
	}
	return nil
}
