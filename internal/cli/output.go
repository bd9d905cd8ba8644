package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes. Ansible treats any non-zero exit as a module failure, so
// the taxonomy stays flat.
const (
	ExitSuccess = 0 // RPC performed, result in the changed envelope
	ExitFailure = 1 // any failure (bad arguments, unreachable node, timeout)
)

// Envelope is the single JSON line the module prints on stdout. Exactly
// one of Changed/Failed is set.
//
// The original module escaped only double quotes when building this by
// hand; going through encoding/json escapes everything JSON requires.
type Envelope struct {
	Changed bool   `json:"changed,omitempty"`
	Failed  bool   `json:"failed,omitempty"`
	Msg     string `json:"msg"`
}

// ChangedEnvelope reports a successful call with the formatted result.
func ChangedEnvelope(msg string) Envelope {
	return Envelope{Changed: true, Msg: msg}
}

// FailedEnvelope reports any failure with the formatted error.
func FailedEnvelope(msg string) Envelope {
	return Envelope{Failed: true, Msg: msg}
}

// ExitCode returns the process exit code matching the envelope.
func (e Envelope) ExitCode() int {
	if e.Failed {
		return ExitFailure
	}
	return ExitSuccess
}

// Write emits the envelope as one newline-terminated JSON line.
// HTML escaping is disabled: Erlang terms are full of < and > (pids,
// binaries) and Ansible reads the line as plain JSON.
func (e Envelope) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("write result envelope: %w", err)
	}
	return nil
}

// ExitError carries a specific exit code out of a RunE function.
// The envelope has already been written when an ExitError is returned, so
// main must not print anything further for it.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure for any error that is not an ExitError and
// ExitSuccess for nil.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
