package rpc

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// RunResult is the observable outcome of one subprocess run.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int

	// Err is set when the process could not be started or was cut short
	// by the context; it is nil for a process that ran to completion,
	// even with a non-zero exit code.
	Err error
}

// Runner executes one command to completion with fully buffered output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) RunResult
}

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) RunResult {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := RunResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.Err = ctxErr
		return res
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res
	}
	res.Err = err
	return res
}
