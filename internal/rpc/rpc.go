package rpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/roach88/erlcall/internal/config"
	"github.com/roach88/erlcall/internal/term"
)

// startupGrace is added on top of a finite rpc timeout as the subprocess
// deadline. rpc:call enforces the configured timeout itself; the grace
// only covers a VM that wedges before the call is even issued.
const startupGrace = 10 * time.Second

// Outcome is the classified result of one dispatch.
type Outcome struct {
	OK       bool
	Msg      string
	Duration time.Duration
}

// Status returns the journal status label for the outcome.
func (o Outcome) Status() string {
	if o.OK {
		return "ok"
	}
	return "failed"
}

// Dispatcher performs exactly one rpc:call through the Erlang runtime.
type Dispatcher struct {
	// Erl is the runtime binary, resolved via PATH if not absolute.
	Erl string

	// NameDomain is one of the config.NameDomain* values and controls
	// -sname vs -name for the ephemeral node.
	NameDomain string

	Runner Runner
	Namer  NodeNamer
	Logger *slog.Logger
}

// Call joins the target's distribution domain under an ephemeral hidden
// node and issues the configured call. One attempt, no retries.
func (d *Dispatcher) Call(ctx context.Context, cfg *config.InvocationConfig) Outcome {
	args := d.commandArgs(cfg)

	if !cfg.Timeout.Infinite {
		deadline := time.Duration(cfg.Timeout.Millis)*time.Millisecond + startupGrace
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	d.logger().Debug("dispatching rpc", "erl", d.Erl, "args", args)
	start := time.Now()
	res := d.Runner.Run(ctx, d.Erl, args...)
	elapsed := time.Since(start)
	d.logger().Debug("rpc finished", "exit", res.ExitCode, "err", res.Err, "duration", elapsed)

	return classify(cfg, res, elapsed)
}

// commandArgs builds the erl argument vector for the invocation.
func (d *Dispatcher) commandArgs(cfg *config.InvocationConfig) []string {
	args := []string{"-hidden", "-noshell", d.nameFlag(cfg.Node), d.Namer.NodeName()}
	if cfg.Cookie != "" {
		args = append(args, "-setcookie", cfg.Cookie)
	}
	return append(args, "-eval", evalExpr(cfg))
}

// nameFlag picks -sname or -name. In auto mode a dotted host part in the
// target means the cluster runs long names, and a hidden node can only
// connect when it uses the same name domain.
func (d *Dispatcher) nameFlag(target string) string {
	switch d.NameDomain {
	case config.NameDomainShort:
		return "-sname"
	case config.NameDomainLong:
		return "-name"
	}
	if _, host, ok := strings.Cut(target, "@"); ok && strings.Contains(host, ".") {
		return "-name"
	}
	return "-sname"
}

// evalExpr builds the expression the ephemeral node evaluates: perform
// the call, print the result in ~p form, and halt with an exit code that
// encodes success vs {badrpc, _}.
func evalExpr(cfg *config.InvocationConfig) string {
	return fmt.Sprintf(
		`Result = rpc:call(%s, %s, %s, %s, %s), io:format("~p", [Result]), case Result of {badrpc, _} -> halt(1); _ -> halt(0) end.`,
		term.Render(term.Atom(cfg.Node)),
		term.Render(term.Atom(cfg.Module)),
		term.Render(term.Atom(cfg.Function)),
		term.Render(cfg.Args),
		term.Render(cfg.Timeout.Term()),
	)
}

func classify(cfg *config.InvocationConfig, res RunResult, elapsed time.Duration) Outcome {
	out := Outcome{Duration: elapsed}

	switch {
	case errors.Is(res.Err, context.DeadlineExceeded):
		out.Msg = fmt.Sprintf("timeout: no answer from the erlang runtime within %dms (plus startup grace)", cfg.Timeout.Millis)
	case res.Err != nil:
		out.Msg = fmt.Sprintf("failed to run erlang runtime: %v", res.Err)
	case res.ExitCode == 0:
		out.OK = true
		out.Msg = string(res.Stdout)
	default:
		// The eval expression prints the {badrpc, Reason} term before
		// halting, so stdout is the most precise message we have.
		if len(res.Stdout) > 0 {
			out.Msg = string(res.Stdout)
		} else if stderr := strings.TrimSpace(string(res.Stderr)); stderr != "" {
			out.Msg = stderr
		} else {
			out.Msg = fmt.Sprintf("erlang runtime exited with status %d", res.ExitCode)
		}
	}
	return out
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
