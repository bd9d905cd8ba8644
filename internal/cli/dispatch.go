package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/erlcall/internal/config"
	"github.com/roach88/erlcall/internal/journal"
	"github.com/roach88/erlcall/internal/rpc"
	"github.com/roach88/erlcall/internal/term"
)

// runTokens is the single dispatch path shared by both invocation forms.
// It always writes exactly one envelope line to stdout; failures are
// additionally signalled to main through an ExitError.
func runTokens(opts *RootOptions, tokens []string, cmd *cobra.Command) error {
	env := execute(cmd.Context(), opts, tokens)
	return emit(env, cmd)
}

func emit(env Envelope, cmd *cobra.Command) error {
	if err := env.Write(cmd.OutOrStdout()); err != nil {
		return NewExitError(ExitFailure, err.Error())
	}
	if env.Failed {
		return NewExitError(ExitFailure, env.Msg)
	}
	return nil
}

// execute maps the token list to a result envelope: parse, apply host
// defaults, validate, dispatch once, journal.
func execute(ctx context.Context, opts *RootOptions, tokens []string) Envelope {
	cfg, err := config.ParseModuleArgs(tokens)
	if err != nil {
		return FailedEnvelope(err.Error())
	}

	defaults, err := config.LoadDefaults(opts.getenv())
	if err != nil {
		return FailedEnvelope(err.Error())
	}
	defaults.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return FailedEnvelope(err.Error())
	}

	dispatcher := &rpc.Dispatcher{
		Erl:        defaults.Erl,
		NameDomain: defaults.NameDomain,
		Runner:     opts.runner(),
		Namer:      opts.namer(),
	}
	outcome := dispatcher.Call(ctx, cfg)

	recordOutcome(ctx, defaults.Journal, cfg, outcome)

	if outcome.OK {
		return ChangedEnvelope(outcome.Msg)
	}
	return FailedEnvelope(outcome.Msg)
}

// recordOutcome appends the invocation to the journal when one is
// configured. Journal trouble is logged and otherwise ignored: the call
// already happened and its result must reach Ansible unchanged.
func recordOutcome(ctx context.Context, path string, cfg *config.InvocationConfig, outcome rpc.Outcome) {
	if path == "" {
		return
	}

	j, err := journal.Open(path)
	if err != nil {
		slog.Warn("journal unavailable", "path", path, "error", err)
		return
	}
	defer func() {
		if err := j.Close(); err != nil {
			slog.Warn("journal close failed", "path", path, "error", err)
		}
	}()

	timeoutMS := cfg.Timeout.Millis
	if cfg.Timeout.Infinite {
		timeoutMS = -1
	}
	_, err = j.Record(ctx, journal.Entry{
		Node:      cfg.Node,
		Module:    cfg.Module,
		Function:  cfg.Function,
		Args:      term.Render(cfg.Args),
		TimeoutMS: timeoutMS,
		Status:    outcome.Status(),
		Msg:       outcome.Msg,
		Duration:  outcome.Duration,
	})
	if err != nil {
		slog.Warn("journal write failed", "path", path, "error", err)
	}
}
