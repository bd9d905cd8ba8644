package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/erlcall/internal/rpc"
)

// RootOptions holds global flags plus the seams tests use to substitute
// the process runner, node naming and environment lookup.
type RootOptions struct {
	Verbose bool

	// Runner executes the Erlang runtime. Nil means rpc.ExecRunner.
	Runner rpc.Runner

	// Namer derives the ephemeral node name. Nil means rpc.ProcessNamer.
	Namer rpc.NodeNamer

	// Getenv resolves environment variables. Nil means os.Getenv.
	Getenv func(string) string
}

func (o *RootOptions) runner() rpc.Runner {
	if o.Runner != nil {
		return o.Runner
	}
	return rpc.ExecRunner{}
}

func (o *RootOptions) namer() rpc.NodeNamer {
	if o.Namer != nil {
		return o.Namer
	}
	return rpc.ProcessNamer{}
}

func (o *RootOptions) getenv() func(string) string {
	if o.Getenv != nil {
		return o.Getenv
	}
	return os.Getenv
}

// NewRootCommand creates the root command for the erlcall module.
//
// The root form takes the path of an Ansible arguments file: its contents
// are split into words with POSIX shell quoting rules and fed through the
// same path as the `args` subcommand, so both forms print byte-identical
// envelopes. The historical trick of re-invoking the binary through a
// shell just for tokenization is gone.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "erlcall <args-file>",
		Short: "Perform one RPC against a running Erlang node",
		Long: `erlcall is an Ansible local_action module. It parses key=value module
arguments, starts an ephemeral hidden Erlang node to join the target's
cluster, performs exactly one rpc:call with a timeout, and prints an
Ansible-compatible JSON result line on stdout.

Recognized keys: node, module, function, args, timeout, cookie.

Example arguments file:
  node=rabbit@db1 module=rabbit_amqqueue function=info_all args=[pool] timeout=10000`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(opts.Verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArgsFile(opts, args[0], cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging on stderr")

	cmd.AddCommand(NewArgsCommand(opts))

	return cmd
}

// configureLogging sends slog output to stderr so stdout stays reserved
// for the result envelope.
func configureLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
