package cli

import (
	"github.com/spf13/cobra"
)

// NewArgsCommand creates the `args` subcommand: the direct invocation
// form where the key=value tokens arrive pre-split on the command line.
func NewArgsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "args [key=value ...]",
		Short: "Direct form: pass module arguments on the command line",
		Long: `Perform the call with key=value tokens given directly.

Example:
  erlcall args node=rabbit@db1 module=rabbit_amqqueue function=info_all args='[pool]'`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(opts, args, cmd)
		},
	}

	return cmd
}
