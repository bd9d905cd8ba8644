package main

import (
	"errors"
	"os"

	"github.com/roach88/erlcall/internal/cli"
)

func main() {
	opts := &cli.RootOptions{}
	cmd := cli.NewRootCommand(opts)

	err := cmd.Execute()
	if err != nil {
		// RunE paths have already printed their envelope and return an
		// ExitError. Anything else (cobra usage errors, unknown flags)
		// still owes Ansible a JSON line on stdout.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			_ = cli.FailedEnvelope(err.Error()).Write(os.Stdout)
		}
	}
	os.Exit(cli.GetExitCode(err))
}
