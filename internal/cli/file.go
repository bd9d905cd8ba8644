package cli

import (
	"fmt"
	"os"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

// runArgsFile implements the form Ansible uses: a single path argument
// naming a file of shell-quoted key=value tokens. The file contents are
// split with POSIX word rules in-process and handed to the same dispatch
// path as the direct form.
func runArgsFile(opts *RootOptions, path string, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return emit(FailedEnvelope(fmt.Sprintf("cannot read arguments file: %v", err)), cmd)
	}

	tokens, err := shellquote.Split(string(data))
	if err != nil {
		return emit(FailedEnvelope(fmt.Sprintf("cannot tokenize arguments file %s: %v", path, err)), cmd)
	}

	return runTokens(opts, tokens, cmd)
}
