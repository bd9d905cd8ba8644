package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/erlcall/internal/rpc"
)

func writeArgsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arguments")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestArgsFileSuccess(t *testing.T) {
	runner := &scriptedRunner{result: rpc.RunResult{Stdout: []byte("[{memory,1024}]")}}
	path := writeArgsFile(t, "node=rabbit@db1 module=rabbit_amqqueue function=info_all args='[pool]'\n")

	out, err := executeRoot(t, runner, path)

	require.NoError(t, err)
	assert.Equal(t, `{"changed":true,"msg":"[{memory,1024}]"}`+"\n", out)
}

func TestArgsFileQuotingSurvivesSpaces(t *testing.T) {
	runner := &scriptedRunner{result: rpc.RunResult{Stdout: []byte("ok")}}
	path := writeArgsFile(t, `node=a@b module=m function=f args='[{person, "Joe Armstrong"}]'`)

	_, err := executeRoot(t, runner, path)

	require.NoError(t, err)
	eval := runner.args[len(runner.args)-1]
	assert.Contains(t, eval, `[{person,"Joe Armstrong"}]`)
}

// The two invocation forms must produce byte-identical stdout for
// equivalent inputs.
func TestArgsFileMatchesDirectForm(t *testing.T) {
	tokens := []string{"node=rabbit@db1", "module=rabbit_amqqueue", "function=info_all", "args=[pool]"}

	cases := []struct {
		name   string
		result rpc.RunResult
	}{
		{"success", rpc.RunResult{Stdout: []byte("[{memory,1024}]")}},
		{"failure", rpc.RunResult{Stdout: []byte("{badrpc,timeout}"), ExitCode: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			direct, directErr := executeRoot(t, &scriptedRunner{result: tc.result},
				append([]string{"args"}, tokens...)...)

			path := writeArgsFile(t, "node=rabbit@db1 module=rabbit_amqqueue function=info_all args='[pool]'")
			viaFile, fileErr := executeRoot(t, &scriptedRunner{result: tc.result}, path)

			assert.Equal(t, direct, viaFile)
			assert.Equal(t, GetExitCode(directErr), GetExitCode(fileErr))
		})
	}
}

func TestArgsFileMissing(t *testing.T) {
	runner := &scriptedRunner{}

	out, err := executeRoot(t, runner, filepath.Join(t.TempDir(), "nope"))

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `"failed":true`)
	assert.Contains(t, out, "cannot read arguments file")
}

func TestArgsFileBadQuoting(t *testing.T) {
	runner := &scriptedRunner{}
	path := writeArgsFile(t, `node=a@b args='[unterminated`)

	out, err := executeRoot(t, runner, path)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "cannot tokenize arguments file")
}

func TestArgsFileEmpty(t *testing.T) {
	runner := &scriptedRunner{}
	path := writeArgsFile(t, "")

	out, err := executeRoot(t, runner, path)

	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Equal(t, `{"failed":true,"msg":"no arguments were supplied"}`+"\n", out)
}
