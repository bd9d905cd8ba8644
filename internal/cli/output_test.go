package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopeWriteChanged(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, ChangedEnvelope("[{memory,1024}]").Write(buf))
	assert.Equal(t, `{"changed":true,"msg":"[{memory,1024}]"}`+"\n", buf.String())
}

func TestEnvelopeWriteFailed(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, FailedEnvelope("{badrpc,nodedown}").Write(buf))
	assert.Equal(t, `{"failed":true,"msg":"{badrpc,nodedown}"}`+"\n", buf.String())
}

func TestEnvelopeWriteEscapesQuotes(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, ChangedEnvelope(`{ok,"hi"}`).Write(buf))
	assert.Equal(t, `{"changed":true,"msg":"{ok,\"hi\"}"}`+"\n", buf.String())
}

func TestEnvelopeWriteKeepsAngleBrackets(t *testing.T) {
	// Erlang pids print as <0.42.0>; they must survive untouched
	buf := &bytes.Buffer{}
	require.NoError(t, ChangedEnvelope("<0.42.0>").Write(buf))
	assert.Equal(t, `{"changed":true,"msg":"<0.42.0>"}`+"\n", buf.String())
}

func TestEnvelopeExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, ChangedEnvelope("ok").ExitCode())
	assert.Equal(t, ExitFailure, FailedEnvelope("boom").ExitCode())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "boom")))
}
