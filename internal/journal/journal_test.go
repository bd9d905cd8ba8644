package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	j1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j1.Close())

	j2, err := Open(path)
	require.NoError(t, err)
	assert.NoError(t, j2.Close())
}

func TestRecordAndRecent(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	id, err := j.Record(ctx, Entry{
		Node:      "rabbit@db1",
		Module:    "rabbit_amqqueue",
		Function:  "info_all",
		Args:      "[pool]",
		TimeoutMS: 5000,
		Status:    "ok",
		Msg:       "[{memory,1024}]",
		Duration:  42 * time.Millisecond,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, id, e.ID)
	assert.NotEmpty(t, e.RecordedAt)
	assert.Equal(t, "rabbit@db1", e.Node)
	assert.Equal(t, "info_all", e.Function)
	assert.Equal(t, int64(5000), e.TimeoutMS)
	assert.Equal(t, "ok", e.Status)
	assert.Equal(t, 42*time.Millisecond, e.Duration)
}

func TestRecentNewestFirst(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	for _, fn := range []string{"first", "second", "third"} {
		_, err := j.Record(ctx, Entry{
			Node: "a@b", Module: "m", Function: fn,
			Args: "[]", TimeoutMS: -1, Status: "failed", Msg: "{badrpc,nodedown}",
		})
		require.NoError(t, err)
	}

	entries, err := j.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// UUIDv7 ids sort by creation time, so DESC yields newest first
	assert.Equal(t, "third", entries[0].Function)
	assert.Equal(t, "second", entries[1].Function)
}

func TestRecordDuplicateIDIgnored(t *testing.T) {
	j := openTemp(t)
	ctx := context.Background()

	e := Entry{ID: "fixed", Node: "a@b", Module: "m", Function: "f", Args: "[]", Status: "ok", Msg: "ok"}
	_, err := j.Record(ctx, e)
	require.NoError(t, err)

	e.Msg = "changed"
	_, err = j.Record(ctx, e)
	require.NoError(t, err)

	entries, err := j.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "ok", entries[0].Msg)
}

func TestRecordRejectsBadStatus(t *testing.T) {
	j := openTemp(t)

	_, err := j.Record(context.Background(), Entry{
		Node: "a@b", Module: "m", Function: "f", Args: "[]", Status: "maybe", Msg: "x",
	})
	require.Error(t, err)
}
