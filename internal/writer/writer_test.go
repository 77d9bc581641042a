package writer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/kvs/internal/compactor"
	"github.com/ignitedb/kvs/internal/index"
	"github.com/ignitedb/kvs/internal/logfile"
	kvserrors "github.com/ignitedb/kvs/pkg/errors"
	"github.com/ignitedb/kvs/pkg/logger"
)

func newTestAgent(t *testing.T, threshold uint64) (*Agent, *index.Index, *logfile.LogFile) {
	t.Helper()
	dir := t.TempDir()
	log := logger.New("test")

	lf, err := logfile.Open(dir, ".store", log)
	require.NoError(t, err)
	t.Cleanup(func() { lf.Close() })

	idx, err := index.New(&index.Config{Logger: log})
	require.NoError(t, err)

	c, err := compactor.New(&compactor.Config{DataDir: dir, TempFileName: "temp_file", Logger: log})
	require.NoError(t, err)

	agent, err := New(&Config{
		LogFile:             lf,
		Index:               idx,
		Compactor:           c,
		Logger:              log,
		CompactionThreshold: threshold,
	})
	require.NoError(t, err)

	return agent, idx, lf
}

func TestPutSetsIndexEntry(t *testing.T) {
	agent, idx, _ := newTestAgent(t, 1<<30)

	require.NoError(t, agent.Put("k", []byte("v1")))
	ptr, ok := idx.Get("k")
	require.True(t, ok)
	require.Zero(t, ptr.Pos)

	require.NoError(t, agent.Put("k", []byte("v2-longer")))
	require.Equal(t, uint64(8+1+2), agent.staleBytes) // previous record's total size: header(8) + key(1) + value("v1")
}

func TestRemoveMissingKeyReturnsKeyNotFound(t *testing.T) {
	agent, _, _ := newTestAgent(t, 1<<30)

	err := agent.Remove("absent")
	require.Error(t, err)
	require.ErrorIs(t, err, kvserrors.ErrKeyNotFound)
}

func TestRemovePresentKeyDeletesIndexEntry(t *testing.T) {
	agent, idx, _ := newTestAgent(t, 1<<30)

	require.NoError(t, agent.Put("k", []byte("v")))
	require.NoError(t, agent.Remove("k"))

	_, ok := idx.Get("k")
	require.False(t, ok)
	require.Equal(t, uint64(8+1+1), agent.staleBytes)
}

func TestCompactionTriggersAtThreshold(t *testing.T) {
	agent, idx, lf := newTestAgent(t, 10)

	require.NoError(t, agent.Put("k", []byte("v1")))
	require.NoError(t, agent.Put("k", []byte("v2")))

	require.Zero(t, agent.staleBytes)
	require.Equal(t, 1, idx.Len())

	size, err := lf.Size()
	require.NoError(t, err)
	require.Equal(t, int64(8+1+2), size)
}
