package compactor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/kvs/internal/index"
	"github.com/ignitedb/kvs/internal/logfile"
	"github.com/ignitedb/kvs/internal/record"
	"github.com/ignitedb/kvs/pkg/logger"
)

func TestRunRewritesLiveRecordsAndRemapsOffsets(t *testing.T) {
	dir := t.TempDir()
	log := logger.New("test")

	lf, err := logfile.Open(dir, ".store", log)
	require.NoError(t, err)
	defer lf.Close()

	offA, err := lf.Append(record.Encode("a", []byte("1")))
	require.NoError(t, err)
	offStaleB, err := lf.Append(record.Encode("b", []byte("stale")))
	require.NoError(t, err)
	_ = offStaleB
	offB, err := lf.Append(record.Encode("b", []byte("2")))
	require.NoError(t, err)
	_, err = lf.Append(record.EncodeTombstone("c"))
	require.NoError(t, err)

	snapshot := map[string]index.Pointer{
		"a": {Pos: offA, Len: int64(len(record.Encode("a", []byte("1"))))},
		"b": {Pos: offB, Len: int64(len(record.Encode("b", []byte("2"))))},
	}

	c, err := New(&Config{DataDir: dir, TempFileName: "temp_file", Logger: log})
	require.NoError(t, err)

	rewritten, err := c.Run(lf, snapshot)
	require.NoError(t, err)
	require.Len(t, rewritten, 2)

	aRec, err := record.ReadAt(lf, rewritten["a"].Pos)
	require.NoError(t, err)
	require.Equal(t, "a", aRec.Key)
	require.Equal(t, []byte("1"), aRec.Value)

	bRec, err := record.ReadAt(lf, rewritten["b"].Pos)
	require.NoError(t, err)
	require.Equal(t, "b", bRec.Key)
	require.Equal(t, []byte("2"), bRec.Value)

	sizeAfter, err := lf.Size()
	require.NoError(t, err)
	wantSize := int64(len(record.Encode("a", []byte("1")))) + int64(len(record.Encode("b", []byte("2"))))
	require.Equal(t, wantSize, sizeAfter)
}
