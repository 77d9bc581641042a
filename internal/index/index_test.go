package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/kvs/pkg/logger"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(&Config{Logger: logger.New("test")})
	require.NoError(t, err)
	return idx
}

func TestSetGetDelete(t *testing.T) {
	idx := newTestIndex(t)

	_, ok := idx.Get("missing")
	require.False(t, ok)

	prev, existed := idx.Set("k", Pointer{Pos: 0, Len: 10})
	require.False(t, existed)
	require.Zero(t, prev)

	ptr, ok := idx.Get("k")
	require.True(t, ok)
	require.Equal(t, Pointer{Pos: 0, Len: 10}, ptr)

	prev, existed = idx.Set("k", Pointer{Pos: 20, Len: 5})
	require.True(t, existed)
	require.Equal(t, Pointer{Pos: 0, Len: 10}, prev)

	prev, existed = idx.Delete("k")
	require.True(t, existed)
	require.Equal(t, Pointer{Pos: 20, Len: 5}, prev)

	_, ok = idx.Get("k")
	require.False(t, ok)

	_, existed = idx.Delete("k")
	require.False(t, existed)
}

func TestLenAndSnapshotIsolation(t *testing.T) {
	idx := newTestIndex(t)
	idx.Set("a", Pointer{Pos: 0, Len: 1})
	idx.Set("b", Pointer{Pos: 1, Len: 1})
	require.Equal(t, 2, idx.Len())

	snap := idx.Snapshot()
	require.Len(t, snap, 2)

	idx.Set("c", Pointer{Pos: 2, Len: 1})
	require.Len(t, snap, 2)
	require.Equal(t, 3, idx.Len())
}

func TestReplaceSwapsWholeMap(t *testing.T) {
	idx := newTestIndex(t)
	idx.Set("a", Pointer{Pos: 0, Len: 1})

	idx.Replace(map[string]Pointer{"b": {Pos: 5, Len: 2}})

	_, ok := idx.Get("a")
	require.False(t, ok)
	ptr, ok := idx.Get("b")
	require.True(t, ok)
	require.Equal(t, Pointer{Pos: 5, Len: 2}, ptr)
}

func TestCloseIsOneShot(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.Close())
	require.ErrorIs(t, idx.Close(), ErrIndexClosed)
}

func TestConcurrentAccess(t *testing.T) {
	idx := newTestIndex(t)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			idx.Set("key", Pointer{Pos: int64(i), Len: 1})
		}(i)
		go func() {
			defer wg.Done()
			idx.Get("key")
		}()
	}
	wg.Wait()
}
