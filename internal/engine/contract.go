package engine

// Store is the operation surface any engine implementation exposes to the
// server: put, get, and remove, plus the ability to be cheaply duplicated
// and shared across goroutines. The log-structured engine in this package
// is the only implementation; the interface exists so the server can stay
// polymorphic over whatever other engine (e.g. a tree-based one) might
// satisfy it later.
//
// Get returns (nil, false, nil) for a key with no current value; that is a
// successful result, not an error. Remove returns an error that unwraps to
// [github.com/ignitedb/kvs/pkg/errors.ErrKeyNotFound] when key is absent.
type Store interface {
	Put(key string, value []byte) error
	Get(key string) (value []byte, ok bool, err error)
	Remove(key string) error

	// Clone returns a handle that shares the same underlying writer agent
	// and index, safe to hand to a different goroutine and use
	// concurrently with the original.
	Clone() Store

	Close() error
}
