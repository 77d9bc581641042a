package index

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Pointer contains the absolute minimum metadata required to locate and
// retrieve a record from the log file: where it starts and how many bytes
// it occupies. Every key lives in this map for the lifetime of the store;
// only the key and value bytes themselves live on disk.
type Pointer struct {
	// Pos is the byte offset within the log file where the record's header
	// begins. A read seeks here directly instead of scanning the file.
	Pos int64

	// Len is the total number of bytes the record occupies on disk,
	// header, key, and value combined, letting a read fetch the whole
	// entry in a single call.
	Len int64
}

// Index is the in-memory hash table mapping keys to their on-disk location.
// It keeps every key resident in memory while values stay on disk, trading
// a small, bounded amount of memory per key for O(1) lookups that never
// scan the log file.
type Index struct {
	log     *zap.SugaredLogger // Structured logger for operational visibility.
	entries map[string]Pointer // Maps keys to their location in the log file.
	mu      sync.RWMutex       // Protects concurrent access to entries.
	closed  atomic.Bool        // Indicates whether the index has been closed.
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	Logger *zap.SugaredLogger // Provides structured logging capabilities for Index operations.
}
