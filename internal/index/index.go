// Package index provides the in-memory hash table mapping every live key to
// its location in the log file. This embodies the store's core Bitcask
// architectural principle: keep all keys in memory with minimal metadata
// while values stay on disk.
package index

import (
	stdErrors "errors"

	"github.com/ignitedb/kvs/pkg/errors"
)

var ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")

// New creates an empty Index ready for concurrent use.
func New(config *Config) (*Index, error) {
	if config == nil || config.Logger == nil {
		return nil, errors.NewConfigurationValidationError("config", "logger is required").WithProvided(config)
	}

	return &Index{
		log:     config.Logger,
		entries: make(map[string]Pointer, 2046),
	}, nil
}

// Get looks up the location of key, returning ok=false if it has no entry.
func (idx *Index) Get(key string) (Pointer, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	ptr, ok := idx.entries[key]
	return ptr, ok
}

// Set records key's location, returning the pointer it replaced, if any.
// Used by the writer after appending a put record.
func (idx *Index) Set(key string, ptr Pointer) (previous Pointer, existed bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	previous, existed = idx.entries[key]
	idx.entries[key] = ptr
	return previous, existed
}

// Delete removes key's entry entirely, returning the pointer it held, if
// any. Used by the writer after appending a tombstone record.
func (idx *Index) Delete(key string) (previous Pointer, existed bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	previous, existed = idx.entries[key]
	delete(idx.entries, key)
	return previous, existed
}

// Len returns the number of live keys.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Snapshot returns a copy of the current key->location map. The compactor
// reads from this snapshot while rewriting the log file. The writer agent
// holds its mutex across the whole compaction, so no put or remove changes
// the index between Snapshot and the Replace that installs the new offsets;
// Replace overwrites the map wholesale and does no reconciliation.
func (idx *Index) Snapshot() map[string]Pointer {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	snapshot := make(map[string]Pointer, len(idx.entries))
	for k, v := range idx.entries {
		snapshot[k] = v
	}
	return snapshot
}

// Replace swaps the entire key->location map in one step. The compactor
// uses this to install the rewritten offsets atomically once it has
// finished copying every live record into the new log file, rather than
// mutating entries one at a time while readers might be looking them up.
func (idx *Index) Replace(entries map[string]Pointer) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries = entries
}

// Close releases the index's resources, making it unusable afterward.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("closing index")

	idx.mu.Lock()
	defer idx.mu.Unlock()
	clear(idx.entries)
	idx.entries = nil

	return nil
}
