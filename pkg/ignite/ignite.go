// Package ignite provides a high-performance key/value data store
// designed for fast read and write operations, inspired by Bitcask.
// It combines an in-memory hash table (the index) with an append-only log
// structure on disk to achieve high throughput, and reclaims space held by
// overwritten and removed keys through in-place compaction.
package ignite

import (
	"github.com/ignitedb/kvs/internal/engine"
	"github.com/ignitedb/kvs/pkg/logger"
	"github.com/ignitedb/kvs/pkg/options"
)

// Instance is the primary entry point for interacting with the store,
// providing methods for setting, getting, and deleting key-value pairs.
// It encapsulates the core engine responsible for data handling and the
// configuration options for this specific database instance.
type Instance struct {
	engine  engine.Store
	options *options.Options
}

// NewInstance creates and initializes a new store instance rooted at the
// configured data directory, replaying any existing log file there.
func NewInstance(service string, opts ...options.OptionFunc) (*Instance, error) {
	log := logger.New(service)

	defaultOpts := options.NewDefaultOptions()
	for _, opt := range opts {
		opt(&defaultOpts)
	}

	eng, err := engine.New(&engine.Config{Logger: log, Options: &defaultOpts})
	if err != nil {
		return nil, err
	}

	return &Instance{engine: eng, options: &defaultOpts}, nil
}

// Set stores a key-value pair in the database. If the key already exists,
// its value is updated. The operation is durable and will be visible after
// a restart as soon as it returns without error.
func (i *Instance) Set(key string, value []byte) error {
	return i.engine.Put(key, value)
}

// Get retrieves the value associated with the given key. A missing key
// returns (nil, false, nil), not an error.
func (i *Instance) Get(key string) ([]byte, bool, error) {
	return i.engine.Get(key)
}

// Delete removes a key-value pair from the database. The operation marks
// the key as deleted and the space it occupied is reclaimed at the next
// compaction.
func (i *Instance) Delete(key string) error {
	return i.engine.Remove(key)
}

// Clone returns an Instance sharing the same underlying engine, safe to
// hand to another goroutine.
func (i *Instance) Clone() *Instance {
	return &Instance{engine: i.engine.Clone(), options: i.options}
}

// Close gracefully shuts down the store instance, closing the log file
// handle. Safe to call once per independently-opened instance; clones
// share the same underlying engine and its close state.
func (i *Instance) Close() error {
	return i.engine.Close()
}
