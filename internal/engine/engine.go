// Package engine implements the log-structured, hash-indexed storage
// engine: the append-only log file, the in-memory index built by replay,
// the single-writer agent, and the compactor, wired together behind a
// cheaply clonable façade.
//
// The engine serves as the central coordinator for all database operations,
// orchestrating three subsystems:
//   - Index: in-memory key -> (offset, length) mapping for O(1) lookups.
//   - Log file: the append-only byte file that actually holds the data.
//   - Writer agent + compactor: serialize writes and reclaim stale bytes.
//
// It implements a thread-safe interface with proper lifecycle management,
// using atomic operations for close-state so concurrent callers never race
// on shutdown.
package engine

import (
	stdErrors "errors"
	"path/filepath"
	"sync/atomic"

	"github.com/ignitedb/kvs/internal/compactor"
	"github.com/ignitedb/kvs/internal/index"
	"github.com/ignitedb/kvs/internal/logfile"
	"github.com/ignitedb/kvs/internal/record"
	"github.com/ignitedb/kvs/internal/writer"
	"github.com/ignitedb/kvs/pkg/errors"
	"github.com/ignitedb/kvs/pkg/filesys"
	"github.com/ignitedb/kvs/pkg/options"
	"go.uber.org/zap"
)

// ErrEngineClosed is returned when attempting to perform operations on a closed engine.
var ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")

var _ Store = (*Engine)(nil)

// Engine is the log-structured implementation of [Store]. It acts as the
// primary interface for database operations and manages the lifecycle of
// all internal components.
type Engine struct {
	options *options.Options
	log     *zap.SugaredLogger

	// closed is shared by pointer across every clone of this Engine, so
	// closing one clone closes the underlying resources for all of them.
	closed *atomic.Bool

	idx       *index.Index
	logFile   *logfile.LogFile
	writer    *writer.Agent
	compactor *compactor.Compactor
}

// Config holds all the parameters needed to initialize a new Engine instance.
type Config struct {
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New creates and initializes a new Engine instance with the provided
// configuration: it ensures the data directory exists, opens the log file,
// replays it to rebuild the index and stale-byte count, and constructs the
// writer agent and compactor that will serve subsequent operations.
func New(config *Config) (*Engine, error) {
	if config == nil || config.Options == nil || config.Logger == nil {
		return nil, errors.NewConfigurationValidationError("config", "options and logger are required").WithProvided(config)
	}

	logPath := filepath.Join(config.Options.DataDir, config.Options.LogFileName)
	existing, err := filesys.Exists(logPath)
	if err != nil {
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat log file").WithPath(logPath)
	}
	config.Logger.Infow("initializing engine", "dataDir", config.Options.DataDir, "existingStore", existing)

	if err := filesys.CreateDir(config.Options.DataDir, 0755, true); err != nil {
		return nil, errors.ClassifyDirectoryCreationError(err, config.Options.DataDir)
	}

	logFile, err := logfile.Open(config.Options.DataDir, config.Options.LogFileName, config.Logger)
	if err != nil {
		return nil, err
	}

	entries, staleBytes, err := replay(logFile, config.Logger)
	if err != nil {
		logFile.Close()
		return nil, err
	}

	idx, err := index.New(&index.Config{Logger: config.Logger})
	if err != nil {
		logFile.Close()
		return nil, err
	}
	idx.Replace(entries)

	comp, err := compactor.New(&compactor.Config{
		DataDir:      config.Options.DataDir,
		TempFileName: config.Options.TempFileName,
		Logger:       config.Logger,
	})
	if err != nil {
		logFile.Close()
		return nil, err
	}

	writeAgent, err := writer.New(&writer.Config{
		LogFile:             logFile,
		Index:               idx,
		Compactor:           comp,
		Logger:              config.Logger,
		CompactionThreshold: config.Options.CompactionThreshold,
		InitialStaleBytes:   staleBytes,
	})
	if err != nil {
		logFile.Close()
		return nil, err
	}

	closed := &atomic.Bool{}
	config.Logger.Infow("engine initialized", "liveKeys", idx.Len(), "staleBytes", staleBytes)

	return &Engine{
		options:   config.Options,
		log:       config.Logger,
		closed:    closed,
		idx:       idx,
		logFile:   logFile,
		writer:    writeAgent,
		compactor: comp,
	}, nil
}

// Put stores key -> value durably, delegating to the writer agent.
func (e *Engine) Put(key string, value []byte) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.writer.Put(key, value)
}

// Get returns the current value for key. ok is false, with a nil error, if
// key has no current entry; that is a successful result, not an error.
func (e *Engine) Get(key string) ([]byte, bool, error) {
	if e.closed.Load() {
		return nil, false, ErrEngineClosed
	}

	ptr, ok := e.idx.Get(key)
	if !ok {
		return nil, false, nil
	}

	rec, err := record.ReadAt(e.logFile, ptr.Pos)
	if err != nil {
		return nil, false, err
	}
	return rec.Value, true, nil
}

// Remove deletes key, delegating to the writer agent. It returns an error
// that unwraps to [pkg/errors.ErrKeyNotFound] if key has no current entry.
func (e *Engine) Remove(key string) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}
	return e.writer.Remove(key)
}

// Clone returns a handle sharing this engine's writer agent, index, and
// closed flag by reference: safe to hand to another goroutine and use
// concurrently with the original.
func (e *Engine) Clone() Store {
	clone := *e
	return &clone
}

// Close gracefully shuts down the engine and releases its log file handle.
// Safe to call from any clone; the first call wins, subsequent calls (from
// this clone or any other) return ErrEngineClosed.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	e.log.Infow("closing engine")
	if err := e.idx.Close(); err != nil {
		return err
	}
	return e.logFile.Close()
}
