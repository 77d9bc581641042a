// Package writer provides the single-writer agent that serializes every
// put and remove against the log file and index, tracking how many stale
// bytes have accumulated so it knows when to trigger compaction.
//
// Exactly one Agent exists per store, held behind a mutex so callers never
// interleave two appends; reads go straight to the index and log file
// without going through the agent at all.
package writer

import (
	"sync"

	"github.com/ignitedb/kvs/internal/compactor"
	"github.com/ignitedb/kvs/internal/index"
	"github.com/ignitedb/kvs/internal/logfile"
	"github.com/ignitedb/kvs/internal/record"
	kvserrors "github.com/ignitedb/kvs/pkg/errors"
	"go.uber.org/zap"
)

// Agent serializes writes to the log file and keeps the index and
// stale-byte counter consistent with what actually landed on disk.
type Agent struct {
	mu sync.Mutex

	log       *logfile.LogFile
	idx       *index.Index
	compactor *compactor.Compactor
	logger    *zap.SugaredLogger

	compactionThreshold uint64
	staleBytes          uint64
}

// Config encapsulates the configuration parameters required to initialize an Agent.
type Config struct {
	LogFile             *logfile.LogFile
	Index               *index.Index
	Compactor           *compactor.Compactor
	Logger              *zap.SugaredLogger
	CompactionThreshold uint64

	// InitialStaleBytes seeds the stale-byte counter from replay-on-open
	// accounting, so a restart doesn't forget space already reclaimable.
	InitialStaleBytes uint64
}

// New creates a writer Agent.
func New(config *Config) (*Agent, error) {
	if config == nil || config.LogFile == nil || config.Index == nil ||
		config.Compactor == nil || config.Logger == nil {
		return nil, kvserrors.NewConfigurationValidationError("config", "logFile, index, compactor, and logger are required").WithProvided(config)
	}

	return &Agent{
		log:                 config.LogFile,
		idx:                 config.Index,
		compactor:           config.Compactor,
		logger:              config.Logger,
		compactionThreshold: config.CompactionThreshold,
		staleBytes:          config.InitialStaleBytes,
	}, nil
}

// Put appends a record setting key to value, updates the index, and
// triggers compaction if the write pushed accumulated stale bytes past the
// configured threshold.
func (a *Agent) Put(key string, value []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data := record.Encode(key, value)
	offset, err := a.log.Append(data)
	if err != nil {
		return err
	}

	previous, existed := a.idx.Set(key, index.Pointer{Pos: offset, Len: int64(len(data))})
	if existed {
		a.staleBytes += uint64(previous.Len)
	}

	return a.maybeCompact()
}

// Remove appends a tombstone record for key and deletes its index entry.
// It returns a *kvserrors.IndexError wrapping [kvserrors.ErrKeyNotFound] if
// key has no current entry; no tombstone is written in that case.
func (a *Agent) Remove(key string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	previous, existed := a.idx.Get(key)
	if !existed {
		return kvserrors.NewKeyNotFoundError("remove", key)
	}

	data := record.EncodeTombstone(key)
	if _, err := a.log.Append(data); err != nil {
		return err
	}

	a.idx.Delete(key)
	// Only the superseded record's bytes are dead right now; the tombstone
	// itself becomes stale later, whenever it in turn gets superseded or
	// compaction drops it (tombstones carry no index entry to begin with).
	a.staleBytes += uint64(previous.Len)

	return a.maybeCompact()
}

// maybeCompact runs compaction when accumulated stale bytes reach the
// threshold, then resets the counter. Must be called with a.mu held.
func (a *Agent) maybeCompact() error {
	if a.staleBytes < a.compactionThreshold {
		return nil
	}

	a.logger.Infow("compaction threshold reached", "staleBytes", a.staleBytes, "threshold", a.compactionThreshold)

	snapshot := a.idx.Snapshot()
	rewritten, err := a.compactor.Run(a.log, snapshot)
	if err != nil {
		return err
	}

	a.idx.Replace(rewritten)
	a.staleBytes = 0
	return nil
}
