// Package compactor rewrites the log file's live records into a fresh file
// and swaps it in atomically, reclaiming the space held by overwritten and
// removed keys.
package compactor

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ignitedb/kvs/internal/index"
	"github.com/ignitedb/kvs/internal/logfile"
	"github.com/ignitedb/kvs/pkg/errors"
	"go.uber.org/zap"
)

// Compactor owns the mechanics of a single compaction pass: reading every
// live record out of the current log file, appending it to a temp file,
// and handing the rewritten offsets back so the caller can install them.
type Compactor struct {
	dataDir      string
	tempFileName string
	log          *zap.SugaredLogger
}

// Config encapsulates the configuration parameters required to initialize a Compactor.
type Config struct {
	DataDir      string
	TempFileName string
	Logger       *zap.SugaredLogger
}

// New creates a Compactor.
func New(config *Config) (*Compactor, error) {
	if config == nil || config.DataDir == "" || config.TempFileName == "" || config.Logger == nil {
		return nil, errors.NewConfigurationValidationError("config", "dataDir, tempFileName, and logger are required").WithProvided(config)
	}
	return &Compactor{dataDir: config.DataDir, tempFileName: config.TempFileName, log: config.Logger}, nil
}

// Run reads every entry in snapshot out of log, appends the live bytes to a
// fresh temp file in program order (sorted by original offset, so the
// rewritten file preserves write order for easier inspection), renames the
// temp file over the log file, and returns the new pointer for each key.
//
// The caller is responsible for holding whatever lock serializes this
// against concurrent writes, and for installing the returned map into the
// index only after Run returns successfully.
func (c *Compactor) Run(log *logfile.LogFile, snapshot map[string]index.Pointer) (map[string]index.Pointer, error) {
	tempPath := filepath.Join(c.dataDir, c.tempFileName)

	c.log.Infow("starting compaction", "liveKeys", len(snapshot), "tempPath", tempPath)

	tempFile, err := os.OpenFile(tempPath, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, tempPath, c.tempFileName)
	}

	type keyedPointer struct {
		key string
		ptr index.Pointer
	}
	ordered := make([]keyedPointer, 0, len(snapshot))
	for k, p := range snapshot {
		ordered = append(ordered, keyedPointer{k, p})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ptr.Pos < ordered[j].ptr.Pos })

	rewritten := make(map[string]index.Pointer, len(ordered))
	var writeOffset int64

	for _, kp := range ordered {
		buf := make([]byte, kp.ptr.Len)
		if _, err := log.ReadAt(buf, kp.ptr.Pos); err != nil {
			tempFile.Close()
			os.Remove(tempPath)
			return nil, errors.NewStorageError(
				err, errors.ErrorCodeIO, "failed to read live record during compaction",
			).WithOffset(int(kp.ptr.Pos))
		}

		if _, err := tempFile.Write(buf); err != nil {
			tempFile.Close()
			os.Remove(tempPath)
			return nil, errors.NewStorageError(
				err, errors.ErrorCodeIO, "failed to write record to temp file during compaction",
			).WithPath(tempPath).WithFileName(c.tempFileName)
		}

		rewritten[kp.key] = index.Pointer{Pos: writeOffset, Len: kp.ptr.Len}
		writeOffset += kp.ptr.Len
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		os.Remove(tempPath)
		return nil, errors.ClassifySyncError(err, c.tempFileName, tempPath, int(writeOffset))
	}
	if err := tempFile.Close(); err != nil {
		os.Remove(tempPath)
		return nil, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to close temp file after compaction").
			WithPath(tempPath).WithFileName(c.tempFileName)
	}

	if err := log.Replace(tempPath); err != nil {
		return nil, err
	}

	c.log.Infow("compaction complete", "liveKeys", len(rewritten), "bytesWritten", writeOffset)
	return rewritten, nil
}
