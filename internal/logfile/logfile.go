// Package logfile provides the single append-only file that backs the
// store: reading records at arbitrary offsets, appending new ones at the
// tail, and atomically replacing the whole file during compaction.
//
// Unlike a segmented storage layer, there is exactly one log file per data
// directory for the lifetime of the store; it only ever grows by appending
// or shrinks by being swapped wholesale for a compacted replacement.
package logfile

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ignitedb/kvs/pkg/errors"
	"go.uber.org/zap"
)

// LogFile wraps the on-disk log file, exposing the read/append/replace
// operations the writer and compactor subsystems need.
type LogFile struct {
	path string
	name string

	appendFile *os.File // opened O_APPEND, used only for writes.

	log *zap.SugaredLogger
}

// Open opens (creating if necessary) the log file named fileName inside dir.
func Open(dir, fileName string, log *zap.SugaredLogger) (*LogFile, error) {
	path := filepath.Join(dir, fileName)

	appendFile, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.ClassifyFileOpenError(err, path, fileName)
	}

	log.Infow("log file opened", "path", path)
	return &LogFile{path: path, name: fileName, appendFile: appendFile, log: log}, nil
}

// Path returns the log file's full path.
func (f *LogFile) Path() string {
	return f.path
}

// Size returns the current size of the log file in bytes.
func (f *LogFile) Size() (int64, error) {
	info, err := f.appendFile.Stat()
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to stat log file").
			WithPath(f.path).WithFileName(f.name)
	}
	return info.Size(), nil
}

// ReadAt satisfies io.ReaderAt against the log file, used by the record
// codec to decode entries at arbitrary offsets.
//
// Each call opens its own short-lived read handle rather than reusing one
// cached on the LogFile: compaction's Replace renames a fresh file over
// this path, and a long-lived handle opened before that rename would keep
// reading the old, unlinked file (or race the rename's close/reopen from a
// concurrent goroutine). Opening fresh per call means a Get either
// observes the file as it was before the swap or as it is after, never a
// handle invalidated mid-read.
func (f *LogFile) ReadAt(p []byte, offset int64) (int, error) {
	reader, err := os.Open(f.path)
	if err != nil {
		return 0, errors.ClassifyFileOpenError(err, f.path, f.name)
	}
	defer reader.Close()

	return reader.ReadAt(p, offset)
}

// Append writes data at the current end of the log file and returns the
// offset it was written at. It flushes to the OS but does not fsync;
// durability across process crashes relies on the OS page cache exactly as
// the teacher's segment writer did.
func (f *LogFile) Append(data []byte) (offset int64, err error) {
	pos, err := f.appendFile.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, errors.NewStorageError(err, errors.ErrorCodeIO, "failed to seek to end of log file").
			WithPath(f.path).WithFileName(f.name)
	}

	if _, err := f.appendFile.Write(data); err != nil {
		return 0, errors.ClassifySyncError(err, f.name, f.path, int(pos))
	}

	return pos, nil
}

// Replace atomically swaps the log file for a temp file holding a
// compacted rewrite, then reopens the append handle against the new file.
//
// The rename is a direct os.Rename rather than a whole-buffer atomic write:
// compaction streams records into tempPath incrementally, so there is no
// single in-memory buffer to hand to a copy-then-rename helper. The rename
// itself is what makes the swap atomic. ReadAt never holds a handle across
// this call (it opens and closes its own per read), so there is no cached
// reader here to invalidate.
func (f *LogFile) Replace(tempPath string) error {
	if err := f.appendFile.Close(); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to close log file before compaction swap").
			WithPath(f.path).WithFileName(f.name)
	}

	if err := os.Rename(tempPath, f.path); err != nil {
		return errors.NewStorageError(err, errors.ErrorCodeIO, "failed to rename compacted file over log file").
			WithPath(f.path).WithFileName(f.name)
	}

	appendFile, err := os.OpenFile(f.path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return errors.ClassifyFileOpenError(err, f.path, f.name)
	}

	f.appendFile = appendFile
	f.log.Infow("log file replaced with compacted file", "path", f.path)
	return nil
}

// Close releases the append handle.
func (f *LogFile) Close() error {
	if appendErr := f.appendFile.Close(); appendErr != nil {
		return errors.NewStorageError(appendErr, errors.ErrorCodeIO, "failed to close log file").
			WithPath(f.path).WithFileName(f.name)
	}
	return nil
}
