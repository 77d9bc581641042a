package engine

import (
	"io"

	"github.com/ignitedb/kvs/internal/index"
	"github.com/ignitedb/kvs/internal/logfile"
	"github.com/ignitedb/kvs/internal/record"
	"go.uber.org/zap"
)

// replay scans the log file from offset 0, reconstructing the set of live
// entries and the stale-byte count a fresh writer agent should start from.
//
// For each non-tombstone record it inserts key -> {pos, len}; if a previous
// entry for that key already existed, that entry's len (not len + 8 - see
// the replay accounting note below) is added to staleBytes, since its bytes
// are now superseded. For each tombstone it deletes the key's entry and, if
// one was present, adds its len to staleBytes the same way.
//
// Adding len + key_length + 8 here (on top of len already covering the full
// record including its header) would double-count the header on every
// supersession; len alone is the number of bytes that became unreachable.
func replay(log *logfile.LogFile, logger *zap.SugaredLogger) (entries map[string]index.Pointer, staleBytes uint64, err error) {
	entries = make(map[string]index.Pointer, 2046)

	size, err := log.Size()
	if err != nil {
		return nil, 0, err
	}

	var offset int64
	for offset < size {
		rec, err := record.ReadAt(log, offset)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		if rec.Tombstone {
			if previous, existed := entries[rec.Key]; existed {
				staleBytes += uint64(previous.Len)
			}
			delete(entries, rec.Key)
		} else {
			ptr := index.Pointer{Pos: offset, Len: rec.Size}
			if previous, existed := entries[rec.Key]; existed {
				staleBytes += uint64(previous.Len)
			}
			entries[rec.Key] = ptr
		}

		offset += rec.Size
	}

	logger.Infow("log replay complete", "liveKeys", len(entries), "staleBytes", staleBytes, "bytesScanned", offset)
	return entries, staleBytes, nil
}
