// Package sidecar manages the `.engine` file that records which engine
// variant owns a data directory. It belongs to the outer server, not the
// storage engine itself: the engine never reads or writes it.
package sidecar

import (
	"bytes"
	stdErrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	kvserrors "github.com/ignitedb/kvs/pkg/errors"
)

// Variant names a storage engine implementation a data directory can be
// opened with.
type Variant string

const (
	VariantKvs  Variant = "kvs"
	VariantSled Variant = "sled"
)

// ErrUnknownVariant is returned by ParseVariant for any value other than
// the two named variants.
var ErrUnknownVariant = stdErrors.New("unknown engine variant")

// ParseVariant validates a variant name, typically straight off a --engine
// flag.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.TrimSpace(s)) {
	case VariantKvs:
		return VariantKvs, nil
	case VariantSled:
		return VariantSled, nil
	default:
		return "", ErrUnknownVariant
	}
}

// Ensure checks the `.engine` file inside dir against requested. If the
// file does not exist, it is created recording requested (first run). If
// it exists and names a different variant, an *kvserrors.EngineMismatchError
// is returned; the caller should treat this as a fatal startup error.
func Ensure(dir, fileName string, requested Variant) error {
	path := filepath.Join(dir, fileName)

	existing, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return write(path, requested)
		}
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to read engine sidecar file").
			WithPath(path).WithFileName(fileName)
	}

	recorded := Variant(bytes.TrimSpace(existing))
	if recorded != requested {
		return kvserrors.NewEngineMismatchError(string(requested), string(recorded))
	}
	return nil
}

// write persists the chosen variant with a single atomic whole-buffer
// write: the sidecar is a handful of bytes written once per data
// directory's lifetime, exactly the case natefinch/atomic is built for,
// unlike the log file's incremental append-then-replace during compaction.
func write(path string, variant Variant) error {
	if err := atomic.WriteFile(path, strings.NewReader(string(variant))); err != nil {
		return kvserrors.NewStorageError(err, kvserrors.ErrorCodeIO, "failed to write engine sidecar file").
			WithPath(path)
	}
	return nil
}
