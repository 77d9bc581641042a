package errors

import stdErrors "errors"

// Sentinel errors for the three engine-contract failure kinds that callers
// are expected to branch on directly with errors.Is, as opposed to IO
// failures which are surfaced with whatever *PathError or syscall.Errno the
// operating system produced.
var (
	// ErrKeyNotFound is returned by remove for an absent key, and wrapped
	// into the richer [IndexError] by [NewKeyNotFoundError].
	ErrKeyNotFound = stdErrors.New("key not found")

	// ErrCorruption is returned when a log record's header or body cannot
	// be fully read, or its bytes do not decode as valid UTF-8.
	ErrCorruption = stdErrors.New("log record corrupted")

	// ErrEngineMismatch is returned when a data directory's `.engine`
	// sidecar names a different engine variant than the one being opened.
	ErrEngineMismatch = stdErrors.New("data directory is owned by a different engine")
)

// CorruptionError carries the byte offset of the record that failed to
// decode alongside the generic ErrCorruption sentinel.
type CorruptionError struct {
	*baseError
	offset int64
}

// NewCorruptionError wraps a decode failure at the given log offset.
func NewCorruptionError(offset int64, detail string) *CorruptionError {
	return &CorruptionError{
		baseError: NewBaseError(ErrCorruption, ErrorCodeCorruption, detail),
		offset:    offset,
	}
}

// Offset returns the byte offset of the record that failed to decode.
func (ce *CorruptionError) Offset() int64 {
	return ce.offset
}

// EngineMismatchError carries the requested and the recorded engine variant
// alongside the generic ErrEngineMismatch sentinel.
type EngineMismatchError struct {
	*baseError
	requested string
	recorded  string
}

// NewEngineMismatchError reports that a directory's sidecar names a variant
// other than the one requested at open time.
func NewEngineMismatchError(requested, recorded string) *EngineMismatchError {
	return &EngineMismatchError{
		baseError: NewBaseError(ErrEngineMismatch, ErrorCodeEngineMismatch, "engine variant mismatch"),
		requested: requested,
		recorded:  recorded,
	}
}

// Requested returns the engine variant that was asked for.
func (ee *EngineMismatchError) Requested() string {
	return ee.requested
}

// Recorded returns the engine variant already recorded in the sidecar file.
func (ee *EngineMismatchError) Recorded() string {
	return ee.recorded
}
