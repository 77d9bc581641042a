package errors

// ErrorCode represents a standardized way to categorize different types of errors.
type ErrorCode string

// Base error codes represent the fundamental categories of failures that can
// occur across any software system. These codes provide the foundation layer
// of error classification.
const (
	// ErrorCodeIO represents failures in input/output operations across any
	// system boundary: opening, reading, writing, or syncing the log file,
	// the temp file used during compaction, or the sidecar ownership file.
	ErrorCodeIO ErrorCode = "IO_ERROR"

	// ErrorCodeInvalidInput represents errors where the provided input
	// doesn't meet the store's requirements (e.g. a configuration missing a
	// required field).
	ErrorCodeInvalidInput ErrorCode = "INVALID_INPUT"

	// ErrorCodeInternal represents unexpected failures that don't fit into
	// other categories.
	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Engine-specific error codes, one per kind in the engine contract.
const (
	// ErrorCodeIndexKeyNotFound indicates a lookup or removal against a key
	// the index has no entry for.
	ErrorCodeIndexKeyNotFound ErrorCode = "KEY_NOT_FOUND"

	// ErrorCodeCorruption indicates a log record could not be decoded: a
	// short read inside a record's header or key/value payload, or bytes
	// that don't form valid UTF-8.
	ErrorCodeCorruption ErrorCode = "CORRUPTION"

	// ErrorCodeEngineMismatch indicates the data directory's `.engine`
	// sidecar names a different engine variant than the one requested.
	ErrorCodeEngineMismatch ErrorCode = "ENGINE_MISMATCH"

	// ErrorCodePermissionDenied indicates insufficient permissions to access
	// the data directory or its files.
	ErrorCodePermissionDenied ErrorCode = "PERMISSION_DENIED"

	// ErrorCodeDiskFull indicates the storage device has run out of space.
	ErrorCodeDiskFull ErrorCode = "DISK_FULL"

	// ErrorCodeFilesystemReadonly indicates the filesystem is mounted read-only.
	ErrorCodeFilesystemReadonly ErrorCode = "FILESYSTEM_READONLY"
)
