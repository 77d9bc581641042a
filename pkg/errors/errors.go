// Package errors provides the store's error taxonomy: a base error type that
// every domain-specific error embeds, plus the four kinds the engine
// contract exposes to callers (KeyNotFound, Corruption, IO, EngineMismatch).
//
// Architecture and Design Philosophy:
//
// The error system is built around a hierarchical structure that starts with
// a foundational baseError and extends into domain-specific error types.
// This maintains consistency across all error types while allowing
// specialized context for different domains: a validation error needs to
// know which field failed and what rule was violated, a storage error needs
// to know which file and byte offset were involved, an index error needs to
// know which key and operation were being processed. By capturing this
// domain-specific context at the point of failure, the system enables more
// intelligent error handling throughout the application stack.
//
// Callers that only care about the engine contract's KeyNotFound/Corruption/
// EngineMismatch distinction should use errors.Is against the sentinels in
// engine.go rather than matching on these richer types; the richer types
// exist for logging and diagnostics.
package errors

import (
	stdErrors "errors"
	"os"
	"syscall"
)

// IsValidationError checks if the given error is a ValidationError or contains one in its error chain.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return stdErrors.As(err, &ve)
}

// IsStorageError determines if an error is related to log-file I/O, such as
// opening, reading, writing, or syncing the log or its temp file during
// compaction.
func IsStorageError(err error) bool {
	var se *StorageError
	return stdErrors.As(err, &se)
}

// IsIndexError identifies errors that occurred during index operations such
// as key lookups or removals.
func IsIndexError(err error) bool {
	var ie *IndexError
	return stdErrors.As(err, &ie)
}

// AsValidationError safely extracts a ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if stdErrors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// AsStorageError extracts StorageError context from an error chain, giving
// access to the file name, path, and byte offset involved.
func AsStorageError(err error) (*StorageError, bool) {
	var se *StorageError
	if stdErrors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsIndexError extracts IndexError context from an error chain, giving
// access to the key and operation involved.
func AsIndexError(err error) (*IndexError, bool) {
	var ie *IndexError
	if stdErrors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from any error that supports one, or
// returns ErrorCodeInternal for errors that don't.
func GetErrorCode(err error) ErrorCode {
	if ve, ok := AsValidationError(err); ok {
		return ve.Code()
	}
	if se, ok := AsStorageError(err); ok {
		return se.Code()
	}
	if ie, ok := AsIndexError(err); ok {
		return ie.Code()
	}
	var coded interface{ Code() ErrorCode }
	if stdErrors.As(err, &coded) {
		return coded.Code()
	}
	return ErrorCodeInternal
}

// GetErrorDetails extracts structured details from any error that supports
// them, returning an empty map for errors without details.
func GetErrorDetails(err error) map[string]any {
	if ve, ok := AsValidationError(err); ok {
		if details := ve.Details(); details != nil {
			return details
		}
	}
	if se, ok := AsStorageError(err); ok {
		if details := se.Details(); details != nil {
			return details
		}
	}
	if ie, ok := AsIndexError(err); ok {
		if details := ie.Details(); details != nil {
			return details
		}
	}
	var detailed interface{ Details() map[string]any }
	if stdErrors.As(err, &detailed) {
		if details := detailed.Details(); details != nil {
			return details
		}
	}
	return make(map[string]any)
}

// ClassifyDirectoryCreationError analyzes data-directory creation failures
// and returns a StorageError with a code specific enough to act on.
func ClassifyDirectoryCreationError(err error, path string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied, "insufficient permissions to create data directory",
		).WithPath(path)
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull, "insufficient disk space to create data directory",
				).WithPath(path)
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly, "cannot create directory on read-only filesystem",
				).WithPath(path)
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to create data directory").WithPath(path)
}

// ClassifyFileOpenError analyzes log-file open failures and returns a
// StorageError with a code specific enough to act on.
func ClassifyFileOpenError(err error, filePath, fileName string) error {
	if os.IsPermission(err) {
		return NewStorageError(
			err, ErrorCodePermissionDenied, "insufficient permissions to open log file",
		).WithPath(filePath).WithFileName(fileName)
	}

	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull, "insufficient disk space to open log file",
				).WithPath(filePath).WithFileName(fileName)
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly, "cannot open log file on read-only filesystem",
				).WithPath(filePath).WithFileName(fileName)
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to open log file").
		WithPath(filePath).WithFileName(fileName)
}

// ClassifySyncError analyzes flush/sync failures on the log file and returns
// a StorageError with a code specific enough to act on.
func ClassifySyncError(err error, fileName, filePath string, offset int) error {
	if pathErr, ok := err.(*os.PathError); ok {
		if errno, ok := pathErr.Err.(syscall.Errno); ok {
			switch errno {
			case syscall.ENOSPC:
				return NewStorageError(
					err, ErrorCodeDiskFull, "cannot sync log file: insufficient disk space",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset)
			case syscall.EROFS:
				return NewStorageError(
					err, ErrorCodeFilesystemReadonly, "cannot sync log file: filesystem is read-only",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset)
			case syscall.EIO:
				return NewStorageError(
					err, ErrorCodeIO, "I/O error during log file sync",
				).WithFileName(fileName).WithPath(filePath).WithOffset(offset)
			}
		}
	}

	return NewStorageError(err, ErrorCodeIO, "failed to sync log file").
		WithFileName(fileName).WithPath(filePath).WithOffset(offset)
}
