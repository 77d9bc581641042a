// Package options provides data structures and functions for configuring
// the store. It defines the parameters that control where data lives on
// disk and when compaction kicks in.
package options

import "strings"

// Options defines the configuration parameters for the store. It provides
// control over storage location and compaction behavior.
type Options struct {
	// Specifies the base path where the log file, its sidecar, and any
	// in-flight temp file will be stored.
	//
	// Default: "/var/lib/kvs"
	DataDir string `json:"dataDir"`

	// Defines the number of stale bytes the log file must accumulate
	// before a write triggers compaction.
	//
	// Default: 1MiB
	CompactionThreshold uint64 `json:"compactionThreshold"`

	// Name of the append-only log file within DataDir.
	//
	// Default: ".store"
	LogFileName string `json:"logFileName"`

	// Name of the sidecar file recording which engine variant owns DataDir.
	//
	// Default: ".engine"
	SidecarFileName string `json:"sidecarFileName"`

	// Name of the temp file compaction rewrites live records into before
	// the atomic rename over the log file.
	//
	// Default: "temp_file"
	TempFileName string `json:"tempFileName"`
}

// OptionFunc is a function type that modifies the store's configuration.
type OptionFunc func(*Options)

// WithDefaultOptions applies a predefined set of default configuration
// values to the Options struct.
func WithDefaultOptions() OptionFunc {
	return func(o *Options) {
		opts := NewDefaultOptions()
		o.DataDir = opts.DataDir
		o.CompactionThreshold = opts.CompactionThreshold
		o.LogFileName = opts.LogFileName
		o.SidecarFileName = opts.SidecarFileName
		o.TempFileName = opts.TempFileName
	}
}

// WithDataDir sets the primary data directory for the store.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// WithCompactionThreshold sets the number of stale bytes that must
// accumulate in the log file before compaction runs.
func WithCompactionThreshold(threshold uint64) OptionFunc {
	return func(o *Options) {
		if threshold > 0 {
			o.CompactionThreshold = threshold
		}
	}
}

// WithLogFileName overrides the default log file name.
func WithLogFileName(name string) OptionFunc {
	return func(o *Options) {
		name = strings.TrimSpace(name)
		if name != "" {
			o.LogFileName = name
		}
	}
}
