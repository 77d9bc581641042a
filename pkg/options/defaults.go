package options

const (
	// DefaultDataDir specifies the default base directory where the store
	// will keep its data files. If no other directory is specified during
	// initialization, this path will be used.
	DefaultDataDir = "/var/lib/kvs"

	// DefaultCompactionThreshold is the number of stale bytes the log file
	// must accumulate before a write triggers compaction (1MiB).
	DefaultCompactionThreshold uint64 = 1024 * 1024

	// DefaultLogFileName is the name of the append-only log file.
	DefaultLogFileName = ".store"

	// DefaultSidecarFileName is the name of the engine-ownership file.
	DefaultSidecarFileName = ".engine"

	// DefaultTempFileName is the name compaction rewrites live records into
	// before renaming it over the log file.
	DefaultTempFileName = "temp_file"
)

// defaultOptions holds the default configuration settings for a store instance.
var defaultOptions = Options{
	DataDir:             DefaultDataDir,
	CompactionThreshold: DefaultCompactionThreshold,
	LogFileName:         DefaultLogFileName,
	SidecarFileName:     DefaultSidecarFileName,
	TempFileName:        DefaultTempFileName,
}

// NewDefaultOptions returns a copy of the default configuration.
func NewDefaultOptions() Options {
	return defaultOptions
}
