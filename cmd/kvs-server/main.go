// Command kvs-server runs the TCP front end for the store.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/tailscale/hujson"

	"github.com/ignitedb/kvs/internal/engine"
	"github.com/ignitedb/kvs/internal/server"
	"github.com/ignitedb/kvs/internal/workerpool"
	"github.com/ignitedb/kvs/pkg/errors"
	"github.com/ignitedb/kvs/pkg/logger"
	"github.com/ignitedb/kvs/pkg/options"
	"github.com/ignitedb/kvs/pkg/sidecar"
)

// fileConfig is the shape of the optional --config file. It is JSONC
// (JSON with comments and trailing commas) via hujson, standardized to
// strict JSON before unmarshaling.
type fileConfig struct {
	Addr                string `json:"addr,omitempty"`
	DataDir             string `json:"dataDir,omitempty"`
	Engine              string `json:"engine,omitempty"`
	CompactionThreshold uint64 `json:"compactionThreshold,omitempty"`
	Workers             int    `json:"workers,omitempty"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "127.0.0.1:4000", "listen address")
	engineFlag := flag.String("engine", "", "storage engine to use: kvs or sled (default: whatever the data directory already uses, or kvs on first run)")
	dataDir := flag.String("data-dir", "", "data directory (overrides config file)")
	configPath := flag.String("config", "", "path to a JSONC config file")
	workers := flag.Int("workers", 8, "fixed worker pool size; 0 spawns one goroutine per connection")
	flag.Parse()

	cfg, err := loadFileConfig(*configPath)
	if err != nil {
		return err
	}

	log := logger.New("kvs-server")

	opts := options.NewDefaultOptions()
	if cfg.DataDir != "" {
		opts.DataDir = cfg.DataDir
	}
	if cfg.CompactionThreshold > 0 {
		opts.CompactionThreshold = cfg.CompactionThreshold
	}
	if *dataDir != "" {
		opts.DataDir = *dataDir
	}

	listenAddr := *addr
	if cfg.Addr != "" {
		listenAddr = cfg.Addr
	}

	requestedEngine := *engineFlag
	if requestedEngine == "" {
		requestedEngine = cfg.Engine
	}
	if requestedEngine == "" {
		if recorded, err := os.ReadFile(filepath.Join(opts.DataDir, opts.SidecarFileName)); err == nil {
			requestedEngine = strings.TrimSpace(string(recorded))
		}
	}
	if requestedEngine == "" {
		requestedEngine = string(sidecar.VariantKvs)
	}

	variant, err := sidecar.ParseVariant(requestedEngine)
	if err != nil {
		return fmt.Errorf("invalid --engine %q: %w", requestedEngine, err)
	}
	if variant == sidecar.VariantSled {
		return fmt.Errorf("engine %q is not implemented; the tree-based engine is a separate implementation of the engine contract", variant)
	}

	if err := os.MkdirAll(opts.DataDir, 0755); err != nil {
		return errors.ClassifyDirectoryCreationError(err, opts.DataDir)
	}
	if err := sidecar.Ensure(opts.DataDir, opts.SidecarFileName, variant); err != nil {
		return fmt.Errorf("engine ownership check failed: %w", err)
	}

	eng, err := engine.New(&engine.Config{Options: &opts, Logger: log})
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer eng.Close()

	poolSize := *workers
	if cfg.Workers > 0 {
		poolSize = cfg.Workers
	}

	var pool workerpool.Pool
	if poolSize <= 0 {
		pool, err = workerpool.NewDirect(0)
	} else {
		pool, err = workerpool.NewFixed(poolSize)
	}
	if err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}
	defer pool.Close()

	srv := server.New(eng, pool, log)
	return srv.Run(listenAddr)
}

func loadFileConfig(path string) (fileConfig, error) {
	if path == "" {
		return fileConfig{}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC in config file %s: %w", path, err)
	}

	var cfg fileConfig
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return fileConfig{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}
