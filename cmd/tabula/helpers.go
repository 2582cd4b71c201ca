// Shared helpers for tabula CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tabula-app/tabula/internal/logger"
	"github.com/tabula-app/tabula/internal/sqlite"
	"github.com/tabula-app/tabula/pkg/types"
)

// storeConfig builds the types.Config for the resolved data directory.
func storeConfig() (types.Config, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return types.Config{}, fmt.Errorf("resolve data dir: %w", err)
	}

	return types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}, nil
}

// attachBackend creates a SQLite backend and attaches it. The caller must
// defer backend.Detach().
func attachBackend() (*sqlite.Backend, types.Config, error) {
	cfg, err := storeConfig()
	if err != nil {
		return nil, types.Config{}, err
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, types.Config{}, fmt.Errorf("attach backend: %w", err)
	}

	return backend, cfg, nil
}

// newLogger builds the logger from the loaded config and flags.
func newLogger() logger.Logger {
	return logger.New(config.logLevel(), config.logPretty())
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
