// Package config resolves runtime settings from defaults, an optional
// YAML file, and environment variable overrides, in that order.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stefanpenner/tally/pkg/storage"
)

// Backend names for the persistence layer.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config keeps runtime settings for tally. User-facing preferences
// (sound, notifications) are not here; they live in the data store
// with the rest of the user's state.
type Config struct {
	DataDir       string        `yaml:"dataDir"`
	Backend       string        `yaml:"backend"`
	FlushDebounce time.Duration `yaml:"flushDebounce"`
}

// Load resolves the configuration. Precedence, lowest to highest:
// built-in defaults, tally.yaml in the data directory (or the file
// named by TALLY_CONFIG), then TALLY_* environment variables.
func Load() (Config, error) {
	cfg := Config{
		DataDir:       storage.DefaultDataDir(),
		Backend:       BackendFile,
		FlushDebounce: 500 * time.Millisecond,
	}

	if dir := strings.TrimSpace(os.Getenv("TALLY_DATA_DIR")); dir != "" {
		cfg.DataDir = dir
	}

	path := strings.TrimSpace(os.Getenv("TALLY_CONFIG"))
	if path == "" {
		path = filepath.Join(cfg.DataDir, "tally.yaml")
	}
	if err := overlayFile(&cfg, path); err != nil {
		return cfg, err
	}

	if backend := strings.TrimSpace(os.Getenv("TALLY_BACKEND")); backend != "" {
		cfg.Backend = backend
	}
	if raw := strings.TrimSpace(os.Getenv("TALLY_FLUSH_MS")); raw != "" {
		d, err := time.ParseDuration(raw + "ms")
		if err != nil || d <= 0 {
			return cfg, fmt.Errorf("invalid TALLY_FLUSH_MS %q", raw)
		}
		cfg.FlushDebounce = d
	}

	switch cfg.Backend {
	case BackendFile, BackendSQLite:
	default:
		return cfg, fmt.Errorf("unknown backend %q (want %q or %q)", cfg.Backend, BackendFile, BackendSQLite)
	}
	return cfg, nil
}

func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// StorePath returns the backing file for the configured backend.
func (c Config) StorePath() string {
	if c.Backend == BackendSQLite {
		return filepath.Join(c.DataDir, "tally.db")
	}
	return filepath.Join(c.DataDir, "tally.json")
}
