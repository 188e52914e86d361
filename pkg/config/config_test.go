package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TALLY_DATA_DIR", "TALLY_CONFIG", "TALLY_BACKEND", "TALLY_FLUSH_MS"} {
		t.Setenv(key, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TALLY_DATA_DIR", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, 500*time.Millisecond, cfg.FlushDebounce)
	assert.Equal(t, filepath.Join(cfg.DataDir, "tally.json"), cfg.StorePath())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TALLY_DATA_DIR", dir)
	t.Setenv("TALLY_BACKEND", "sqlite")
	t.Setenv("TALLY_FLUSH_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.FlushDebounce)
	assert.Equal(t, filepath.Join(dir, "tally.db"), cfg.StorePath())
}

func TestYAMLOverlay(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TALLY_DATA_DIR", dir)
	yaml := []byte("backend: sqlite\nflushDebounce: 1s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tally.yaml"), yaml, 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, time.Second, cfg.FlushDebounce)
}

func TestEnvBeatsYAML(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("TALLY_DATA_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tally.yaml"), []byte("backend: sqlite\n"), 0644))
	t.Setenv("TALLY_BACKEND", "file")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
}

func TestRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("TALLY_DATA_DIR", t.TempDir())
	t.Setenv("TALLY_BACKEND", "postgres")

	_, err := Load()
	assert.Error(t, err)
}

func TestRejectsBadFlushInterval(t *testing.T) {
	clearEnv(t)
	t.Setenv("TALLY_DATA_DIR", t.TempDir())
	t.Setenv("TALLY_FLUSH_MS", "soon")

	_, err := Load()
	assert.Error(t, err)
}
