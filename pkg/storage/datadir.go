package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultDataDir returns the OS-appropriate default data directory for tally.
//
//   - macOS:   ~/Library/Application Support/tally
//   - Linux:   $XDG_DATA_HOME/tally (fallback ~/.local/share/tally)
//   - Windows: %LOCALAPPDATA%\tally (fallback %APPDATA%\tally)
func DefaultDataDir() string {
	return defaultDataDirForOS(runtime.GOOS)
}

func defaultDataDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tally")
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "tally")
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, "tally")
		}
		return filepath.Join(home, "tally")
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, "tally")
		}
		return filepath.Join(home, ".local", "share", "tally")
	}
}
