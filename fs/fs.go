// Package fs locates the files fable keeps outside the story directory.
package fs

import (
	"os"
	"path/filepath"
)

// DefaultStateDir returns the default state directory for fable.
// Uses XDG_STATE_HOME if set, otherwise falls back to ~/.local/state/fable,
// or system temp directory if home is unavailable.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "fable")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "fable")
	}
	return filepath.Join(home, ".local", "state", "fable")
}

// DefaultLogPath returns where the player writes its log.
func DefaultLogPath() string {
	return filepath.Join(DefaultStateDir(), "fable.log")
}
