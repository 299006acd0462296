// Package filex resolves and creates the directories the client keeps its
// local state in.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir makes sure dir exists and returns its absolute path. A relative
// dir is resolved against the working directory.
func EnsureDir(dir string) (string, error) {
	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// DefaultDataDir is <user config dir>/<app>, falling back to ~/.config/<app>
// and finally ./.<app> when neither can be determined.
func DefaultDataDir(app string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, app)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", app)
	}
	return "." + app
}
