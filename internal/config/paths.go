// Configuration file location and search order.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// FileName is the name of the settings file dm looks for and writes.
const FileName = "documentarist.toml"

// appDirName is the directory name used under the per-user config root.
const appDirName = "documentarist"

// platformDir holds platform-detection functions that can be overridden in
// tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// UserConfigDir returns the per-user configuration directory for dm.
//
// Linux:   $XDG_CONFIG_HOME/documentarist (fallback ~/.config/documentarist)
// macOS:   ~/Library/Application Support/documentarist
// Windows: %APPDATA%/documentarist
func UserConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// locate returns the path of the settings file found by the search order
// (current directory, then the per-user config dir) and whether one exists.
// The returned path is usable for a later save even when found is false: it
// then names the default per-user location where the first save will land.
func locate() (path string, found bool, err error) {
	if cwd, werr := platformDir.getwd(); werr == nil {
		local := filepath.Join(cwd, FileName)
		if _, serr := os.Stat(local); serr == nil {
			return local, true, nil
		}
	}

	dir, err := UserConfigDir()
	if err != nil {
		return "", false, err
	}
	fallback := filepath.Join(dir, FileName)
	if _, serr := os.Stat(fallback); serr == nil {
		return fallback, true, nil
	}
	return fallback, false, nil
}
