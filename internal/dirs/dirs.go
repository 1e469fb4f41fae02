// Package dirs resolves per-user directories for videocalc.
package dirs

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "videocalc"

// ConfigDir returns the directory holding config.yaml.
// - Linux: $XDG_CONFIG_HOME/videocalc or ~/.config/videocalc
// - macOS: ~/Library/Application Support/videocalc
// - Windows: %AppData%/videocalc
func ConfigDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support", appName)
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return underHome(".config", appName)
	default:
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, appName), nil
	}
}

// StateDir returns the directory for user state such as saved presets.
// - Linux: $XDG_STATE_HOME/videocalc or ~/.local/state/videocalc
// - macOS: ~/Library/Application Support/videocalc/state
// - Windows: %LocalAppData%/videocalc/state (fallback to ConfigDir/state)
func StateDir() (string, error) {
	switch runtime.GOOS {
	case "darwin":
		return underHome("Library", "Application Support", appName, "state")
	case "linux":
		if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		return underHome(".local", "state", appName)
	default:
		if la := os.Getenv("LOCALAPPDATA"); la != "" {
			return filepath.Join(la, appName, "state"), nil
		}
		cfg, err := ConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(cfg, "state"), nil
	}
}

// PresetsFile returns the default preset store path.
func PresetsFile() (string, error) {
	d, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "presets.yaml"), nil
}

func underHome(parts ...string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{home}, parts...)...), nil
}
