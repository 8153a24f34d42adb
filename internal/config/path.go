// Package config provides configuration management for VRC Visits.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/graaaaa/vrcvisits/internal/appinfo"
)

// DataDir returns the application data directory path.
// On Windows: %LOCALAPPDATA%/vrcvisits/
// On other platforms: ~/.config/vrcvisits/ or equivalent
func DataDir() (string, error) {
	var base string

	if runtime.GOOS == "windows" {
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			base = localAppData
		} else {
			// Fallback if LOCALAPPDATA is not set (unusual for Windows)
			dir, err := os.UserConfigDir()
			if err != nil {
				return "", fmt.Errorf("get user config dir: %w", err)
			}
			base = dir
		}
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("get user config dir: %w", err)
		}
		base = dir
	}

	return filepath.Join(base, appinfo.DirName), nil
}

// ConfigPath returns the path to config.json.
func ConfigPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appinfo.ConfigFileName), nil
}

// SaveDir returns the quick-save directory: cfg.SaveDir when set, otherwise
// the "saves" directory next to the running executable.
func SaveDir(cfg Config) (string, error) {
	if cfg.SaveDir != "" {
		return cfg.SaveDir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), appinfo.SaveDirName), nil
}
