package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
)

// CurrentSchemaVersion is the current config schema version.
const CurrentSchemaVersion = 1

// Environment variable names for config overrides.
// Priority: Flags > Environment > Config File > Default
const (
	EnvLogPath      = "VRCVISITS_LOG_PATH"
	EnvSaveDir      = "VRCVISITS_SAVE_DIR"
	EnvIgnorePublic = "VRCVISITS_IGNORE_PUBLIC"
	EnvIgnoreWorlds = "VRCVISITS_IGNORE_WORLDS"
	EnvIgnoreByTime = "VRCVISITS_IGNORE_BY_TIME"
	EnvNoDialog     = "VRCVISITS_NO_DIALOG"
)

// Config holds persistent defaults for the command line.
// LogPath and SaveDir override the VRChat log directory and the quick-save
// directory. IgnoreByTimeMin hides visits older than that many minutes
// (0 disables it).
type Config struct {
	SchemaVersion   int      `json:"schema_version"`
	LogPath         string   `json:"log_path"`
	SaveDir         string   `json:"save_dir"`
	IgnorePublic    bool     `json:"ignore_public"`
	IgnoreWorlds    []string `json:"ignore_worlds"`
	IgnoreByTimeMin int      `json:"ignore_by_time_min"`
	NoDialog        bool     `json:"no_dialog"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SchemaVersion:   CurrentSchemaVersion,
		LogPath:         "", // auto-detect
		SaveDir:         "", // next to the executable
		IgnorePublic:    false,
		IgnoreWorlds:    []string{},
		IgnoreByTimeMin: 0,
		NoDialog:        false,
	}
}

// LoadConfig reads config from disk. If the file doesn't exist or is corrupt,
// it returns DefaultConfig with a warning logged (non-fatal).
func LoadConfig() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}

	return LoadConfigFrom(path)
}

// LoadConfigFrom reads config from the specified path.
func LoadConfigFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		log.Printf("Warning: failed to read config file: %v, using defaults", err)
		return cfg, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		log.Printf("Warning: config file is corrupt: %v, using defaults", err)
		return DefaultConfig(), nil
	}

	if cfg.SchemaVersion != CurrentSchemaVersion {
		log.Printf("Warning: config schema version mismatch (got %d, expected %d), using defaults",
			cfg.SchemaVersion, CurrentSchemaVersion)
		return DefaultConfig(), nil
	}

	return normalizeConfig(cfg), nil
}

// normalizeConfig validates and normalizes config values.
func normalizeConfig(cfg Config) Config {
	cfg.SchemaVersion = CurrentSchemaVersion

	if cfg.IgnoreByTimeMin < 0 {
		cfg.IgnoreByTimeMin = 0
	}

	cfg.IgnoreWorlds = normalizeWorldIDs(cfg.IgnoreWorlds)

	return cfg
}

// normalizeWorldIDs trims entries and drops empty ones and duplicates.
func normalizeWorldIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// SaveConfig writes config to disk atomically.
func SaveConfig(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	return SaveConfigTo(cfg, path)
}

// SaveConfigTo writes config to the specified path atomically.
func SaveConfigTo(cfg Config, path string) error {
	return writeJSONAtomic(path, normalizeConfig(cfg))
}

// ApplyEnvOverrides applies environment variable overrides to the config.
// Environment variables take priority over config file values.
func ApplyEnvOverrides(cfg Config) Config {
	if v := os.Getenv(EnvLogPath); v != "" {
		cfg.LogPath = v
	}

	if v := os.Getenv(EnvSaveDir); v != "" {
		cfg.SaveDir = v
	}

	if v := os.Getenv(EnvIgnorePublic); v != "" {
		cfg.IgnorePublic = parseBool(v)
	}

	if v := os.Getenv(EnvIgnoreWorlds); v != "" {
		cfg.IgnoreWorlds = SplitWorldIDs(v)
	}

	if v := os.Getenv(EnvIgnoreByTime); v != "" {
		if mins, err := strconv.Atoi(v); err == nil && mins >= 0 {
			cfg.IgnoreByTimeMin = mins
		}
	}

	if v := os.Getenv(EnvNoDialog); v != "" {
		cfg.NoDialog = parseBool(v)
	}

	return cfg
}

// SplitWorldIDs parses a comma-separated world id list.
func SplitWorldIDs(s string) []string {
	return normalizeWorldIDs(strings.Split(s, ","))
}

// parseBool parses a boolean from various string representations.
// Accepts: "true", "1", "yes", "on" (case-insensitive) as true.
// All other values are treated as false.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
