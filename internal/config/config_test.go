package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigFrom_NotExist(t *testing.T) {
	cfg, err := LoadConfigFrom("/nonexistent/path/config.json")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFrom_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not valid json{{{"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFrom_InvalidVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"schema_version": 999, "ignore_public": true}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if cfg.IgnorePublic {
		t.Error("version mismatch should fall back to defaults")
	}
}

func TestLoadConfigFrom_Normalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"schema_version": 1, "ignore_by_time_min": -5, "ignore_worlds": [" wrld_a ", "", "wrld_b", "wrld_a"]}`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.IgnoreByTimeMin != 0 {
		t.Errorf("IgnoreByTimeMin = %d, want 0", cfg.IgnoreByTimeMin)
	}
	if diff := cmp.Diff([]string{"wrld_a", "wrld_b"}, cfg.IgnoreWorlds); diff != "" {
		t.Errorf("IgnoreWorlds mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	original := Config{
		SchemaVersion:   CurrentSchemaVersion,
		LogPath:         "/custom/logs",
		SaveDir:         "/custom/saves",
		IgnorePublic:    true,
		IgnoreWorlds:    []string{"wrld_a", "wrld_b"},
		IgnoreByTimeMin: 30,
		NoDialog:        true,
	}

	if err := SaveConfigTo(original, path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("round trip mismatch (-saved +loaded):\n%s", diff)
	}

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp-*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogPath, "/env/logs")
	t.Setenv(EnvSaveDir, "/env/saves")
	t.Setenv(EnvIgnorePublic, "yes")
	t.Setenv(EnvIgnoreWorlds, "wrld_x, wrld_y,,")
	t.Setenv(EnvIgnoreByTime, "45")
	t.Setenv(EnvNoDialog, "1")

	got := ApplyEnvOverrides(DefaultConfig())

	want := Config{
		SchemaVersion:   CurrentSchemaVersion,
		LogPath:         "/env/logs",
		SaveDir:         "/env/saves",
		IgnorePublic:    true,
		IgnoreWorlds:    []string{"wrld_x", "wrld_y"},
		IgnoreByTimeMin: 45,
		NoDialog:        true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyEnvOverrides_InvalidIgnoreByTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IgnoreByTimeMin = 10

	for _, v := range []string{"not-a-number", "-3"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv(EnvIgnoreByTime, v)
			got := ApplyEnvOverrides(cfg)
			if got.IgnoreByTimeMin != 10 {
				t.Errorf("IgnoreByTimeMin = %d, want 10 kept", got.IgnoreByTimeMin)
			}
		})
	}
}

func TestApplyEnvOverrides_FalseOverridesFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IgnorePublic = true

	t.Setenv(EnvIgnorePublic, "off")
	if ApplyEnvOverrides(cfg).IgnorePublic {
		t.Error("env value off should override file value true")
	}
}

func TestParseBool(t *testing.T) {
	trueValues := []string{"true", "TRUE", "True", "1", "yes", "YES", "on", "ON", " true ", " 1 "}
	for _, v := range trueValues {
		if !parseBool(v) {
			t.Errorf("parseBool(%q) should be true", v)
		}
	}

	falseValues := []string{"false", "FALSE", "0", "no", "off", "", "invalid", "anything"}
	for _, v := range falseValues {
		if parseBool(v) {
			t.Errorf("parseBool(%q) should be false", v)
		}
	}
}

func TestSaveDir(t *testing.T) {
	dir, err := SaveDir(Config{SaveDir: "/explicit"})
	if err != nil || dir != "/explicit" {
		t.Errorf("SaveDir(explicit) = %q, %v", dir, err)
	}

	dir, err = SaveDir(DefaultConfig())
	if err != nil {
		t.Fatalf("SaveDir(default): %v", err)
	}
	if filepath.Base(dir) != "saves" {
		t.Errorf("SaveDir(default) = %q, want .../saves", dir)
	}
}
