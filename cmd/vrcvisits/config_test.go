package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/graaaaa/vrcvisits/internal/config"
)

// useTempDataDir points the config location at a fresh temp directory.
func useTempDataDir(t *testing.T) {
	t.Helper()
	base := t.TempDir()
	t.Setenv("LOCALAPPDATA", base)
	t.Setenv("XDG_CONFIG_HOME", base)
	t.Setenv("HOME", base)
}

func TestInitConfig(t *testing.T) {
	useTempDataDir(t)
	path, err := config.ConfigPath()
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := initConfig(&out, false); err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != path {
		t.Errorf("printed %q, want %q", got, path)
	}
	cfg, err := config.LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("load written config: %v", err)
	}
	if cfg.SchemaVersion != config.CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", cfg.SchemaVersion, config.CurrentSchemaVersion)
	}

	if err := initConfig(&out, false); err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected existing config to be kept, got %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"schema_version":1,"ignore_public":true}`), 0600); err != nil {
		t.Fatal(err)
	}
	if err := initConfig(&out, true); err != nil {
		t.Fatalf("initConfig --force: %v", err)
	}
	cfg, err = config.LoadConfigFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IgnorePublic {
		t.Error("expected --force to restore defaults")
	}
}
