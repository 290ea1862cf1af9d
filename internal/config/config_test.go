package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected default config, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kestrel.yaml")
	contents := "ttSizeMB: 256\nlogLevel: debug\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TranspositionSizeMB != 256 {
		t.Errorf("expected ttSizeMB override, got %d", cfg.TranspositionSizeMB)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected logLevel override, got %q", cfg.LogLevel)
	}
	if cfg.DefaultMoveTimeMS != Default().DefaultMoveTimeMS {
		t.Errorf("expected untouched field to keep default, got %d", cfg.DefaultMoveTimeMS)
	}
}
