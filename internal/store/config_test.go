package store

import (
	"testing"
)

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("TEMARIO_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Fatalf("expected defaults, got %#v", cfg)
	}

	t.Setenv("TEMARIO_DEPTH_POLICY", "subtree")
	t.Setenv("TEMARIO_BACKUP", "true")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DepthPolicy != "subtree" || !cfg.Backup {
		t.Fatalf("env not applied: %#v", cfg)
	}
}

func TestLoadConfig_RejectsInvalidPolicy(t *testing.T) {
	t.Setenv("TEMARIO_CONFIG_DIR", t.TempDir())
	t.Setenv("TEMARIO_DEPTH_POLICY", "cascade")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	t.Setenv("TEMARIO_CONFIG_DIR", t.TempDir())

	want := DefaultConfig()
	want.File = "curso.lista"
	want.CheckConflicts = true
	want.MaxTextBytes = 2000
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got != want {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}
