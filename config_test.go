package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
bpm = 96
beats = 3
subdivision = 2
wave = "Triangle"
preset = "subtle"
sample_rate = 48000
device = "Built-in Output"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.BPM != 96 || cfg.Beats != 3 || cfg.Subdivision != 2 {
		t.Errorf("beat settings %+v not parsed", cfg)
	}
	if cfg.Wave != "Triangle" || cfg.Preset != "subtle" {
		t.Errorf("sound settings %+v not parsed", cfg)
	}
	if cfg.SampleRate != 48000 || cfg.Device != "Built-in Output" {
		t.Errorf("output settings %+v not parsed", cfg)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("beats = 4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.BPM != 120 {
		t.Errorf("bpm %v, want default 120", cfg.BPM)
	}
	if cfg.Beats != 4 {
		t.Errorf("beats %v, want 4", cfg.Beats)
	}
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("explicitly named missing config should error")
	}
}
