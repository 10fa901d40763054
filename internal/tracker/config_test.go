package tracker

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("HABIT21_HOME", "/tmp/h21")
	cfg := DefaultConfig()

	if cfg.Storage.Dir != "/tmp/h21" {
		t.Errorf("Storage.Dir = %q, want %q", cfg.Storage.Dir, "/tmp/h21")
	}
	if cfg.Challenge.Days != 21 {
		t.Errorf("Challenge.Days = %d, want %d", cfg.Challenge.Days, 21)
	}
	if cfg.Challenge.Habits != 6 {
		t.Errorf("Challenge.Habits = %d, want %d", cfg.Challenge.Habits, 6)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if !cfg.Migration.RetroactiveOnStart {
		t.Error("Migration.RetroactiveOnStart should default to true")
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	t.Setenv("HABIT21_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Challenge.Days != 21 {
		t.Errorf("Challenge.Days = %d, want defaults", cfg.Challenge.Days)
	}
}

func TestSaveLoadConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HABIT21_HOME", home)

	cfg := DefaultConfig()
	cfg.Challenge.Habits = 3
	cfg.Logging.Format = "json"
	cfg.Metrics.Textfile = filepath.Join(home, "habit21.prom")
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig() error: %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if got.Challenge.Habits != 3 {
		t.Errorf("Challenge.Habits = %d, want 3", got.Challenge.Habits)
	}
	if got.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", got.Logging.Format)
	}
	if got.Metrics.Textfile != cfg.Metrics.Textfile {
		t.Errorf("Metrics.Textfile = %q, want %q", got.Metrics.Textfile, cfg.Metrics.Textfile)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HABIT21_HOME", home)
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("[challenge\n"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(); err == nil {
		t.Error("LoadConfig() should fail on malformed TOML")
	}
}

func TestLoadConfig_FixesZeroDays(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HABIT21_HOME", home)
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("[challenge]\ndays = 0\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Challenge.Days != 21 {
		t.Errorf("Challenge.Days = %d, want 21", cfg.Challenge.Days)
	}
}
