// Package tracker wires the habit21 runtime: configuration, logging,
// storage and the achievement service.
package tracker

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all habit21 configuration.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Challenge ChallengeConfig `toml:"challenge"`
	Logging   LoggingConfig   `toml:"logging"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Migration MigrationConfig `toml:"migration"`
}

// StorageConfig controls where the SQLite database lives.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// ChallengeConfig describes the challenge the user signed up for.
type ChallengeConfig struct {
	Days   int `toml:"days"`
	Habits int `toml:"habits"` // max habits per user
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text or json
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `toml:"textfile"` // empty = disabled
}

// MigrationConfig gates one-time startup steps.
type MigrationConfig struct {
	RetroactiveOnStart bool `toml:"retroactive_on_start"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Dir: habit21Home(),
		},
		Challenge: ChallengeConfig{
			Days:   21,
			Habits: 6,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Migration: MigrationConfig{
			RetroactiveOnStart: true,
		},
	}
}

// LoadConfig reads config from ~/.habit21/config.toml, falling back to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := ConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet, use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Challenge.Days <= 0 {
		cfg.Challenge.Days = 21
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = habit21Home()
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.habit21/config.toml.
func SaveConfig(cfg Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// ConfigPath returns the location of config.toml.
func ConfigPath() string {
	return filepath.Join(habit21Home(), "config.toml")
}

// habit21Home returns the habit21 data directory.
func habit21Home() string {
	if env := os.Getenv("HABIT21_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".habit21")
}
