// Package config loads lr settings from .env, the YAML config file, and
// environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/lease-rules/internal/matching"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Config holds lr configuration persisted to disk.
type Config struct {
	DBPath            string `yaml:"db_path,omitempty"`
	DevMode           bool   `yaml:"dev_mode,omitempty"`
	Port              int    `yaml:"port,omitempty"`
	DurationTolerance *int   `yaml:"duration_tolerance,omitempty"`
	MinVerifications  *int   `yaml:"min_verifications,omitempty"`
	ServerURL         string `yaml:"server_url,omitempty"`
}

// MatchOptions returns the matching thresholds from the config. Unset
// thresholds stay nil so matching applies its defaults.
func (c Config) MatchOptions() matching.Options {
	return matching.Options{
		DurationTolerance: c.DurationTolerance,
		MinVerifications:  c.MinVerifications,
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "lr", "config.yaml"), nil
}

// Load reads .env from the working directory if present, then the config
// file, then applies LR_* environment overrides.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)

	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return cfg, nil
}

// LoadFile reads only the config file, without .env or environment
// overrides. Returns a zero-value config if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LR_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LR_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("LR_DEV_MODE"); v != "" {
		cfg.DevMode = v == "true"
	}
	if v := os.Getenv("LR_PORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("ignoring invalid LR_PORT", "value", v)
		} else {
			cfg.Port = n
		}
	}
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
