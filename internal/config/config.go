// SPDX-FileCopyrightText: 2025 The SmoothType Authors
// SPDX-License-Identifier: EUPL-1.2

// Package config loads SmoothType settings from TOML and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/smoothtype/smoothtype/internal/domain"
	"github.com/smoothtype/smoothtype/internal/platform"
)

// Environment variables overriding the file.
const (
	EnvDuration = "SMOOTHTYPE_DURATION"
	EnvPolicy   = "SMOOTHTYPE_POLICY"
	EnvAppDir   = "SMOOTHTYPE_APP_DIR"
)

// Platform values accepted in the config file.
const (
	PlatformAuto    = "auto"
	PlatformWindows = "windows"
	PlatformUnix    = "unix"
)

// ErrInvalidConfig is returned when the configuration cannot be used.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the structure of config.toml.
type Config struct {
	// Duration of the cursor transition in milliseconds; 0 disables the patch.
	Duration int    `json:"duration"           toml:"duration"`
	Policy   bool   `json:"policy"             toml:"policy"`
	AppDir   string `json:"app_dir,omitempty"  toml:"app_dir,omitempty"`
	Platform string `json:"platform,omitempty" toml:"platform,omitempty"`
	// RestartCommand is run after enable/disable when the user accepts the restart prompt.
	RestartCommand []string `json:"restart_command,omitempty" toml:"restart_command,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{Platform: PlatformAuto}
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return platform.GetConfigPath()
}

// Load reads the configuration at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, path, err)
	}

	if cfg.Platform == "" {
		cfg.Platform = PlatformAuto
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path, creating the parent directory.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, data, 0o644) //nolint:gosec
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if value := strings.TrimSpace(getenv(EnvDuration)); value != "" {
		duration, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvDuration, value)
		}

		c.Duration = duration
	}

	if value := strings.TrimSpace(getenv(EnvPolicy)); value != "" {
		policy, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvPolicy, value)
		}

		c.Policy = policy
	}

	if value := strings.TrimSpace(getenv(EnvAppDir)); value != "" {
		c.AppDir = value
	}

	return c.Validate()
}

// Validate checks field ranges.
func (c *Config) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %d", ErrInvalidConfig, c.Duration)
	}

	switch strings.ToLower(c.Platform) {
	case "", PlatformAuto, PlatformWindows, PlatformUnix:
	default:
		return fmt.Errorf("%w: platform must be auto, windows or unix, got %q", ErrInvalidConfig, c.Platform)
	}

	return nil
}

// Settings returns the patch-time settings.
func (c *Config) Settings() domain.Settings {
	return domain.Settings{Duration: c.Duration, Policy: c.Policy}
}

// IsWindows reports whether paths use Windows conventions on goos.
func (c *Config) IsWindows(goos string) bool {
	return platform.IsWindows(c.Platform, goos)
}
