// Package config handles application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"refreshnow/internal/collector"
	"refreshnow/internal/refresh"
)

// Config holds application configuration.
type Config struct {
	// Density scales the pull distance needed to commit a refresh
	Density float64 `yaml:"density"`

	// Mode is the edge set that may refresh: none, start, end or both
	Mode string `yaml:"mode"`

	// PageSize is the number of processes loaded per refresh
	PageSize int `yaml:"page_size"`

	// RefreshDelayMS keeps the refresh indicator up for at least this long
	RefreshDelayMS int `yaml:"refresh_delay_ms"`

	// Spring-back physics
	SpringFrequency float64 `yaml:"spring_frequency"`
	SpringDamping   float64 `yaml:"spring_damping"`

	// LogFile receives debug logs while the TUI owns the terminal
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with default values.
func Default() *Config {
	rc := refresh.DefaultConfig()
	return &Config{
		Density:         rc.Density,
		Mode:            refresh.ModeBoth.String(),
		PageSize:        collector.DefaultConfig().PageSize,
		RefreshDelayMS:  600,
		SpringFrequency: rc.SpringFrequency,
		SpringDamping:   rc.SpringDamping,
		LogFile:         filepath.Join(os.TempDir(), "refreshnow.log"),
	}
}

// DefaultPath returns the config file location under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "refreshnow", "config.yaml")
}

// Load loads configuration from path, falling back to defaults when the
// file does not exist. An empty path uses DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	mergeConfig(cfg, &fileCfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig applies the non-zero values of src over dst.
func mergeConfig(dst, src *Config) {
	if src.Density != 0 {
		dst.Density = src.Density
	}
	if src.Mode != "" {
		dst.Mode = src.Mode
	}
	if src.PageSize != 0 {
		dst.PageSize = src.PageSize
	}
	if src.RefreshDelayMS != 0 {
		dst.RefreshDelayMS = src.RefreshDelayMS
	}
	if src.SpringFrequency != 0 {
		dst.SpringFrequency = src.SpringFrequency
	}
	if src.SpringDamping != 0 {
		dst.SpringDamping = src.SpringDamping
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
}

// Validate checks every derived configuration.
func (c *Config) Validate() error {
	if _, err := c.RefreshMode(); err != nil {
		return err
	}
	if err := c.Refresh().Validate(); err != nil {
		return err
	}
	if err := c.Collector().Validate(); err != nil {
		return err
	}
	if c.RefreshDelayMS < 0 {
		return fmt.Errorf("refresh_delay_ms must not be negative, got %d", c.RefreshDelayMS)
	}
	return nil
}

// RefreshMode parses Mode.
func (c *Config) RefreshMode() (refresh.Mode, error) {
	return refresh.ParseMode(c.Mode)
}

// Refresh returns the controller configuration.
func (c *Config) Refresh() refresh.Config {
	return refresh.DefaultConfig().
		WithDensity(c.Density).
		WithSpring(c.SpringFrequency, c.SpringDamping)
}

// Collector returns the process collector configuration.
func (c *Config) Collector() collector.Config {
	return collector.DefaultConfig().WithPageSize(c.PageSize)
}

// RefreshDelay is the minimum time a refresh stays visible.
func (c *Config) RefreshDelay() time.Duration {
	return time.Duration(c.RefreshDelayMS) * time.Millisecond
}
