package collector

import "time"

// Config contains configurable parameters for the process collector.
// Use DefaultConfig() to get sensible defaults, then override as needed.
type Config struct {
	PageSize int           // Rows returned per page (default: 25)
	Timeout  time.Duration // Deadline for collecting one page (default: 2s)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		PageSize: 25,
		Timeout:  2 * time.Second,
	}
}

// WithPageSize returns a copy of the config with modified page size.
func (c Config) WithPageSize(n int) Config {
	c.PageSize = n
	return c
}

// WithTimeout returns a copy of the config with modified collection timeout.
func (c Config) WithTimeout(d time.Duration) Config {
	c.Timeout = d
	return c
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return &ConfigError{Field: "PageSize", Message: "must be positive"}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "Timeout", Message: "must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}
