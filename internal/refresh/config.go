package refresh

import "time"

const (
	// BaseOverscrollDistance is the commit threshold in device-independent units.
	BaseOverscrollDistance = 48
	// FrameInterval is the spring-back cadence (~60 Hz).
	FrameInterval = 16 * time.Millisecond
)

// Config contains the tunables of a Controller.
// Use DefaultConfig() to get sensible defaults, then override as needed.
type Config struct {
	Density      float64       // Display density scale factor (default: 1.0)
	BaseDistance int           // Base overscroll distance before scaling (default: 48)
	Frame        time.Duration // Spring-back step interval (default: 16ms)

	// Spring-back physics, see harmonica.NewSpring
	SpringFrequency float64 // Angular frequency (default: 10.0)
	SpringDamping   float64 // Damping ratio, 1.0 is critically damped (default: 1.0)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Density:         1.0,
		BaseDistance:    BaseOverscrollDistance,
		Frame:           FrameInterval,
		SpringFrequency: 10.0,
		SpringDamping:   1.0,
	}
}

// WithDensity returns a copy of the config with modified density.
func (c Config) WithDensity(density float64) Config {
	c.Density = density
	return c
}

// WithFrame returns a copy of the config with modified spring-back step interval.
func (c Config) WithFrame(d time.Duration) Config {
	c.Frame = d
	return c
}

// WithSpring returns a copy of the config with modified spring parameters.
func (c Config) WithSpring(frequency, damping float64) Config {
	c.SpringFrequency = frequency
	c.SpringDamping = damping
	return c
}

// MaxOverscrollDistance is the density-scaled commit threshold.
func (c Config) MaxOverscrollDistance() int {
	return int(c.Density * float64(c.BaseDistance))
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	if c.Density <= 0 {
		return &ConfigError{Field: "Density", Message: "must be positive"}
	}
	if c.BaseDistance <= 0 {
		return &ConfigError{Field: "BaseDistance", Message: "must be positive"}
	}
	if c.MaxOverscrollDistance() <= 0 {
		return &ConfigError{Field: "Density", Message: "scales the overscroll distance to zero"}
	}
	if c.Frame <= 0 {
		return &ConfigError{Field: "Frame", Message: "must be positive"}
	}
	if c.SpringFrequency <= 0 {
		return &ConfigError{Field: "SpringFrequency", Message: "must be positive"}
	}
	if c.SpringDamping <= 0 {
		return &ConfigError{Field: "SpringDamping", Message: "must be positive"}
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

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *ConfigError) Unwrap() error {
	return ErrInvalidArgument
}
