package cliptrim

import (
	"fmt"
	"time"

	"github.com/bft-labs/cliptrim/internal/domain"
)

// Default values applied by Config.SetDefaults and DefaultConfig.
const (
	// DefaultPadding is the border width in pixels kept around the content.
	DefaultPadding = 10

	// DefaultTolerance is the per-pixel luma distance up to which a pixel
	// still counts as background.
	DefaultTolerance = 30

	// DefaultPollInterval is how often the clipboard is checked for changes.
	DefaultPollInterval = time.Second
)

// Config holds the configuration for a Cliptrim instance.
type Config struct {
	// Padding is the exact border width in pixels around the detected
	// content after normalization. Zero trims the border entirely.
	Padding int

	// Tolerance is the maximum luma distance (0-255) from the background
	// color at which a pixel still counts as background. Zero requires an
	// exact color match.
	Tolerance int

	// PollInterval is the delay between clipboard checks.
	PollInterval time.Duration

	// Once processes the current clipboard contents a single time and
	// stops instead of polling.
	Once bool

	// ConfigPath is the TOML configuration file backing this instance,
	// if any. It is handed to plugins so they can watch it for changes.
	ConfigPath string
}

// DefaultConfig returns a Config with the default settings.
func DefaultConfig() Config {
	return Config{
		Padding:      DefaultPadding,
		Tolerance:    DefaultTolerance,
		PollInterval: DefaultPollInterval,
	}
}

// SetDefaults fills unset fields with default values.
// Padding and Tolerance are left as given: zero is meaningful for both
// (tight crop, exact background match).
func (c *Config) SetDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Padding < 0 {
		return fmt.Errorf("%w: padding must not be negative", domain.ErrInvalidConfig)
	}
	if c.Tolerance < 0 || c.Tolerance > 255 {
		return fmt.Errorf("%w: tolerance must be between 0 and 255", domain.ErrInvalidConfig)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", domain.ErrInvalidConfig)
	}
	return nil
}
