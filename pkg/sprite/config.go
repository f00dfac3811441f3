package sprite

import (
	"fmt"
	"time"

	"github.com/animforge/animforge/internal/domain"
	"github.com/animforge/animforge/internal/encoder"
)

// Config holds the session configuration.
type Config struct {
	// FPS is the playback rate in frames per second, 1 to 60 inclusive.
	// It governs both preview scheduling and the exported playback rate.
	FPS int

	// Loop marks the animation as looping in the exported manifest.
	// The flag is advisory; the encoder does not enforce it.
	Loop bool

	// CompressionLevel is the deflate level for the archive, 1 (fastest)
	// to 9 (smallest).
	CompressionLevel int

	// OutputDir is where exported archives are stored.
	OutputDir string

	// IdleResetDelay is how long a finished or failed export status stays
	// visible before fading back to idle.
	IdleResetDelay time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FPS:              24,
		Loop:             true,
		CompressionLevel: encoder.DefaultCompressionLevel,
		OutputDir:        ".",
		IdleResetDelay:   3 * time.Second,
	}
}

// SetDefaults fills zero-valued fields with defaults.
func (c *Config) SetDefaults() {
	def := DefaultConfig()
	if c.FPS == 0 {
		c.FPS = def.FPS
	}
	if c.CompressionLevel == 0 {
		c.CompressionLevel = def.CompressionLevel
	}
	if c.OutputDir == "" {
		c.OutputDir = def.OutputDir
	}
	if c.IdleResetDelay == 0 {
		c.IdleResetDelay = def.IdleResetDelay
	}
}

// Validate checks the configuration. Frame rates outside [1,60] are
// rejected here so an out-of-range rate never reaches the encoder.
func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > 60 {
		return fmt.Errorf("%w: fps must be between 1 and 60, got %d", domain.ErrInvalidConfig, c.FPS)
	}
	if c.CompressionLevel < 1 || c.CompressionLevel > 9 {
		return fmt.Errorf("%w: compression level must be between 1 and 9, got %d", domain.ErrInvalidConfig, c.CompressionLevel)
	}
	if c.IdleResetDelay < 0 {
		return fmt.Errorf("%w: idle reset delay must not be negative", domain.ErrInvalidConfig)
	}
	return nil
}
