// Package cliconfig implements the layered CLI configuration: defaults,
// then a TOML config file, then ANIMFORGE_* environment variables, then
// command-line flags. Later layers win; explicitly set flags are never
// overridden by earlier layers.
package cliconfig

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// Config holds CLI configuration for animforge.
type Config struct {
	FPS              int
	Loop             bool
	CompressionLevel int
	OutputDir        string

	DebounceDelay time.Duration
	ExportOnIdle  bool
	IdleDelay     time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		FPS:              24,
		Loop:             true,
		CompressionLevel: 6,
		OutputDir:        ".",
		DebounceDelay:    200 * time.Millisecond,
		IdleDelay:        2 * time.Second,
	}
}

// Validate checks the configuration and clamps the frame rate into its
// valid range, so an out-of-range rate never reaches the encoder.
func (c *Config) Validate() error {
	if c.FPS < 1 {
		c.FPS = 1
	}
	if c.FPS > 60 {
		c.FPS = 60
	}

	if c.CompressionLevel < 1 || c.CompressionLevel > 9 {
		return fmt.Errorf("compression level must be between 1 and 9, got %d", c.CompressionLevel)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir is required")
	}
	if c.DebounceDelay <= 0 {
		return fmt.Errorf("debounce delay must be positive")
	}
	if c.IdleDelay <= 0 {
		return fmt.Errorf("idle delay must be positive")
	}
	return nil
}

// Logger returns the console logger used by the CLI before the library
// logger is constructed.
func Logger() zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
