package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestValidateClampsFPS(t *testing.T) {
	tests := []struct {
		name string
		fps  int
		want int
	}{
		{"below range", 0, 1},
		{"negative", -5, 1},
		{"above range", 120, 60},
		{"in range", 30, 30},
		{"lower bound", 1, 1},
		{"upper bound", 60, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.FPS = tt.fps
			if err := cfg.Validate(); err != nil {
				t.Fatalf("Validate returned error: %v", err)
			}
			if cfg.FPS != tt.want {
				t.Fatalf("fps = %d, want %d", cfg.FPS, tt.want)
			}
		})
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"compression level low", func(c *Config) { c.CompressionLevel = 0 }},
		{"compression level high", func(c *Config) { c.CompressionLevel = 10 }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"zero debounce", func(c *Config) { c.DebounceDelay = 0 }},
		{"zero idle delay", func(c *Config) { c.IdleDelay = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestConfigSetterRespectsChangedFlags(t *testing.T) {
	cfg := DefaultConfig()
	s := newConfigSetter(map[string]bool{"fps": true})

	s.setInt("fps", 60, &cfg.FPS)
	if cfg.FPS != 24 {
		t.Fatalf("changed flag overridden: fps = %d", cfg.FPS)
	}

	s.setInt("level", 9, &cfg.CompressionLevel)
	if cfg.CompressionLevel != 9 {
		t.Fatalf("unchanged flag not applied: level = %d", cfg.CompressionLevel)
	}
}

func TestConfigSetterDuration(t *testing.T) {
	cfg := DefaultConfig()
	s := newConfigSetter(map[string]bool{})

	if err := s.setDuration("debounce", "500ms", &cfg.DebounceDelay); err != nil {
		t.Fatalf("setDuration returned error: %v", err)
	}
	if cfg.DebounceDelay != 500*time.Millisecond {
		t.Fatalf("debounce = %v", cfg.DebounceDelay)
	}

	if err := s.setDuration("debounce", "not-a-duration", &cfg.DebounceDelay); err == nil {
		t.Fatal("expected parse error")
	}
}
