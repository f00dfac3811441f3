package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	FPS              int    `toml:"fps"`
	Loop             *bool  `toml:"loop"`
	CompressionLevel int    `toml:"compression_level"`
	OutputDir        string `toml:"output_dir"`
	DebounceDelay    string `toml:"debounce_delay"`
	ExportOnIdle     *bool  `toml:"export_on_idle"`
	IdleDelay        string `toml:"idle_delay"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.animforge/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".animforge", "config.toml")
	}
	return ""
}

// FileExists reports whether a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("fps", fc.FPS, &cfg.FPS)
	s.setBool("loop", fc.Loop, &cfg.Loop)
	s.setInt("level", fc.CompressionLevel, &cfg.CompressionLevel)
	s.setString("out", fc.OutputDir, &cfg.OutputDir)
	s.setBool("export-on-idle", fc.ExportOnIdle, &cfg.ExportOnIdle)

	if err := s.setDuration("debounce", fc.DebounceDelay, &cfg.DebounceDelay); err != nil {
		return err
	}
	return s.setDuration("idle-delay", fc.IdleDelay, &cfg.IdleDelay)
}
