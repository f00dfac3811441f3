package cliconfig

import "os"

// Environment variable names recognized by the CLI.
const (
	envFPS              = "ANIMFORGE_FPS"
	envLoop             = "ANIMFORGE_LOOP"
	envCompressionLevel = "ANIMFORGE_COMPRESSION_LEVEL"
	envOutputDir        = "ANIMFORGE_OUTPUT_DIR"
	envDebounceDelay    = "ANIMFORGE_DEBOUNCE_DELAY"
	envExportOnIdle     = "ANIMFORGE_EXPORT_ON_IDLE"
	envIdleDelay        = "ANIMFORGE_IDLE_DELAY"
)

// ApplyEnvConfig applies ANIMFORGE_* environment variables to the Config.
// Env vars override file config but are overridden by explicitly set flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setIntFromString("fps", os.Getenv(envFPS), &cfg.FPS); err != nil {
		return err
	}
	s.setBoolFromString("loop", os.Getenv(envLoop), &cfg.Loop)
	if err := s.setIntFromString("level", os.Getenv(envCompressionLevel), &cfg.CompressionLevel); err != nil {
		return err
	}
	s.setString("out", os.Getenv(envOutputDir), &cfg.OutputDir)
	s.setBoolFromString("export-on-idle", os.Getenv(envExportOnIdle), &cfg.ExportOnIdle)

	if err := s.setDuration("debounce", os.Getenv(envDebounceDelay), &cfg.DebounceDelay); err != nil {
		return err
	}
	return s.setDuration("idle-delay", os.Getenv(envIdleDelay), &cfg.IdleDelay)
}
