package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/animforge/animforge/internal/cliconfig"
)

var longHelp = strings.TrimSpace(`
Turn an ordered set of still images into a single portable animated-sprite
archive: a compressed container holding a JSON manifest (canvas size, frame
rate, per-frame placement) plus one raster file per frame.

Frames sort naturally, so frame2.png comes before frame10.png. The canvas
size is probed from the first ingested image and shared by the whole
sequence. Configure via file ($HOME/.animforge/config.toml), ANIMFORGE_*
environment variables, or flags.
`)

var exampleUsage = strings.TrimSpace(`
  animforge encode ./frames --fps 24 -o ./exports
  animforge preview ./frames --fps 12
  animforge watch ./frames --export-on-idle
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "animforge",
		Short:   "Package image sequences as animated-sprite archives",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.animforge/config.toml),
			// then env vars, then apply flag overrides.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Environment variables (ANIMFORGE_*) override file config but
			// are overridden by flags (checked via changed map).
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			return cfg.Validate()
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.animforge/config.toml)")
	root.PersistentFlags().IntVar(&cfg.FPS, "fps", cfg.FPS, "playback rate in frames per second (1-60)")
	root.PersistentFlags().BoolVar(&cfg.Loop, "loop", cfg.Loop, "mark the animation as looping in the manifest")
	root.PersistentFlags().IntVar(&cfg.CompressionLevel, "level", cfg.CompressionLevel, "archive deflate level, 1 (fastest) to 9 (smallest)")
	root.PersistentFlags().StringVarP(&cfg.OutputDir, "out", "o", cfg.OutputDir, "directory for exported archives")

	root.AddCommand(newEncodeCmd(&cfg, log))
	root.AddCommand(newPreviewCmd(&cfg, log))
	root.AddCommand(newWatchCmd(&cfg, log))

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("animforge")
		os.Exit(1)
	}
}
