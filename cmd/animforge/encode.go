package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/animforge/animforge/internal/cliconfig"
	"github.com/animforge/animforge/pkg/log"
	"github.com/animforge/animforge/pkg/sprite"
)

// imageExts are the filename extensions ingested from a frame directory.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// readFrameDir reads all image files in dir. Ordering does not matter
// here; the session sorts frames by natural name order on ingest.
func readFrameDir(dir string) ([]sprite.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frame dir: %w", err)
	}

	var files []sprite.File
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		content, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read frame %s: %w", e.Name(), err)
		}
		files = append(files, sprite.File{Name: e.Name(), Content: content})
	}
	return files, nil
}

// newSession builds a session from the CLI configuration.
func newSession(cfg *cliconfig.Config, logger zerolog.Logger, opts ...sprite.Option) (*sprite.Session, error) {
	spriteCfg := sprite.Config{
		FPS:              cfg.FPS,
		Loop:             cfg.Loop,
		CompressionLevel: cfg.CompressionLevel,
		OutputDir:        cfg.OutputDir,
		IdleResetDelay:   cfg.IdleDelay,
	}
	opts = append([]sprite.Option{
		sprite.WithLogger(log.NewZerologAdapterWithLogger(logger)),
	}, opts...)
	return sprite.New(spriteCfg, opts...)
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

func newEncodeCmd(cfg *cliconfig.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <dir>",
		Short: "Package a directory of images into one archive",
		Long: "Ingest every image file in the directory, sort the frames by\n" +
			"natural name order, and export one animated-sprite archive to the\n" +
			"output directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			session, err := newSession(cfg, logger, sprite.WithStatusHandler(func(st sprite.Status) {
				if st.Generating {
					logger.Debug().
						Int("progress", st.Progress).
						Str("message", st.Message).
						Msg("export")
				}
			}))
			if err != nil {
				return err
			}

			files, err := readFrameDir(args[0])
			if err != nil {
				return err
			}
			if err := session.Ingest(ctx, files); err != nil {
				return err
			}

			dims := session.CanvasDimensions()
			logger.Info().
				Int("frames", session.Len()).
				Int("width", dims.Width).
				Int("height", dims.Height).
				Int("fps", cfg.FPS).
				Msg("ingested frames")

			res, err := session.Export(ctx)
			if err != nil {
				return err
			}

			logger.Info().
				Str("archive", res.Name).
				Int("frames", res.Frames).
				Int("bytes", res.Bytes).
				Msg("export complete")
			fmt.Fprintln(cmd.OutOrStdout(), res.Path)
			return nil
		},
	}
}
