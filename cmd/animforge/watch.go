package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/animforge/animforge/internal/cliconfig"
	"github.com/animforge/animforge/internal/watch"
	"github.com/animforge/animforge/pkg/log"
	"github.com/animforge/animforge/pkg/sprite"
)

func newWatchCmd(cfg *cliconfig.Config, logger zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Monitor a directory and ingest new images as they appear",
		Long: "Watch the directory for new image files and ingest them into the\n" +
			"session as they land. With --export-on-idle, an archive is exported\n" +
			"whenever the directory has been quiet for the idle delay.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			session, err := newSession(cfg, logger)
			if err != nil {
				return err
			}

			watcher := watch.New(session, watch.Config{
				Dir:           args[0],
				DebounceDelay: cfg.DebounceDelay,
			}, log.NewZerologAdapterWithLogger(logger))

			if err := watcher.Start(ctx); err != nil {
				return err
			}
			defer watcher.Stop()

			logger.Info().
				Str("dir", args[0]).
				Bool("export_on_idle", cfg.ExportOnIdle).
				Msg("watching")

			if cfg.ExportOnIdle {
				exportOnIdle(ctx, session, cfg.IdleDelay, logger)
			} else {
				<-ctx.Done()
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&cfg.ExportOnIdle, "export-on-idle", cfg.ExportOnIdle, "export an archive after the directory goes quiet")
	cmd.Flags().DurationVar(&cfg.IdleDelay, "idle-delay", cfg.IdleDelay, "quiet period before an idle export")
	cmd.Flags().DurationVar(&cfg.DebounceDelay, "debounce", cfg.DebounceDelay, "delay before ingesting a burst of file events")
	return cmd
}

// exportOnIdle re-exports whenever the frame count has been stable for
// one idle delay since the last export. Runs until the context ends.
func exportOnIdle(ctx context.Context, session *sprite.Session, idle time.Duration, logger zerolog.Logger) {
	ticker := time.NewTicker(idle)
	defer ticker.Stop()

	exported := 0
	stable := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n := session.Len()
			if n == 0 || n == exported || n != stable {
				// Empty, already exported, or still growing.
				stable = n
				continue
			}

			res, err := session.Export(ctx)
			if err != nil {
				if errors.Is(err, sprite.ErrExportInProgress) {
					continue
				}
				logger.Error().Err(err).Msg("idle export failed")
				continue
			}
			exported = n
			logger.Info().
				Str("archive", res.Name).
				Int("frames", res.Frames).
				Int("bytes", res.Bytes).
				Msg("idle export complete")
		}
	}
}
