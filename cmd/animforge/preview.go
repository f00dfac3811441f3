package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/animforge/animforge/internal/cliconfig"
	"github.com/animforge/animforge/internal/tui"
)

func newPreviewCmd(cfg *cliconfig.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <dir>",
		Short: "Play a directory of images in the terminal",
		Long: "Ingest every image file in the directory and step through the\n" +
			"frames at the configured rate. Space pauses, r rewinds, +/- change\n" +
			"the rate, q quits.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			session, err := newSession(cfg, logger)
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

			model := tui.NewModel(session, cfg.FPS)
			_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
			return err
		},
	}
}
