package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hammamikhairi/gitakids/internal/catalog"
	"github.com/hammamikhairi/gitakids/internal/display"
)

// addReadFlags registers the reader's flags on the root so both
// "gitakids --skip-splash" and "gitakids read --skip-splash" work.
func addReadFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.PersistentFlags()
	f.Bool("watch", false, "reload the catalog file when it changes (needs --catalog)")
	f.Bool("skip-splash", false, "open straight on the chapter list")
	f.Int("fps", 60, "splash frame rate (1-120)")
	f.Bool("alt-screen", true, "use the terminal's alternate screen")
	for key, flag := range map[string]string{
		"watch":       "watch",
		"skip_splash": "skip-splash",
		"frame_rate":  "fps",
		"alt_screen":  "alt-screen",
	} {
		_ = v.BindPFlag(key, f.Lookup(flag))
	}
}

func (c *cli) newReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read",
		Short: "Open the interactive reader (default)",
		Args:  cobra.NoArgs,
		RunE:  c.runRead,
	}
}

func (c *cli) runRead(cmd *cobra.Command, _ []string) error {
	lib, err := c.library()
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	// A broken splash file is not fatal; the reader opens without it.
	phases, err := c.phases()
	if err != nil {
		c.log.Error("loading splash: %v", err)
	}

	app := display.NewApp(display.Config{
		Library:       lib,
		Phases:        phases,
		FrameInterval: c.cfg.FrameInterval(),
		SkipSplash:    c.cfg.SkipSplash,
		Log:           c.log.With("display"),
	})

	opts := []tea.ProgramOption{
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	}
	if c.cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	program := tea.NewProgram(app, opts...)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if c.cfg.Watch {
		w, err := catalog.NewWatcher(c.cfg.CatalogPath, c.log.With("watcher"), func(idx *catalog.Index) {
			program.Send(display.CatalogReloadedMsg{Library: idx})
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			w.Close()
			return err
		}
		defer w.Close()
	}

	c.log.Info("reader started (%d chapters)", lib.Len())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running reader: %w", err)
	}
	c.log.Info("reader closed")
	return nil
}
