package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/gitakids/internal/timeline"
)

func (c *cli) newSplashCmd() *cobra.Command {
	var (
		trace   bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "splash",
		Short: "Play the splash timeline without a screen",
		Long: "Runs the splash timeline on a ticker at the configured frame rate. " +
			"With --trace every phase start is printed with its offset.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phases, err := c.phases()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			var mu sync.Mutex
			var started time.Time
			elapsed := func() time.Duration {
				mu.Lock()
				defer mu.Unlock()
				return time.Since(started).Round(time.Millisecond)
			}

			opts := []timeline.Option{timeline.WithLogger(c.log.With("splash"))}
			if trace {
				opts = append(opts, timeline.WithPhaseHook(func(i int, name string) {
					fmt.Fprintf(out, "%8s  phase %d  %s\n", elapsed(), i, name)
				}))
			}
			ctrl, err := timeline.New(phases, func() {
				fmt.Fprintf(out, "%8s  complete\n", elapsed())
			}, opts...)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			fmt.Fprintf(out, "splash: %d phases, %s\n", len(phases), ctrl.Duration())
			mu.Lock()
			started = time.Now()
			mu.Unlock()

			if err := timeline.Run(ctx, ctrl, c.cfg.FrameInterval()); err != nil {
				return fmt.Errorf("splash interrupted after %s: %w", elapsed(), err)
			}
			if trace {
				v := ctrl.Values()
				for _, p := range v.Properties() {
					x, y := v.Vector(p)
					fmt.Fprintf(out, "  %-20s %.3f %.3f\n", p, x, y)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&trace, "trace", false, "print phase boundaries and final values")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "give up after this long (0: no limit)")
	return cmd
}
