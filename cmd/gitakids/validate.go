package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/gitakids/internal/catalog"
	"github.com/hammamikhairi/gitakids/internal/timeline"
)

func (c *cli) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the catalog and splash files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			var failed bool

			lib, err := c.library()
			switch {
			case err == nil:
				fmt.Fprintf(out, "catalog ok: %d chapters, %d narrations, %d podcast episodes\n",
					lib.Len(), len(lib.AudioTracks()), len(lib.PodcastEpisodes()))
			default:
				failed = true
				var ie *catalog.IntegrityError
				if errors.As(err, &ie) {
					fmt.Fprintf(out, "catalog has %d problem(s):\n", len(ie.Problems))
					for _, p := range ie.Problems {
						fmt.Fprintf(out, "  - %s\n", p)
					}
				} else {
					fmt.Fprintf(out, "catalog: %v\n", err)
				}
			}

			phases, err := c.phases()
			if err == nil {
				var ctrl *timeline.Controller
				ctrl, err = timeline.New(phases, nil)
				if err == nil {
					fmt.Fprintf(out, "splash ok: %d phases, %s\n", len(phases), ctrl.Duration())
				}
			}
			if err != nil {
				failed = true
				fmt.Fprintf(out, "splash: %v\n", err)
			}

			if failed {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}
