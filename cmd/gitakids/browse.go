package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/gitakids/internal/display"
	"github.com/hammamikhairi/gitakids/internal/domain"
)

func (c *cli) newChaptersCmd() *cobra.Command {
	var (
		difficulty string
		age        int
		banner     bool
	)
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "List chapters in reading order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter := domain.ChapterFilter{Age: age}
			if difficulty != "" {
				d, err := domain.ParseDifficulty(difficulty)
				if err != nil {
					return err
				}
				filter.Difficulty = d
			}

			lib, err := c.library()
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			out := cmd.OutOrStdout()
			if banner {
				fmt.Fprint(out, display.RenderBanner(display.TermWidth(), display.DefaultTheme()))
				fmt.Fprintln(out)
			}
			chapters := lib.Chapters(filter)
			if len(chapters) == 0 {
				fmt.Fprintln(out, "No chapters match.")
				return nil
			}
			for _, ch := range chapters {
				fmt.Fprintln(out, display.FormatChapterLine(ch))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "only chapters of this level: easy, medium or advanced")
	cmd.Flags().IntVar(&age, "age", 0, "only chapters suitable for this age")
	cmd.Flags().BoolVar(&banner, "banner", false, "print the title banner first")
	return cmd
}

func (c *cli) newVerseCmd() *cobra.Command {
	var width int
	cmd := &cobra.Command{
		Use:   "verse <chapter> <verse>",
		Short: "Print one verse with its story and questions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chNum, err := parseNumber("chapter", args[0])
			if err != nil {
				return err
			}
			vNum, err := parseNumber("verse", args[1])
			if err != nil {
				return err
			}

			lib, err := c.library()
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			ch, err := lib.Chapter(chNum)
			if err != nil {
				return fmt.Errorf("chapter %d: %w", chNum, err)
			}
			v, err := lib.Verse(chNum, vNum)
			if err != nil {
				return fmt.Errorf("verse %d.%d: %w", chNum, vNum, err)
			}

			if width <= 0 {
				width = display.TermWidth()
			}
			fmt.Fprintln(cmd.OutOrStdout(), display.FormatVerse(ch, v, width, display.DefaultTheme()))
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 0, "wrap width (default: terminal width)")
	return cmd
}

func (c *cli) newListenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen [chapter]",
		Short: "Show narrations and podcast episodes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.library()
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, "Narrations")
				for _, t := range lib.AudioTracks() {
					fmt.Fprintf(out, "  %-18s %s\n", t.ID, display.FormatTrack(t))
				}
				fmt.Fprintln(out, "Podcast")
				for _, e := range lib.PodcastEpisodes() {
					fmt.Fprintf(out, "  %-18s %s\n", e.ID, display.FormatEpisode(e))
				}
				return nil
			}

			n, err := parseNumber("chapter", args[0])
			if err != nil {
				return err
			}
			if _, err := lib.Chapter(n); err != nil {
				return fmt.Errorf("chapter %d: %w", n, err)
			}
			if t, err := lib.AudioForChapter(n); err == nil {
				fmt.Fprintf(out, "Narration: %s\n  %s\n", display.FormatTrack(t), t.Source)
			} else {
				fmt.Fprintln(out, "Narration: none yet")
			}
			if e, err := lib.PodcastForChapter(n); err == nil {
				fmt.Fprintf(out, "Podcast:   %s\n  %s\n", display.FormatEpisode(e), e.Source)
			} else {
				fmt.Fprintln(out, "Podcast:   none yet")
			}
			return nil
		},
	}
}

func (c *cli) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Find chapters by name, summary or verse text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := c.library()
			if err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}
			out := cmd.OutOrStdout()
			found := lib.Search(args[0])
			if len(found) == 0 {
				fmt.Fprintf(out, "No chapters mention %q.\n", args[0])
				return nil
			}
			for _, ch := range found {
				fmt.Fprintln(out, display.FormatChapterLine(ch))
			}
			return nil
		},
	}
}

func parseNumber(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", what, s)
	}
	return n, nil
}
