package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/hammamikhairi/gitakids/internal/domain"
)

// FormatVerse lays out one verse for a terminal of the given width: the
// original text, the translation, the story and the discussion questions.
func FormatVerse(ch domain.Chapter, v domain.Verse, width int, theme Theme) string {
	st := theme.styles()
	wrap := max(20, width-2*theme.Gutter)
	gap := strings.Repeat("\n", theme.Gap+1)

	var b strings.Builder
	b.WriteString(st.title.Render(fmt.Sprintf("Chapter %d, Verse %d", ch.Number, v.Number)))
	b.WriteString("  ")
	b.WriteString(st.muted.Render(ch.Title()))
	b.WriteString(gap)

	if v.Original != "" {
		b.WriteString(st.subtitle.Render(wordwrap.String(v.Original, wrap)))
		b.WriteString(gap)
	}
	b.WriteString(st.text.Render(wordwrap.String(v.Translation, wrap)))

	if v.Story != "" {
		b.WriteString(gap)
		b.WriteString(st.accent.Render("Story time"))
		b.WriteByte('\n')
		b.WriteString(st.text.Render(wordwrap.String(v.Story, wrap)))
	}
	if len(v.Questions) > 0 {
		b.WriteString(gap)
		b.WriteString(st.secondary.Render("Let's talk"))
		for i, q := range v.Questions {
			b.WriteByte('\n')
			b.WriteString(st.text.Render(wordwrap.String(fmt.Sprintf("%d. %s", i+1, q), wrap)))
		}
	}
	return b.String()
}

// FormatChapterLine is the one-line listing entry for a chapter.
func FormatChapterLine(ch domain.Chapter) string {
	ages := fmt.Sprintf("%d+", ch.Ages.Min)
	if ch.Ages.Max > 0 {
		ages = fmt.Sprintf("%d-%d", ch.Ages.Min, ch.Ages.Max)
	}
	return fmt.Sprintf("%2d. %s %-8s ages %s", ch.Number, padCells(ch.Title(), 30), ch.Difficulty, ages)
}

// padCells right-pads s to width terminal cells.
func padCells(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// FormatTrack describes an audio track in one line.
func FormatTrack(t domain.AudioTrack) string {
	line := fmt.Sprintf("%s (%s)", t.Title, fmtDuration(t.Duration))
	if t.Narrator != "" {
		line += " read by " + t.Narrator
	}
	return line
}

// FormatEpisode describes a podcast episode in one line.
func FormatEpisode(e domain.PodcastEpisode) string {
	return fmt.Sprintf("Episode %d: %s (%s)", e.Episode, e.Title, fmtDuration(e.Duration))
}

func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
