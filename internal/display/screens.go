package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/gitakids/internal/domain"
)

func (a *App) headerView() string {
	crumb := "Chapters"
	switch a.screen {
	case screenChapter, screenVerse:
		crumb = fmt.Sprintf("Chapter %d", a.chapter.Number)
		if ch, _, err := a.reader.Current(); err == nil && a.screen == screenVerse {
			pos, total := a.reader.Position()
			crumb = fmt.Sprintf("Chapter %d · verse %d of %d", ch.Number, pos, total)
		}
	case screenListen:
		crumb = fmt.Sprintf("Listen · chapter %d", a.listenChapter)
	}
	return a.st.title.Render(splashTitle) + a.st.muted.Render("  "+crumb) + "\n"
}

func (a *App) homeView() string {
	var b strings.Builder

	label := "all levels"
	if d := a.difficulty(); d != "" {
		label = string(d)
	}
	b.WriteString(a.st.badge.Render(label))
	if a.query != "" {
		b.WriteString(" ")
		b.WriteString(a.st.badge.Render(fmt.Sprintf("%q", a.query)))
	}
	b.WriteString("\n\n")

	if a.searching {
		b.WriteString(a.search.View())
		b.WriteString("\n\n")
	}

	if len(a.chapters) == 0 {
		b.WriteString(a.st.muted.Render("No chapters match. Press esc to clear the search or f to change level."))
		return b.String()
	}
	for i, ch := range a.chapters {
		line := FormatChapterLine(ch)
		if i == a.cursor {
			b.WriteString(a.st.selected.Render("> " + line))
		} else {
			b.WriteString(a.st.text.Render("  " + line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (a *App) chapterView() string {
	ch := a.chapter
	var b strings.Builder
	b.WriteString(a.st.title.Render(ch.Title()))
	if ch.Names.Translated != "" && ch.Names.Translated != ch.Title() {
		b.WriteString("\n" + a.st.subtitle.Render(ch.Names.Translated))
	}
	if ch.Names.Original != "" {
		b.WriteString("\n" + a.st.muted.Render(ch.Names.Original))
	}
	b.WriteString("\n\n")

	width := a.width - 2*a.theme.Gutter
	if width < 20 {
		width = 76
	}
	b.WriteString(a.st.text.Width(width).Render(ch.Summary))
	b.WriteString("\n\n")

	for i, v := range ch.Verses {
		line := fmt.Sprintf("Verse %d", v.Number)
		if v.Translation != "" {
			line += "  " + truncate(v.Translation, max(10, width-14))
		}
		if i == a.verseCursor {
			b.WriteString(a.st.selected.Render("> " + line))
		} else {
			b.WriteString(a.st.text.Render("  " + line))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (a *App) listenView() string {
	var b strings.Builder
	n := a.listenChapter

	b.WriteString(a.st.calm.Render("Story audio"))
	b.WriteByte('\n')
	if t, err := a.lib.AudioForChapter(n); err == nil {
		b.WriteString(a.st.text.Render("  " + FormatTrack(t)))
	} else {
		b.WriteString(a.st.muted.Render("  No recording for this chapter yet."))
	}
	b.WriteString("\n\n")

	b.WriteString(a.st.calm.Render("Podcast"))
	b.WriteByte('\n')
	if e, err := a.lib.PodcastForChapter(n); err == nil {
		b.WriteString(a.st.text.Render("  " + FormatEpisode(e)))
		if e.Description != "" {
			b.WriteString("\n" + a.st.muted.Render("  "+e.Description))
		}
	} else {
		b.WriteString(a.st.muted.Render("  No episode for this chapter yet."))
	}

	var extras []domain.AudioTrack
	for _, t := range a.lib.AudioTracks() {
		if t.ChapterNumber == 0 {
			extras = append(extras, t)
		}
	}
	if len(extras) > 0 {
		b.WriteString("\n\n")
		b.WriteString(a.st.calm.Render("Also try"))
		for _, t := range extras {
			b.WriteString("\n" + a.st.text.Render("  "+FormatTrack(t)))
		}
	}
	b.WriteByte('\n')
	return b.String()
}

func (a *App) footerView() string {
	var parts []string
	for _, kb := range a.screen.bindings(a.keys) {
		if !kb.Enabled() {
			continue
		}
		h := kb.Help()
		parts = append(parts, a.st.footerKey.Render(h.Key)+a.st.footerSep.Render(":")+a.st.muted.Render(h.Desc))
	}
	return lipgloss.NewStyle().MarginTop(1).Render(strings.Join(parts, a.st.footerSep.Render("  ")))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
