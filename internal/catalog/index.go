// Package catalog provides the read-only content index over chapters,
// verses, audio tracks and podcast episodes.
package catalog

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/gitakids/internal/domain"
	"github.com/hammamikhairi/gitakids/internal/logger"
)

// Compile-time interface check.
var _ domain.ContentSource = (*Index)(nil)

// Index holds the catalog in memory. It is never mutated after NewIndex
// returns, so any number of goroutines may read it without locking.
// Every record handed out is a copy.
type Index struct {
	chapters    []domain.Chapter
	byNumber    map[int]int
	tracks      []domain.AudioTrack
	trackByID   map[string]int
	episodes    []domain.PodcastEpisode
	episodeByID map[string]int
	log         *logger.Logger
}

// NewIndex validates the catalog and builds the lookup tables. Declaration
// order is preserved for listings. A malformed catalog yields an
// *IntegrityError and no index.
func NewIndex(chapters []domain.Chapter, tracks []domain.AudioTrack, episodes []domain.PodcastEpisode, log *logger.Logger) (*Index, error) {
	if err := validate(chapters, tracks, episodes); err != nil {
		return nil, err
	}

	idx := &Index{
		chapters:    make([]domain.Chapter, len(chapters)),
		byNumber:    make(map[int]int, len(chapters)),
		tracks:      append([]domain.AudioTrack(nil), tracks...),
		trackByID:   make(map[string]int, len(tracks)),
		episodes:    append([]domain.PodcastEpisode(nil), episodes...),
		episodeByID: make(map[string]int, len(episodes)),
		log:         log,
	}
	for i, ch := range chapters {
		idx.chapters[i] = ch.Clone()
		idx.byNumber[ch.Number] = i
	}
	for i, tr := range tracks {
		idx.trackByID[tr.ID] = i
	}
	for i, ep := range episodes {
		idx.episodeByID[ep.ID] = i
	}

	log.Debug("catalog loaded: %d chapters, %d audio tracks, %d podcast episodes",
		len(chapters), len(tracks), len(episodes))
	return idx, nil
}

// Len returns the number of chapters.
func (x *Index) Len() int { return len(x.chapters) }

// Chapter returns the chapter with the given number, or ErrNotFound.
func (x *Index) Chapter(number int) (domain.Chapter, error) {
	i, ok := x.byNumber[number]
	if !ok {
		x.log.Debug("chapter not found: %d", number)
		return domain.Chapter{}, domain.ErrNotFound
	}
	return x.chapters[i].Clone(), nil
}

// Chapters returns the chapters passing the filter in declaration order.
func (x *Index) Chapters(filter domain.ChapterFilter) []domain.Chapter {
	out := make([]domain.Chapter, 0, len(x.chapters))
	for _, ch := range x.chapters {
		if filter.Matches(ch) {
			out = append(out, ch.Clone())
		}
	}
	return out
}

// Verse looks up a verse by chapter and verse number.
func (x *Index) Verse(chapter, verse int) (domain.Verse, error) {
	i, ok := x.byNumber[chapter]
	if !ok {
		x.log.Debug("verse %d.%d: chapter not found", chapter, verse)
		return domain.Verse{}, domain.ErrNotFound
	}
	for _, v := range x.chapters[i].Verses {
		if v.Number == verse {
			return v.Clone(), nil
		}
	}
	x.log.Debug("verse not found: %d.%d", chapter, verse)
	return domain.Verse{}, domain.ErrNotFound
}

// AudioTrack returns the track with the given id, or ErrNotFound.
func (x *Index) AudioTrack(id string) (domain.AudioTrack, error) {
	i, ok := x.trackByID[id]
	if !ok {
		x.log.Debug("audio track not found: %s", id)
		return domain.AudioTrack{}, domain.ErrNotFound
	}
	return x.tracks[i], nil
}

// PodcastEpisode returns the episode with the given id, or ErrNotFound.
func (x *Index) PodcastEpisode(id string) (domain.PodcastEpisode, error) {
	i, ok := x.episodeByID[id]
	if !ok {
		x.log.Debug("podcast episode not found: %s", id)
		return domain.PodcastEpisode{}, domain.ErrNotFound
	}
	return x.episodes[i], nil
}

// AudioForChapter resolves the narrated track of a chapter. The chapter's
// own media reference wins; otherwise the conventional derived id is tried.
func (x *Index) AudioForChapter(number int) (domain.AudioTrack, error) {
	if i, ok := x.byNumber[number]; ok && x.chapters[i].Media.AudioID != "" {
		if tr, err := x.AudioTrack(x.chapters[i].Media.AudioID); err == nil {
			return tr, nil
		}
	}
	return x.AudioTrack(domain.AudioID(number))
}

// PodcastForChapter resolves the podcast episode discussing a chapter.
func (x *Index) PodcastForChapter(number int) (domain.PodcastEpisode, error) {
	if i, ok := x.byNumber[number]; ok && x.chapters[i].Media.PodcastID != "" {
		if ep, err := x.PodcastEpisode(x.chapters[i].Media.PodcastID); err == nil {
			return ep, nil
		}
	}
	return x.PodcastEpisode(domain.PodcastID(number))
}

// AudioTracks returns every track in declaration order.
func (x *Index) AudioTracks() []domain.AudioTrack {
	return append([]domain.AudioTrack(nil), x.tracks...)
}

// PodcastEpisodes returns every episode in declaration order.
func (x *Index) PodcastEpisodes() []domain.PodcastEpisode {
	return append([]domain.PodcastEpisode(nil), x.episodes...)
}

// Search returns chapters whose names, summary or verse text contain the
// query, case-insensitively. An empty query matches nothing.
func (x *Index) Search(query string) []domain.Chapter {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	x.log.Debug("searching catalog for: %s", q)

	var out []domain.Chapter
	for _, ch := range x.chapters {
		if matches(ch, q) {
			out = append(out, ch.Clone())
		}
	}
	return out
}

func matches(ch domain.Chapter, query string) bool {
	fields := []string{ch.Names.Original, ch.Names.Translated, ch.Names.ChildFriendly, ch.Summary}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	for _, v := range ch.Verses {
		if strings.Contains(strings.ToLower(v.Translation), query) ||
			strings.Contains(strings.ToLower(v.Story), query) {
			return true
		}
	}
	return false
}

// IntegrityError lists every problem found while validating a catalog.
type IntegrityError struct {
	Problems []string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("catalog integrity: %d problem(s): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Unwrap lets callers match with errors.Is(err, domain.ErrCatalogIntegrity).
func (e *IntegrityError) Unwrap() error { return domain.ErrCatalogIntegrity }

func validate(chapters []domain.Chapter, tracks []domain.AudioTrack, episodes []domain.PodcastEpisode) error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(chapters) == 0 {
		add("no chapters")
	}

	seen := make(map[int]bool, len(chapters))
	for i, ch := range chapters {
		label := fmt.Sprintf("chapter #%d", i+1)
		if ch.Number > 0 {
			label = fmt.Sprintf("chapter %d", ch.Number)
		}
		if ch.Number < 1 {
			add("%s: number must be positive, got %d", label, ch.Number)
		} else if seen[ch.Number] {
			add("%s: duplicate chapter number", label)
		}
		seen[ch.Number] = true

		if strings.TrimSpace(ch.Names.Original) == "" && strings.TrimSpace(ch.Names.Translated) == "" &&
			strings.TrimSpace(ch.Names.ChildFriendly) == "" {
			add("%s: missing names", label)
		}
		if _, err := domain.ParseDifficulty(string(ch.Difficulty)); err != nil {
			add("%s: %v", label, err)
		}
		if ch.Ages.Max != 0 && ch.Ages.Max < ch.Ages.Min {
			add("%s: age range %d-%d is inverted", label, ch.Ages.Min, ch.Ages.Max)
		}

		verses := make(map[int]bool, len(ch.Verses))
		for _, v := range ch.Verses {
			if v.Number < 1 {
				add("%s: verse number must be positive, got %d", label, v.Number)
				continue
			}
			if verses[v.Number] {
				add("%s: duplicate verse %d", label, v.Number)
			}
			verses[v.Number] = true
			if strings.TrimSpace(v.Translation) == "" {
				add("%s: verse %d missing translation", label, v.Number)
			}
		}
	}

	trackIDs := make(map[string]bool, len(tracks))
	for i, tr := range tracks {
		switch {
		case tr.ID == "":
			add("audio track #%d: missing id", i+1)
		case trackIDs[tr.ID]:
			add("audio track %s: duplicate id", tr.ID)
		}
		trackIDs[tr.ID] = true
		if tr.Duration < 0 {
			add("audio track %s: negative duration", tr.ID)
		}
	}

	episodeIDs := make(map[string]bool, len(episodes))
	for i, ep := range episodes {
		switch {
		case ep.ID == "":
			add("podcast episode #%d: missing id", i+1)
		case episodeIDs[ep.ID]:
			add("podcast episode %s: duplicate id", ep.ID)
		}
		episodeIDs[ep.ID] = true
		if ep.Duration < 0 {
			add("podcast episode %s: negative duration", ep.ID)
		}
	}

	if len(problems) > 0 {
		return &IntegrityError{Problems: problems}
	}
	return nil
}
