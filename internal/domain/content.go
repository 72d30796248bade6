// Package domain defines the core content types and interfaces for the reader.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Chapter is one chapter of the book together with the verses it owns.
type Chapter struct {
	ID         string
	Number     int
	Names      ChapterNames
	Summary    string
	Verses     []Verse
	Media      MediaRefs
	Difficulty Difficulty
	Ages       AgeRange
}

// ChapterNames holds the three titles shown for a chapter.
type ChapterNames struct {
	Original      string // Sanskrit title
	Translated    string // literal English rendering
	ChildFriendly string // the title children see
}

// MediaRefs point at assets associated with a chapter. The index does not
// resolve them; hosts pass them to their own loaders.
type MediaRefs struct {
	HeroImage string
	AudioID   string
	PodcastID string
}

// AgeRange is the inclusive reader age band a chapter is written for.
// A zero Max means no upper bound.
type AgeRange struct {
	Min int
	Max int
}

// Contains reports whether age falls inside the range.
func (r AgeRange) Contains(age int) bool {
	if age < r.Min {
		return false
	}
	return r.Max == 0 || age <= r.Max
}

// Clone returns a deep copy of the chapter.
func (c Chapter) Clone() Chapter {
	out := c
	if c.Verses != nil {
		out.Verses = make([]Verse, len(c.Verses))
		for i, v := range c.Verses {
			out.Verses[i] = v.Clone()
		}
	}
	return out
}

// Title returns the child-friendly name, falling back to the translated one.
func (c Chapter) Title() string {
	if c.Names.ChildFriendly != "" {
		return c.Names.ChildFriendly
	}
	return c.Names.Translated
}

// Verse is a single verse with its retelling for young readers.
type Verse struct {
	Number      int
	Original    string   // transliterated Sanskrit
	Translation string   // plain English translation
	Story       string   // adapted narrative
	Questions   []string // discussion prompts
}

// Clone returns a deep copy of the verse.
func (v Verse) Clone() Verse {
	out := v
	if v.Questions != nil {
		out.Questions = append([]string(nil), v.Questions...)
	}
	return out
}

// Difficulty grades how much guidance a chapter needs.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyMedium   Difficulty = "medium"
	DifficultyAdvanced Difficulty = "advanced"
)

// Difficulties lists the levels in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyAdvanced}

// ParseDifficulty converts a config or flag value into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Difficulties {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// ChapterFilter narrows a chapter listing. Zero fields match everything.
type ChapterFilter struct {
	Difficulty Difficulty
	Age        int
}

// Matches reports whether the chapter passes the filter.
func (f ChapterFilter) Matches(c Chapter) bool {
	if f.Difficulty != "" && c.Difficulty != f.Difficulty {
		return false
	}
	if f.Age > 0 && !c.Ages.Contains(f.Age) {
		return false
	}
	return true
}

// AudioTrack is a narrated recording of a chapter.
type AudioTrack struct {
	ID            string
	Title         string
	Narrator      string
	Duration      time.Duration
	ChapterNumber int
	Source        string
}

// PodcastEpisode is a discussion episode, usually about one chapter.
type PodcastEpisode struct {
	ID            string
	Title         string
	Description   string
	Episode       int
	Duration      time.Duration
	ChapterNumber int
	Source        string
}

// Id prefixes used to cross-reference media by chapter number.
const (
	AudioIDPrefix   = "chapter-"
	PodcastIDPrefix = "podcast-"
)

// AudioID returns the conventional audio track id for a chapter.
func AudioID(chapter int) string {
	return AudioIDPrefix + strconv.Itoa(chapter)
}

// PodcastID returns the conventional podcast episode id for a chapter.
func PodcastID(chapter int) string {
	return PodcastIDPrefix + strconv.Itoa(chapter)
}
