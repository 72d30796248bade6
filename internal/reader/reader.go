// Package reader implements the verse-by-verse reading cursor.
package reader

import (
	"fmt"

	"github.com/hammamikhairi/gitakids/internal/domain"
	"github.com/hammamikhairi/gitakids/internal/logger"
)

// Cursor walks the verses of the catalog in reading order, crossing chapter
// boundaries. It depends only on domain.ContentSource. A Cursor is owned by
// one goroutine; it is not safe for concurrent use.
type Cursor struct {
	source domain.ContentSource
	log    *logger.Logger

	chapter domain.Chapter
	verse   int // index into chapter.Verses
	open    bool
}

// New creates a cursor over source. Nothing is open until Open is called.
func New(source domain.ContentSource, log *logger.Logger) *Cursor {
	return &Cursor{source: source, log: log}
}

// Open positions the cursor on the first verse of a chapter.
func (c *Cursor) Open(number int) (domain.Verse, error) {
	ch, err := c.source.Chapter(number)
	if err != nil {
		return domain.Verse{}, fmt.Errorf("opening chapter %d: %w", number, err)
	}
	if len(ch.Verses) == 0 {
		return domain.Verse{}, fmt.Errorf("chapter %d has no verses: %w", number, domain.ErrNoMoreVerses)
	}
	c.chapter = ch
	c.verse = 0
	c.open = true
	c.log.Debug("opened chapter %d (%d verses)", number, len(ch.Verses))
	return c.currentVerse(), nil
}

// OpenVerse positions the cursor on a specific verse.
func (c *Cursor) OpenVerse(chapter, verse int) (domain.Verse, error) {
	ch, err := c.source.Chapter(chapter)
	if err != nil {
		return domain.Verse{}, fmt.Errorf("opening chapter %d: %w", chapter, err)
	}
	for i, v := range ch.Verses {
		if v.Number == verse {
			c.chapter = ch
			c.verse = i
			c.open = true
			return c.currentVerse(), nil
		}
	}
	return domain.Verse{}, fmt.Errorf("verse %d.%d: %w", chapter, verse, domain.ErrNotFound)
}

// Current returns the chapter and verse under the cursor.
func (c *Cursor) Current() (domain.Chapter, domain.Verse, error) {
	if !c.open {
		return domain.Chapter{}, domain.Verse{}, fmt.Errorf("no chapter open: %w", domain.ErrNotFound)
	}
	return c.chapter.Clone(), c.currentVerse(), nil
}

// Position reports the 1-based verse position within the open chapter and
// the chapter's verse count.
func (c *Cursor) Position() (int, int) {
	if !c.open {
		return 0, 0
	}
	return c.verse + 1, len(c.chapter.Verses)
}

// Next moves to the following verse, continuing into the next chapter after
// the last verse. At the end of the catalog it returns ErrNoMoreVerses and
// stays put.
func (c *Cursor) Next() (domain.Verse, error) {
	if !c.open {
		return domain.Verse{}, fmt.Errorf("no chapter open: %w", domain.ErrNotFound)
	}
	if c.verse+1 < len(c.chapter.Verses) {
		c.verse++
		return c.currentVerse(), nil
	}

	next, ok := c.neighbour(+1)
	if !ok {
		return domain.Verse{}, domain.ErrNoMoreVerses
	}
	c.log.Debug("crossing from chapter %d to %d", c.chapter.Number, next.Number)
	c.chapter = next
	c.verse = 0
	return c.currentVerse(), nil
}

// Prev moves to the preceding verse, continuing into the last verse of the
// previous chapter. At the start of the catalog it returns ErrNoMoreVerses.
func (c *Cursor) Prev() (domain.Verse, error) {
	if !c.open {
		return domain.Verse{}, fmt.Errorf("no chapter open: %w", domain.ErrNotFound)
	}
	if c.verse > 0 {
		c.verse--
		return c.currentVerse(), nil
	}

	prev, ok := c.neighbour(-1)
	if !ok {
		return domain.Verse{}, domain.ErrNoMoreVerses
	}
	c.log.Debug("crossing from chapter %d back to %d", c.chapter.Number, prev.Number)
	c.chapter = prev
	c.verse = len(prev.Verses) - 1
	return c.currentVerse(), nil
}

func (c *Cursor) currentVerse() domain.Verse {
	return c.chapter.Verses[c.verse].Clone()
}

// neighbour finds the nearest chapter with verses in the given direction,
// following catalog order.
func (c *Cursor) neighbour(step int) (domain.Chapter, bool) {
	all := c.source.Chapters(domain.ChapterFilter{})
	at := -1
	for i, ch := range all {
		if ch.Number == c.chapter.Number {
			at = i
			break
		}
	}
	if at < 0 {
		return domain.Chapter{}, false
	}
	for i := at + step; i >= 0 && i < len(all); i += step {
		if len(all[i].Verses) > 0 {
			return all[i], true
		}
	}
	return domain.Chapter{}, false
}
