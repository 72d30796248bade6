package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/hammamikhairi/gitakids/internal/domain"
	"github.com/hammamikhairi/gitakids/internal/logger"
)

//go:embed data/catalog.toml
var defaultCatalog []byte

// file mirrors the on-disk TOML layout of a catalog.
type file struct {
	Chapters []chapterEntry `toml:"chapter"`
	Audio    []audioEntry   `toml:"audio"`
	Podcasts []podcastEntry `toml:"podcast"`
}

type chapterEntry struct {
	ID         string       `toml:"id"`
	Number     int          `toml:"number"`
	Summary    string       `toml:"summary"`
	Difficulty string       `toml:"difficulty"`
	MinAge     int          `toml:"min_age"`
	MaxAge     int          `toml:"max_age"`
	Names      namesEntry   `toml:"names"`
	Media      mediaEntry   `toml:"media"`
	Verses     []verseEntry `toml:"verse"`
}

type namesEntry struct {
	Original      string `toml:"original"`
	Translated    string `toml:"translated"`
	ChildFriendly string `toml:"child_friendly"`
}

type mediaEntry struct {
	HeroImage string `toml:"hero_image"`
	Audio     string `toml:"audio"`
	Podcast   string `toml:"podcast"`
}

type verseEntry struct {
	Number      int      `toml:"number"`
	Original    string   `toml:"original"`
	Translation string   `toml:"translation"`
	Story       string   `toml:"story"`
	Questions   []string `toml:"questions"`
}

type audioEntry struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Narrator    string `toml:"narrator"`
	DurationSec int    `toml:"duration_sec"`
	Chapter     int    `toml:"chapter"`
	Source      string `toml:"source"`
}

type podcastEntry struct {
	ID          string `toml:"id"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Episode     int    `toml:"episode"`
	DurationSec int    `toml:"duration_sec"`
	Chapter     int    `toml:"chapter"`
	Source      string `toml:"source"`
}

// Default returns the index built from the catalog compiled into the binary.
func Default(log *logger.Logger) (*Index, error) {
	return Load(bytes.NewReader(defaultCatalog), log)
}

// LoadFile reads a TOML catalog from disk.
func LoadFile(path string, log *logger.Logger) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()

	idx, err := Load(f, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return idx, nil
}

// Load decodes a TOML catalog and validates it into an Index.
func Load(r io.Reader, log *logger.Logger) (*Index, error) {
	var doc file
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	chapters := make([]domain.Chapter, 0, len(doc.Chapters))
	for _, c := range doc.Chapters {
		chapters = append(chapters, c.toDomain())
	}

	tracks := make([]domain.AudioTrack, 0, len(doc.Audio))
	for _, a := range doc.Audio {
		d, err := seconds(a.DurationSec)
		if err != nil {
			return nil, fmt.Errorf("audio track %s duration_sec: %w", a.ID, err)
		}
		tracks = append(tracks, domain.AudioTrack{
			ID:            a.ID,
			Title:         a.Title,
			Narrator:      a.Narrator,
			Duration:      d,
			ChapterNumber: a.Chapter,
			Source:        a.Source,
		})
	}

	episodes := make([]domain.PodcastEpisode, 0, len(doc.Podcasts))
	for _, p := range doc.Podcasts {
		d, err := seconds(p.DurationSec)
		if err != nil {
			return nil, fmt.Errorf("podcast episode %s duration_sec: %w", p.ID, err)
		}
		episodes = append(episodes, domain.PodcastEpisode{
			ID:            p.ID,
			Title:         p.Title,
			Description:   p.Description,
			Episode:       p.Episode,
			Duration:      d,
			ChapterNumber: p.Chapter,
			Source:        p.Source,
		})
	}

	return NewIndex(chapters, tracks, episodes, log)
}

const maxSeconds = math.MaxInt64 / int64(time.Second)

func seconds(n int) (time.Duration, error) {
	if s := int64(n); s > maxSeconds || s < -maxSeconds {
		return 0, fmt.Errorf("%d out of range", n)
	}
	return time.Duration(n) * time.Second, nil
}

func (c chapterEntry) toDomain() domain.Chapter {
	id := c.ID
	if id == "" {
		id = fmt.Sprintf("chapter-%d", c.Number)
	}
	ch := domain.Chapter{
		ID:     id,
		Number: c.Number,
		Names: domain.ChapterNames{
			Original:      c.Names.Original,
			Translated:    c.Names.Translated,
			ChildFriendly: c.Names.ChildFriendly,
		},
		Summary:    c.Summary,
		Difficulty: domain.Difficulty(c.Difficulty),
		Ages:       domain.AgeRange{Min: c.MinAge, Max: c.MaxAge},
		Media: domain.MediaRefs{
			HeroImage: c.Media.HeroImage,
			AudioID:   c.Media.Audio,
			PodcastID: c.Media.Podcast,
		},
	}
	for _, v := range c.Verses {
		ch.Verses = append(ch.Verses, domain.Verse{
			Number:      v.Number,
			Original:    v.Original,
			Translation: v.Translation,
			Story:       v.Story,
			Questions:   append([]string(nil), v.Questions...),
		})
	}
	return ch
}
