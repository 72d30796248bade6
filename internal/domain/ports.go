package domain

// ContentSource provides read-only access to the content catalog.
// Lookups for unknown keys return ErrNotFound; returned records are copies
// the caller may modify freely.
type ContentSource interface {
	Chapter(number int) (Chapter, error)
	Chapters(filter ChapterFilter) []Chapter
	Verse(chapter, verse int) (Verse, error)
	AudioTrack(id string) (AudioTrack, error)
	PodcastEpisode(id string) (PodcastEpisode, error)
}
