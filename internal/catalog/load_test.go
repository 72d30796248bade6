package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hammamikhairi/gitakids/internal/domain"
	"github.com/hammamikhairi/gitakids/internal/logger"
)

const miniCatalog = `
[[chapter]]
number = 1
difficulty = "easy"
min_age = 5

[chapter.names]
child_friendly = "The Warrior's Dilemma"

[[chapter.verse]]
number = 1
translation = "What did they do?"
questions = ["Why?"]

[[audio]]
id = "chapter-1"
title = "Narration"
duration_sec = 90
chapter = 1
`

func TestLoadDefaultCatalog(t *testing.T) {
	idx := setupIndex(t)
	if idx.Len() != 6 {
		t.Fatalf("expected 6 chapters, got %d", idx.Len())
	}
	for _, ch := range idx.Chapters(domain.ChapterFilter{}) {
		if len(ch.Verses) == 0 {
			t.Fatalf("chapter %d has no verses", ch.Number)
		}
		if ch.ID == "" {
			t.Fatalf("chapter %d has no id", ch.Number)
		}
	}
}

func TestLoadMapsFields(t *testing.T) {
	idx, err := Load(strings.NewReader(miniCatalog), logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	ch, err := idx.Chapter(1)
	if err != nil {
		t.Fatalf("chapter 1: %v", err)
	}
	if ch.ID != "chapter-1" {
		t.Fatalf("expected derived id chapter-1, got %q", ch.ID)
	}
	if ch.Ages.Min != 5 || ch.Ages.Max != 0 {
		t.Fatalf("unexpected ages %+v", ch.Ages)
	}
	if len(ch.Verses) != 1 || ch.Verses[0].Questions[0] != "Why?" {
		t.Fatalf("unexpected verses %+v", ch.Verses)
	}

	tr, err := idx.AudioForChapter(1)
	if err != nil {
		t.Fatalf("audio: %v", err)
	}
	if tr.Duration != 90*time.Second {
		t.Fatalf("expected 90s, got %s", tr.Duration)
	}
}

func TestLoadRejectsMalformedInput(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	tests := []struct {
		name          string
		doc           string
		wantIntegrity bool
	}{
		{"syntax error", "[[chapter]\nnumber = 1", false},
		{"unknown field", "[[chapter]]\nnumber = 1\ncolour = \"red\"", false},
		{"duplicate chapters", "[[chapter]]\nnumber = 1\ndifficulty = \"easy\"\n[chapter.names]\noriginal = \"a\"\n" +
			"[[chapter]]\nnumber = 1\ndifficulty = \"easy\"\n[chapter.names]\noriginal = \"b\"\n", true},
		{"empty", "", true},
		{"audio duration overflow", "[[audio]]\nid = \"a\"\nduration_sec = 9300000000000\n", false},
		{"podcast duration overflow", "[[podcast]]\nid = \"p\"\nduration_sec = -9300000000000\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc), log)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if got := errors.Is(err, domain.ErrCatalogIntegrity); got != tt.wantIntegrity {
				t.Fatalf("errors.Is(ErrCatalogIntegrity) = %v, want %v (err=%v)", got, tt.wantIntegrity, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	path := filepath.Join(t.TempDir(), "catalog.toml")
	if err := os.WriteFile(path, []byte(miniCatalog), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	idx, err := LoadFile(path, log)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if idx.Len() != 1 {
		t.Fatalf("expected 1 chapter, got %d", idx.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"), log); err == nil {
		t.Fatal("expected error for missing file")
	}
}
