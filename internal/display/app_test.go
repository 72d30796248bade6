package display

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/hammamikhairi/gitakids/internal/catalog"
	"github.com/hammamikhairi/gitakids/internal/domain"
	"github.com/hammamikhairi/gitakids/internal/logger"
	"github.com/hammamikhairi/gitakids/internal/timeline"
)

var _ Library = (*catalog.Index)(nil)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func setupLibrary(t *testing.T) *catalog.Index {
	t.Helper()
	idx, err := catalog.Default(logger.New(logger.LevelOff, nil))
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return idx
}

func setupApp(t *testing.T, withSplash bool) (*App, *manualClock) {
	t.Helper()
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	phases, err := timeline.DefaultSplash()
	if err != nil {
		t.Fatalf("default splash: %v", err)
	}
	a := NewApp(Config{
		Library:    setupLibrary(t),
		Phases:     phases,
		SkipSplash: !withSplash,
		Clock:      clock,
		Log:        logger.New(logger.LevelOff, nil),
	})
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a, clock
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func press(a *App, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = a.Update(m)
	}
	return cmd
}

func chapterNumbers(chapters []domain.Chapter) []int {
	out := make([]int, 0, len(chapters))
	for _, ch := range chapters {
		out = append(out, ch.Number)
	}
	return out
}

func TestSplashHandsOverToHome(t *testing.T) {
	a, clock := setupApp(t, true)
	if a.screen != screenSplash {
		t.Fatalf("expected splash, got %s", a.screen)
	}

	if cmd := a.Init(); cmd == nil {
		t.Fatal("Init should schedule the first frame")
	}
	gen := a.splash.Generation()

	if cmd := press(a, frameMsg{generation: gen}); cmd == nil {
		t.Fatal("splash stopped asking for frames at t=0")
	}
	if !strings.Contains(a.View(), splashTitle) {
		t.Fatal("splash view is missing the title")
	}

	clock.Add(1500 * time.Millisecond)
	press(a, frameMsg{generation: gen})
	if a.screen != screenSplash {
		t.Fatalf("splash ended early, on %s", a.screen)
	}

	clock.Add(2100 * time.Millisecond)
	if cmd := press(a, frameMsg{generation: gen}); cmd != nil {
		t.Fatal("finished splash scheduled another frame")
	}
	if a.screen != screenHome {
		t.Fatalf("expected home after the splash, got %s", a.screen)
	}
	if a.splash.State() != timeline.StateCompleted {
		t.Fatalf("controller state = %s", a.splash.State())
	}
}

func TestSplashSkipAndStaleFrames(t *testing.T) {
	a, clock := setupApp(t, true)
	a.Init()
	first := a.splash.Generation()

	press(a, space)
	if a.screen != screenHome {
		t.Fatalf("skip should land on home, got %s", a.screen)
	}
	if a.splash.State() != timeline.StateIdle {
		t.Fatalf("skipped splash should be idle, got %s", a.splash.State())
	}

	if cmd := press(a, runes("s")); cmd == nil {
		t.Fatal("replay should schedule a frame")
	}
	second := a.splash.Generation()
	if second == first {
		t.Fatal("replay did not start a new run")
	}

	clock.Add(10 * time.Second)
	if cmd := press(a, frameMsg{generation: first}); cmd != nil {
		t.Fatal("stale frame was acted on")
	}
	if a.screen != screenSplash {
		t.Fatalf("stale frame ended the new run, screen %s", a.screen)
	}

	press(a, frameMsg{generation: second})
	if a.screen != screenHome {
		t.Fatalf("expected home once the replay finished, got %s", a.screen)
	}
}

func TestSplashFallsBackToHome(t *testing.T) {
	tests := []struct {
		name   string
		phases []timeline.Phase
	}{
		{"no phases", nil},
		{"negative duration", []timeline.Phase{{Tracks: []timeline.Track{{Property: "logo.opacity", Duration: -time.Second}}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewApp(Config{Library: setupLibrary(t), Phases: tt.phases})
			if a.screen != screenHome {
				t.Fatalf("expected home, got %s", a.screen)
			}
			if a.Init() != nil {
				t.Fatal("Init scheduled frames without a splash")
			}
			press(a, runes("s"))
			if a.screen != screenHome {
				t.Fatal("replay without a splash left home")
			}
			if !strings.Contains(a.View(), "Warrior") {
				t.Fatal("home view does not list chapters")
			}
		})
	}
}

func TestHomeDifficultyCycle(t *testing.T) {
	a, _ := setupApp(t, false)

	want := [][]int{
		{1},
		{2, 3, 6},
		{4, 5},
		{1, 2, 3, 4, 5, 6},
	}
	for i, w := range want {
		press(a, runes("f"))
		if diff := cmp.Diff(w, chapterNumbers(a.chapters)); diff != "" {
			t.Fatalf("press %d (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestHomeSearch(t *testing.T) {
	a, _ := setupApp(t, false)

	press(a, runes("/"))
	if !a.searching {
		t.Fatal("search did not open")
	}
	press(a, runes("q"))
	if !a.searching {
		t.Fatal("typing q in the search box should not quit")
	}
	press(a, tea.KeyMsg{Type: tea.KeyBackspace}, runes("lotus"), enter)

	if diff := cmp.Diff([]int{5}, chapterNumbers(a.chapters)); diff != "" {
		t.Fatalf("search results (-want +got):\n%s", diff)
	}

	press(a, esc)
	if a.query != "" || len(a.chapters) != 6 {
		t.Fatalf("esc should clear the search, query=%q chapters=%d", a.query, len(a.chapters))
	}
}

func TestReadAcrossChapters(t *testing.T) {
	a, _ := setupApp(t, false)

	press(a, enter)
	if a.screen != screenChapter || a.chapter.Number != 1 {
		t.Fatalf("expected chapter 1, got %s %d", a.screen, a.chapter.Number)
	}

	press(a, enter)
	if a.screen != screenVerse {
		t.Fatalf("expected verse screen, got %s", a.screen)
	}
	if !strings.Contains(a.View(), "Chapter 1, Verse 1") {
		t.Fatal("verse view missing heading")
	}

	press(a, runes("n"), runes("n"))
	ch, v, err := a.reader.Current()
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if ch.Number != 2 || v.Number != 20 {
		t.Fatalf("expected 2.20, got %d.%d", ch.Number, v.Number)
	}

	press(a, esc)
	if a.screen != screenChapter || a.chapter.Number != 2 || a.verseCursor != 0 {
		t.Fatalf("back should show chapter 2 at verse 0, got %s %d %d", a.screen, a.chapter.Number, a.verseCursor)
	}

	press(a, esc, runes("p"))
	if a.screen != screenHome {
		t.Fatalf("expected home, got %s", a.screen)
	}
}

func TestReadEdgeOfCatalog(t *testing.T) {
	a, _ := setupApp(t, false)
	press(a, enter, enter, runes("p"))
	if a.status == "" {
		t.Fatal("expected a status message at the first verse")
	}
	if _, v, _ := a.reader.Current(); v.Number != 1 {
		t.Fatalf("cursor moved before the first verse: %d", v.Number)
	}
}

func TestListenScreen(t *testing.T) {
	a, _ := setupApp(t, false)

	press(a, runes("l"))
	if a.screen != screenListen {
		t.Fatalf("expected listen, got %s", a.screen)
	}
	view := a.View()
	for _, want := range []string{"Meera Iyer", "Is It OK to Be Scared?", "Guided Breathing"} {
		if !strings.Contains(view, want) {
			t.Errorf("listen view missing %q", want)
		}
	}

	press(a, esc)
	if a.screen != screenHome {
		t.Fatalf("back should return home, got %s", a.screen)
	}

	press(a, runes("j"), runes("j"), runes("j"), runes("l"))
	if a.listenChapter != 4 {
		t.Fatalf("expected chapter 4, got %d", a.listenChapter)
	}
	if !strings.Contains(a.View(), "No episode") {
		t.Fatal("chapter 4 has no podcast episode")
	}
}

func TestCatalogReload(t *testing.T) {
	a, _ := setupApp(t, false)
	log := logger.New(logger.LevelOff, nil)

	press(a, runes("j"), enter, runes("j"), enter)
	if _, v, _ := a.reader.Current(); v.Number != 47 {
		t.Fatalf("expected verse 47, got %d", v.Number)
	}

	same, err := catalog.NewIndex([]domain.Chapter{
		{Number: 2, Names: domain.ChapterNames{ChildFriendly: "Renamed"}, Difficulty: domain.DifficultyEasy,
			Verses: []domain.Verse{{Number: 47, Translation: "new words"}}},
	}, nil, nil, log)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	press(a, CatalogReloadedMsg{Library: same})
	if a.screen != screenVerse {
		t.Fatalf("reader lost its place, on %s", a.screen)
	}
	if !strings.Contains(a.View(), "new words") {
		t.Fatal("verse view not refreshed after reload")
	}

	other, err := catalog.NewIndex([]domain.Chapter{
		{Number: 9, Names: domain.ChapterNames{ChildFriendly: "Other"}, Difficulty: domain.DifficultyEasy,
			Verses: []domain.Verse{{Number: 1, Translation: "x"}}},
	}, nil, nil, log)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	press(a, CatalogReloadedMsg{Library: other})
	if a.screen != screenHome {
		t.Fatalf("expected home when the verse disappeared, got %s", a.screen)
	}
	if diff := cmp.Diff([]int{9}, chapterNumbers(a.chapters)); diff != "" {
		t.Fatalf("listing not refreshed (-want +got):\n%s", diff)
	}
}
