// Package display provides the terminal reader using Bubble Tea.
//
// The [App] model opens on an animated splash driven by a timeline
// controller, then hands over to the chapter browser. Every frame of the
// splash is a tea.Tick message, so the controller is only ever touched from
// the Bubble Tea event loop.
package display

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/gitakids/internal/domain"
	"github.com/hammamikhairi/gitakids/internal/logger"
	"github.com/hammamikhairi/gitakids/internal/reader"
	"github.com/hammamikhairi/gitakids/internal/timeline"
)

// Library is the content the reader browses. The catalog index satisfies it.
type Library interface {
	domain.ContentSource
	AudioForChapter(number int) (domain.AudioTrack, error)
	PodcastForChapter(number int) (domain.PodcastEpisode, error)
	AudioTracks() []domain.AudioTrack
	Search(query string) []domain.Chapter
}

// Config wires an App.
type Config struct {
	Library       Library
	Phases        []timeline.Phase // splash sequence
	FrameInterval time.Duration    // default 1/60s
	SkipSplash    bool
	Theme         Theme // zero value means DefaultTheme
	Clock         timeline.Clock
	Log           *logger.Logger
}

// CatalogReloadedMsg swaps the library the reader browses. Send it with
// Program.Send when the catalog file changes.
type CatalogReloadedMsg struct {
	Library Library
}

type screen int

const (
	screenSplash screen = iota
	screenHome
	screenChapter
	screenVerse
	screenListen
)

func (s screen) String() string {
	switch s {
	case screenSplash:
		return "splash"
	case screenHome:
		return "home"
	case screenChapter:
		return "chapter"
	case screenVerse:
		return "verse"
	case screenListen:
		return "listen"
	default:
		return "unknown"
	}
}

// App is the reader's tea.Model.
type App struct {
	lib      Library
	theme    Theme
	st       styles
	keys     KeyMap
	log      *logger.Logger
	interval time.Duration

	splash     *timeline.Controller // nil when the splash could not be built
	splashDone bool

	screen screen
	width  int
	height int
	status string

	filter    int // 0 is all, then domain.Difficulties in order
	query     string
	searching bool
	search    textinput.Model
	chapters  []domain.Chapter
	cursor    int

	chapter     domain.Chapter
	verseCursor int

	listenChapter int
	listenFrom    screen

	reader   *reader.Cursor
	viewport viewport.Model
}

// NewApp builds the reader. When the splash phases are rejected the error
// is logged and the reader opens on the home screen.
func NewApp(cfg Config) *App {
	if cfg.Theme == (Theme{}) {
		cfg.Theme = DefaultTheme()
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = time.Second / 60
	}
	if cfg.Log == nil {
		cfg.Log = logger.New(logger.LevelOff, nil)
	}
	if cfg.Clock == nil {
		cfg.Clock = timeline.SystemClock{}
	}

	ti := textinput.New()
	ti.Prompt = "search> "
	ti.CharLimit = 80
	ti.Width = 40

	a := &App{
		lib:      cfg.Library,
		theme:    cfg.Theme,
		st:       cfg.Theme.styles(),
		keys:     DefaultKeyMap(),
		log:      cfg.Log,
		interval: cfg.FrameInterval,
		screen:   screenHome,
		search:   ti,
		reader:   reader.New(cfg.Library, cfg.Log.With("reader")),
		viewport: viewport.New(80, 20),
	}

	if !cfg.SkipSplash {
		ctrl, err := timeline.New(cfg.Phases, a.finishSplash,
			timeline.WithClock(cfg.Clock),
			timeline.WithLogger(cfg.Log.With("splash")),
			timeline.WithPhaseHook(func(i int, name string) {
				cfg.Log.Debug("splash phase %d: %s", i, name)
			}),
		)
		if err != nil {
			a.log.Error("splash unavailable, opening home screen: %v", err)
		} else {
			a.splash = ctrl
			a.screen = screenSplash
		}
	}

	a.refresh()
	return a
}

// Init starts the splash when there is one.
func (a *App) Init() tea.Cmd {
	if a.screen != screenSplash {
		return nil
	}
	return a.startSplash()
}

func (a *App) startSplash() tea.Cmd {
	a.splashDone = false
	a.splash.Start()
	a.screen = screenSplash
	return frameCmd(a.interval, a.splash.Generation())
}

// finishSplash is the controller's completion callback. It runs inside
// Tick, on the event loop.
func (a *App) finishSplash() {
	a.splashDone = true
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.viewport.Width = max(20, msg.Width-a.theme.Gutter)
		a.viewport.Height = max(3, msg.Height-5)
		if a.screen == screenVerse {
			a.renderVerse()
		}
		return a, nil

	case frameMsg:
		return a, a.onFrame(msg)

	case CatalogReloadedMsg:
		a.reload(msg.Library)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) onFrame(msg frameMsg) tea.Cmd {
	if a.screen != screenSplash || a.splash == nil || msg.generation != a.splash.Generation() {
		return nil
	}
	more := a.splash.Tick()
	if a.splashDone {
		a.log.Info("splash finished")
		a.screen = screenHome
		return nil
	}
	if !more {
		return nil
	}
	return frameCmd(a.interval, msg.generation)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	if a.searching {
		return a, a.handleSearchKey(msg)
	}
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	a.status = ""
	switch a.screen {
	case screenSplash:
		if key.Matches(msg, a.keys.Skip) {
			a.splash.Cancel()
			a.log.Info("splash skipped")
			a.screen = screenHome
		}
	case screenHome:
		return a, a.handleHomeKey(msg)
	case screenChapter:
		a.handleChapterKey(msg)
	case screenVerse:
		return a, a.handleVerseKey(msg)
	case screenListen:
		if key.Matches(msg, a.keys.Back) {
			a.screen = a.listenFrom
		}
	}
	return a, nil
}

func (a *App) handleHomeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.cursor = max(0, a.cursor-1)
	case key.Matches(msg, a.keys.Down):
		a.cursor = min(max(0, len(a.chapters)-1), a.cursor+1)
	case key.Matches(msg, a.keys.Enter):
		if ch, ok := a.selected(); ok {
			a.openChapter(ch.Number)
		}
	case key.Matches(msg, a.keys.Filter):
		a.filter = (a.filter + 1) % (len(domain.Difficulties) + 1)
		a.refresh()
	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.search.SetValue(a.query)
		return a.search.Focus()
	case key.Matches(msg, a.keys.Listen):
		if ch, ok := a.selected(); ok {
			a.openListen(ch.Number)
		}
	case key.Matches(msg, a.keys.Replay):
		if a.splash != nil {
			return a.startSplash()
		}
	case key.Matches(msg, a.keys.Back):
		if a.query != "" {
			a.query = ""
			a.refresh()
		}
	}
	return nil
}

func (a *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		a.query = a.search.Value()
		a.searching = false
		a.search.Blur()
		a.refresh()
		return nil
	case tea.KeyEsc:
		a.query = ""
		a.searching = false
		a.search.Blur()
		a.search.Reset()
		a.refresh()
		return nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return cmd
}

func (a *App) handleChapterKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, a.keys.Up):
		a.verseCursor = max(0, a.verseCursor-1)
	case key.Matches(msg, a.keys.Down):
		a.verseCursor = min(max(0, len(a.chapter.Verses)-1), a.verseCursor+1)
	case key.Matches(msg, a.keys.Enter):
		if a.verseCursor < len(a.chapter.Verses) {
			a.openVerse(a.chapter.Number, a.chapter.Verses[a.verseCursor].Number)
		}
	case key.Matches(msg, a.keys.Listen):
		a.openListen(a.chapter.Number)
	case key.Matches(msg, a.keys.Back):
		a.screen = screenHome
	}
}

func (a *App) handleVerseKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Next):
		a.step(a.reader.Next, "That was the last verse. Well done!")
	case key.Matches(msg, a.keys.Prev):
		a.step(a.reader.Prev, "This is the very first verse.")
	case key.Matches(msg, a.keys.Back):
		if ch, _, err := a.reader.Current(); err == nil {
			a.chapter = ch
			pos, _ := a.reader.Position()
			a.verseCursor = pos - 1
		}
		a.screen = screenChapter
	default:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) step(move func() (domain.Verse, error), atEdge string) {
	if _, err := move(); err != nil {
		if errors.Is(err, domain.ErrNoMoreVerses) {
			a.status = atEdge
			return
		}
		a.status = err.Error()
		return
	}
	a.renderVerse()
}

func (a *App) selected() (domain.Chapter, bool) {
	if a.cursor < 0 || a.cursor >= len(a.chapters) {
		return domain.Chapter{}, false
	}
	return a.chapters[a.cursor], true
}

func (a *App) difficulty() domain.Difficulty {
	if a.filter == 0 {
		return ""
	}
	return domain.Difficulties[a.filter-1]
}

// refresh rebuilds the home listing from the library, filter and query.
func (a *App) refresh() {
	filter := domain.ChapterFilter{Difficulty: a.difficulty()}
	if a.query == "" {
		a.chapters = a.lib.Chapters(filter)
	} else {
		a.chapters = a.chapters[:0]
		for _, ch := range a.lib.Search(a.query) {
			if filter.Matches(ch) {
				a.chapters = append(a.chapters, ch)
			}
		}
	}
	a.cursor = min(a.cursor, max(0, len(a.chapters)-1))
}

func (a *App) openChapter(number int) {
	ch, err := a.lib.Chapter(number)
	if err != nil {
		a.status = fmt.Sprintf("Chapter %d is not available.", number)
		a.log.Warn("open chapter %d: %v", number, err)
		return
	}
	a.chapter = ch
	a.verseCursor = 0
	a.screen = screenChapter
}

func (a *App) openVerse(chapter, verse int) {
	if _, err := a.reader.OpenVerse(chapter, verse); err != nil {
		a.status = fmt.Sprintf("Verse %d.%d is not available.", chapter, verse)
		a.log.Warn("open verse %d.%d: %v", chapter, verse, err)
		return
	}
	a.screen = screenVerse
	a.renderVerse()
	a.viewport.GotoTop()
}

func (a *App) renderVerse() {
	ch, v, err := a.reader.Current()
	if err != nil {
		return
	}
	a.viewport.SetContent(FormatVerse(ch, v, a.viewport.Width, a.theme))
}

func (a *App) openListen(number int) {
	a.listenChapter = number
	a.listenFrom = a.screen
	a.screen = screenListen
}

// reload swaps in a new library, keeping the reader's place when the chapter
// and verse still exist.
func (a *App) reload(lib Library) {
	if lib == nil {
		return
	}
	a.lib = lib
	prevCh, prevV, curErr := a.reader.Current()
	a.reader = reader.New(lib, a.log.With("reader"))
	a.refresh()
	a.status = "The library was updated."

	switch a.screen {
	case screenChapter:
		if ch, err := lib.Chapter(a.chapter.Number); err == nil {
			a.chapter = ch
			a.verseCursor = min(a.verseCursor, max(0, len(ch.Verses)-1))
		} else {
			a.screen = screenHome
		}
	case screenVerse:
		if curErr == nil {
			if _, err := a.reader.OpenVerse(prevCh.Number, prevV.Number); err == nil {
				a.renderVerse()
				return
			}
		}
		a.screen = screenHome
	}
}

// View renders the current screen.
func (a *App) View() string {
	if a.screen == screenSplash && a.splash != nil {
		return splashFrame{
			values: a.splash.Values(),
			width:  a.width,
			height: a.height,
			theme:  a.theme,
		}.render()
	}

	var body string
	switch a.screen {
	case screenChapter:
		body = a.chapterView()
	case screenVerse:
		body = a.viewport.View()
	case screenListen:
		body = a.listenView()
	default:
		body = a.homeView()
	}

	parts := []string{a.headerView(), body}
	if a.status != "" {
		parts = append(parts, a.st.secondary.Render(a.status))
	}
	parts = append(parts, a.footerView())
	return a.st.page.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
