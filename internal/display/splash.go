package display

import (
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/gitakids/internal/timeline"
)

// Properties the splash reads from the timeline. Missing properties keep
// their resting look, so a custom splash file may animate any subset.
const (
	propLogoOpacity       = "logo.opacity"
	propLogoScale         = "logo.scale"
	propLogoPosition      = "logo.position"
	propTitleOpacity      = "title.opacity"
	propTitleOffset       = "title.offset"
	propContentOpacity    = "content.opacity"
	propBackgroundOpacity = "background.opacity"
)

const (
	splashTitle   = "Gita for Kids"
	splashTagline = "stories of courage, kindness and calm"
)

// frameMsg asks the splash to sample the controller. Frames carry the run
// generation they were scheduled for; frames from an earlier run are dropped.
type frameMsg struct {
	generation uint64
}

func frameCmd(interval time.Duration, generation uint64) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return frameMsg{generation: generation}
	})
}

// splashFrame is everything needed to draw one splash frame.
type splashFrame struct {
	values timeline.Values
	width  int
	height int
	theme  Theme
}

func (f splashFrame) get(prop string, rest float64) float64 {
	if v, ok := f.values[prop]; ok {
		return v.X
	}
	return rest
}

func (f splashFrame) vec(prop string) (float64, float64) {
	if v, ok := f.values[prop]; ok {
		return v.X, v.Y
	}
	return 0, 0
}

// render draws the frame. The logo sits centred while logo.position.y is 0
// and docks at the top row at -1; title.offset pushes the title down by
// whole rows; opacities blend each element into the background.
func (f splashFrame) render() string {
	t := f.theme
	bgOpacity := f.get(propBackgroundOpacity, 0)
	bg := t.Blend(t.Surface, t.Background, bgOpacity)

	logoColor := t.Blend(t.Accent, bg, f.get(propLogoOpacity, 1))
	titleColor := t.Blend(t.Text, bg, f.get(propTitleOpacity, 1))
	tagColor := t.Blend(t.Secondary, bg, f.get(propTitleOpacity, 1))
	contentColor := t.Blend(t.Muted, bg, f.get(propContentOpacity, 0))

	logo := scaleBanner(bannerLines(), f.get(propLogoScale, 1))
	logoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(logoColor)).Bold(true)

	var block []string
	for _, l := range logo {
		block = append(block, logoStyle.Render(l))
	}

	_, offY := f.vec(propTitleOffset)
	for i := 0; i < int(math.Round(math.Max(0, offY))); i++ {
		block = append(block, "")
	}
	block = append(block, "",
		lipgloss.NewStyle().Foreground(lipgloss.Color(titleColor)).Bold(true).Render(splashTitle),
		lipgloss.NewStyle().Foreground(lipgloss.Color(tagColor)).Italic(true).Render(splashTagline),
	)
	if f.get(propContentOpacity, 0) > 0 {
		block = append(block, "",
			lipgloss.NewStyle().Foreground(lipgloss.Color(contentColor)).Render("Choose a chapter to begin"))
	}

	body := lipgloss.JoinVertical(lipgloss.Center, block...)

	w, h := f.width, f.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	_, posY := f.vec(propLogoPosition)
	free := max(0, h-lipgloss.Height(body))
	top := int(math.Round(float64(free) / 2 * (1 + math.Max(-1, math.Min(0, posY)))))

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", top))
	b.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Center, body))
	return lipgloss.NewStyle().
		Width(w).
		Height(h).
		Background(lipgloss.Color(bg)).
		Render(b.String())
}
