package display

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the design tokens the screens are drawn with. A Theme is a
// plain value; screens never read colours from anywhere else.
type Theme struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string // saffron
	Secondary  string // lotus pink
	Calm       string // peacock blue, for audio
	Error      string

	Gutter int // left padding in cells
	Gap    int // blank lines between blocks
}

// DefaultTheme is the warm palette used by the reader.
func DefaultTheme() Theme {
	return Theme{
		Background: "#1c1917",
		Surface:    "#292524",
		Text:       "#f5f5f4",
		Muted:      "#a8a29e",
		Accent:     "#f59e0b",
		Secondary:  "#f472b6",
		Calm:       "#38bdf8",
		Error:      "#fca5a5",
		Gutter:     2,
		Gap:        1,
	}
}

// Blend mixes fg over bg at the given opacity in [0,1] and returns a hex
// colour. Terminals have no alpha, so fades are drawn this way.
func (t Theme) Blend(fg, bg string, opacity float64) string {
	f, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	switch {
	case opacity <= 0:
		return b.Hex()
	case opacity >= 1:
		return f.Hex()
	}
	return b.BlendLab(f, opacity).Clamped().Hex()
}

type styles struct {
	title     lipgloss.Style
	subtitle  lipgloss.Style
	text      lipgloss.Style
	muted     lipgloss.Style
	selected  lipgloss.Style
	badge     lipgloss.Style
	accent    lipgloss.Style
	secondary lipgloss.Style
	calm      lipgloss.Style
	err       lipgloss.Style
	footerKey lipgloss.Style
	footerSep lipgloss.Style
	page      lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		title:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
		subtitle:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)).Italic(true),
		text:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		selected:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Background)).Background(lipgloss.Color(t.Accent)).Bold(true),
		badge:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(lipgloss.Color(t.Surface)).Padding(0, 1),
		accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		secondary: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Secondary)),
		calm:      lipgloss.NewStyle().Foreground(lipgloss.Color(t.Calm)),
		err:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),
		footerKey: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		footerSep: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		page:      lipgloss.NewStyle().PaddingLeft(t.Gutter),
	}
}
