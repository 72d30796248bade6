package display

import (
	_ "embed"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// bannerLines returns the banner art padded to a common width.
func bannerLines() []string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")
	maxW := 0
	for _, l := range lines {
		if len(l) > maxW {
			maxW = len(l)
		}
	}
	for i, l := range lines {
		lines[i] = l + strings.Repeat(" ", maxW-len(l))
	}
	return lines
}

// RenderBanner returns the banner art horizontally centred for width
// columns, coloured with the theme accent. It is used by the plain-text
// commands; the splash draws the banner itself.
func RenderBanner(width int, theme Theme) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))
	var b strings.Builder
	for _, l := range bannerLines() {
		if pad := (width - len(l)) / 2; pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(style.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// scaleBanner samples the art down to the given scale. Scales at or above 1
// return the art unchanged; tiny scales still keep one cell.
func scaleBanner(lines []string, scale float64) []string {
	if scale >= 1 || len(lines) == 0 {
		return lines
	}
	if scale <= 0 {
		scale = 0.01
	}
	srcW, srcH := len(lines[0]), len(lines)
	w := max(1, int(math.Round(float64(srcW)*scale)))
	h := max(1, int(math.Round(float64(srcH)*scale)))

	out := make([]string, h)
	for y := 0; y < h; y++ {
		src := lines[min(srcH-1, int(float64(y)/scale))]
		row := make([]byte, w)
		for x := 0; x < w; x++ {
			row[x] = src[min(srcW-1, int(float64(x)/scale))]
		}
		out[y] = string(row)
	}
	return out
}

// TermWidth returns the current terminal column count, or 80 as fallback.
func TermWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
