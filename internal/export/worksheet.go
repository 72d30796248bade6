// Package export renders printable worksheets for a chapter.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/hammamikhairi/gitakids/internal/domain"
)

// Option configures a worksheet.
type Option func(*settings)

type settings struct {
	compress bool
	accent   [3]int
	author   string
}

// WithCompression toggles PDF stream compression. Enabled by default.
func WithCompression(on bool) Option {
	return func(s *settings) {
		s.compress = on
	}
}

// WithAccent sets the RGB colour used for headings.
func WithAccent(r, g, b int) Option {
	return func(s *settings) {
		s.accent = [3]int{r, g, b}
	}
}

// WriteWorksheetFile writes a chapter worksheet to path.
func WriteWorksheetFile(path string, ch domain.Chapter, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating worksheet: %w", err)
	}
	if err := WriteWorksheet(f, ch, opts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteWorksheet writes an A4 PDF with the chapter's names and summary, then
// each verse with its story and discussion questions, and room to draw.
// The built-in PDF fonts cover Latin-1 only, so text is folded to ASCII.
func WriteWorksheet(w io.Writer, ch domain.Chapter, opts ...Option) error {
	s := settings{compress: true, accent: [3]int{0xE0, 0x7A, 0x1F}, author: "gitakids"}
	for _, opt := range opts {
		opt(&s)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(s.compress)
	pdf.SetTitle(Fold(ch.Title()), false)
	pdf.SetAuthor(s.author, false)
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 8, fmt.Sprintf("Chapter %d - page %d of {nb}", ch.Number, pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	heading := func(size float64, text string) {
		pdf.SetFont("Helvetica", "B", size)
		pdf.SetTextColor(s.accent[0], s.accent[1], s.accent[2])
		pdf.MultiCell(0, size*0.5, Fold(text), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	body := func(style, text string) {
		pdf.SetFont("Helvetica", style, 11)
		pdf.MultiCell(0, 6, Fold(text), "", "L", false)
	}

	heading(20, fmt.Sprintf("Chapter %d: %s", ch.Number, ch.Title()))
	var sub []string
	if ch.Names.Translated != "" && ch.Names.Translated != ch.Title() {
		sub = append(sub, ch.Names.Translated)
	}
	if ch.Names.Original != "" {
		sub = append(sub, ch.Names.Original)
	}
	if len(sub) > 0 {
		body("I", strings.Join(sub, " / "))
	}
	pdf.Ln(2)
	body("", ch.Summary)

	for _, v := range ch.Verses {
		pdf.Ln(6)
		heading(14, fmt.Sprintf("Verse %d.%d", ch.Number, v.Number))
		if v.Original != "" {
			body("I", v.Original)
			pdf.Ln(1)
		}
		body("", v.Translation)
		if v.Story != "" {
			pdf.Ln(2)
			body("B", "Story time")
			body("", v.Story)
		}
		if len(v.Questions) > 0 {
			pdf.Ln(2)
			body("B", "Let's talk")
			for i, q := range v.Questions {
				body("", fmt.Sprintf("%d. %s", i+1, q))
				pdf.Ln(8)
			}
		}
	}

	pdf.AddPage()
	heading(14, "Draw your favourite part of the story")
	x, y := pdf.GetXY()
	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	pdf.SetDrawColor(s.accent[0], s.accent[1], s.accent[2])
	pdf.Rect(x, y+4, pageW-left-right, pageH-y-bottom-24, "D")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("rendering worksheet for chapter %d: %w", ch.Number, err)
	}
	return nil
}

var punctuation = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", "\"", "”", "\"",
	"–", "-", "—", "-",
	"…", "...",
)

// Fold strips diacritics and maps typographic punctuation to ASCII, so
// transliterated Sanskrit such as "Viṣāda" prints as "Visada". Anything
// still outside ASCII is dropped.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, punctuation.Replace(s))
	if err != nil {
		folded = s
	}
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, folded)
}
