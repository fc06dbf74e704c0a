package pdf

import (
	"strings"
	"unicode/utf8"

	"github.com/nurpe/freelance-shield/internal/document"
	"github.com/nurpe/freelance-shield/internal/model"
)

// Metrics describes the printable page in millimetres.
type Metrics struct {
	PageWidth    float64
	PageHeight   float64
	MarginLeft   float64
	MarginRight  float64
	MarginTop    float64
	MarginBottom float64
	LineHeight   float64
}

var A4 = Metrics{
	PageWidth:    210,
	PageHeight:   297,
	MarginLeft:   18,
	MarginRight:  18,
	MarginTop:    18,
	MarginBottom: 20,
	LineHeight:   6,
}

func (m Metrics) TextWidth() float64 {
	return m.PageWidth - m.MarginLeft - m.MarginRight
}

type LineStyle int

const (
	StyleBody LineStyle = iota
	StyleTitle
	StyleClause
	StyleSignature
	StyleAnnexure
)

type Line struct {
	Text  string
	Style LineStyle
	Y     float64
}

type Page struct {
	Lines []Line
}

type Layout struct {
	Pages []Page
}

// Measure returns the printed width of text in the given style.
type Measure func(text string, style LineStyle) float64

// Paginate splits every section into physical lines and places them on pages.
// firstPageOffset reserves space at the top of the first page for branding.
func Paginate(doc model.AssembledDocument, m Metrics, measure Measure, firstPageOffset float64) Layout {
	p := &paginator{metrics: m}
	p.newPage()
	p.y += firstPageOffset

	for i, section := range doc.Sections {
		if section.Kind == model.SectionAnnexureHeading {
			p.newPage()
		} else if i > 0 {
			p.blank()
		}
		for _, raw := range strings.Split(section.Text, "\n") {
			if strings.TrimSpace(raw) == "" {
				p.blank()
				continue
			}
			style := lineStyle(section.Kind, raw)
			width := func(s string) float64 { return measure(s, style) }
			for j, line := range Wrap(raw, m.TextWidth(), width) {
				emitted := style
				if j > 0 && style == StyleClause {
					// Only the heading line of a clause is shaded.
					emitted = StyleBody
				}
				p.emit(line, emitted)
			}
		}
	}
	return Layout{Pages: p.pages}
}

func lineStyle(kind model.SectionKind, line string) LineStyle {
	switch {
	case kind == model.SectionTitle:
		return StyleTitle
	case kind == model.SectionAnnexureHeading:
		return StyleAnnexure
	case document.IsNumberedClause(line):
		return StyleClause
	case document.IsSignatureLine(line):
		return StyleSignature
	default:
		return StyleBody
	}
}

type paginator struct {
	metrics Metrics
	pages   []Page
	y       float64
}

func (p *paginator) newPage() {
	p.pages = append(p.pages, Page{})
	p.y = p.metrics.MarginTop
}

func (p *paginator) current() *Page {
	return &p.pages[len(p.pages)-1]
}

func (p *paginator) emit(text string, style LineStyle) {
	if p.y+p.metrics.LineHeight > p.metrics.PageHeight-p.metrics.MarginBottom {
		p.newPage()
	}
	page := p.current()
	page.Lines = append(page.Lines, Line{Text: text, Style: style, Y: p.y})
	p.y += p.metrics.LineHeight
}

// blank advances by one line; it is dropped at the top of a page.
func (p *paginator) blank() {
	if len(p.current().Lines) == 0 {
		return
	}
	p.y += p.metrics.LineHeight
}

// Wrap breaks line greedily on ASCII spaces so that no piece is wider than
// width. A line that already fits is returned untouched. A single word wider
// than width is broken between characters. The line may hold Windows-1252
// bytes, so no other byte is treated as a separator.
func Wrap(line string, width float64, measure func(string) float64) []string {
	if measure(line) <= width {
		return []string{line}
	}

	var out []string
	current := ""
	for _, word := range strings.FieldsFunc(line, isSpace) {
		if measure(word) > width {
			if current != "" {
				out = append(out, current)
			}
			pieces := hardBreak(word, width, measure)
			out = append(out, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= width {
			current = candidate
			continue
		}
		out = append(out, current)
		current = word
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

func isSpace(r rune) bool { return r == ' ' }

func hardBreak(word string, width float64, measure func(string) float64) []string {
	var out []string
	start := 0
	for i := 0; i < len(word); {
		_, size := utf8.DecodeRuneInString(word[i:])
		next := i + size
		if i > start && measure(word[start:next]) > width {
			out = append(out, word[start:i])
			start = i
		}
		i = next
	}
	return append(out, word[start:])
}
