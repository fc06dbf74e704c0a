package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"github.com/nurpe/freelance-shield/internal/model"
)

const (
	fontName  = "Helvetica"
	bodySize  = 10.5
	titleSize = 14

	logoName  = "branding"
	logoWidth = 40
	logoGap   = 4
)

type Options struct {
	// LogoPath is an optional branding image drawn on the first page.
	LogoPath string
	Metrics  *Metrics
	Logger   *zerolog.Logger
}

type Generator struct {
	logoPath string
	metrics  Metrics
	log      zerolog.Logger
}

func NewGenerator(opts Options) (*Generator, error) {
	g := &Generator{
		logoPath: strings.TrimSpace(opts.LogoPath),
		metrics:  A4,
		log:      zerolog.Nop(),
	}
	if opts.Metrics != nil {
		g.metrics = *opts.Metrics
	}
	if opts.Logger != nil {
		g.log = *opts.Logger
	}
	if g.metrics.TextWidth() <= 0 || g.metrics.LineHeight <= 0 {
		return nil, fmt.Errorf("invalid page metrics")
	}
	if g.metrics.PageHeight-g.metrics.MarginTop-g.metrics.MarginBottom < g.metrics.LineHeight {
		return nil, fmt.Errorf("page too short for a single line")
	}
	return g, nil
}

func (g *Generator) Generate(doc model.AssembledDocument) ([]byte, error) {
	m := g.metrics

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(m.MarginLeft, m.MarginTop, m.MarginRight)
	pdf.SetAutoPageBreak(false, m.MarginBottom)
	pdf.SetCellMargin(0)
	pdf.SetCreationDate(doc.IssuedAt)
	pdf.SetTitle(doc.Title(), true)
	pdf.SetAuthor(doc.ProviderName, true)
	pdf.SetFillColor(235, 239, 245)

	encoded, replaced := encodeDocument(doc)
	if replaced > 0 {
		g.log.Debug().Int("replaced", replaced).Msg("pdf: substituted characters outside Windows-1252")
	}

	logo := g.registerLogo(pdf)
	offset := 0.0
	if logo != nil {
		offset = logo.height + logoGap
	}

	measure := func(text string, style LineStyle) float64 {
		applyStyle(pdf, style)
		return pdf.GetStringWidth(text)
	}
	layout := Paginate(encoded, m, measure, offset)

	for i, page := range layout.Pages {
		pdf.AddPage()
		if i == 0 && logo != nil {
			pdf.ImageOptions(logoName, m.MarginLeft, m.MarginTop, logoWidth, 0, false, logo.options, 0, "")
		}
		for _, line := range page.Lines {
			drawLine(pdf, m, line)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawLine(pdf *gofpdf.Fpdf, m Metrics, line Line) {
	applyStyle(pdf, line.Style)
	align := "L"
	fill := false
	switch line.Style {
	case StyleTitle:
		align = "C"
	case StyleClause:
		fill = true
	}
	pdf.SetXY(m.MarginLeft, line.Y)
	pdf.CellFormat(m.TextWidth(), m.LineHeight, line.Text, "", 0, align, fill, 0, "")
}

func applyStyle(pdf *gofpdf.Fpdf, style LineStyle) {
	switch style {
	case StyleTitle:
		pdf.SetFont(fontName, "B", titleSize)
	case StyleAnnexure, StyleSignature:
		pdf.SetFont(fontName, "B", bodySize)
	default:
		pdf.SetFont(fontName, "", bodySize)
	}
}

type registeredLogo struct {
	options gofpdf.ImageOptions
	height  float64
}

// registerLogo loads the branding image. Any failure leaves the document
// without a logo.
func (g *Generator) registerLogo(pdf *gofpdf.Fpdf) *registeredLogo {
	if g.logoPath == "" {
		return nil
	}
	imageType := imageTypeFromPath(g.logoPath)
	if imageType == "" {
		g.log.Warn().Str("path", g.logoPath).Msg("pdf: unsupported logo type, skipping")
		return nil
	}
	data, err := os.ReadFile(g.logoPath)
	if err != nil {
		g.log.Warn().Err(err).Str("path", g.logoPath).Msg("pdf: logo unavailable, skipping")
		return nil
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	info := pdf.RegisterImageOptionsReader(logoName, opts, bytes.NewReader(data))
	if pdf.Err() || info == nil || info.Width() <= 0 {
		g.log.Warn().Err(pdf.Error()).Str("path", g.logoPath).Msg("pdf: logo could not be decoded, skipping")
		pdf.ClearError()
		return nil
	}
	return &registeredLogo{
		options: opts,
		height:  logoWidth * info.Height() / info.Width(),
	}
}

func imageTypeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "PNG"
	case ".jpg", ".jpeg":
		return "JPG"
	case ".gif":
		return "GIF"
	default:
		return ""
	}
}

func encodeDocument(doc model.AssembledDocument) (model.AssembledDocument, int) {
	total := 0
	sections := make([]model.Section, len(doc.Sections))
	for i, s := range doc.Sections {
		lines := strings.Split(s.Text, "\n")
		for j, line := range lines {
			var n int
			lines[j], n = toWinAnsi(line)
			total += n
		}
		sections[i] = model.Section{Kind: s.Kind, Text: strings.Join(lines, "\n")}
	}
	doc.Sections = sections
	return doc, total
}
