// Package docx renders an assembled agreement as an editable Office Open XML
// word-processing document.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/nurpe/freelance-shield/internal/document"
	"github.com/nurpe/freelance-shield/internal/model"
)

const (
	styleTitle    = "Title"
	styleHeading1 = "Heading1"
	styleHeading2 = "Heading2"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

type paragraph struct {
	style           string
	centered        bool
	bold            bool
	pageBreakBefore bool
	text            string
}

func (g *Generator) Generate(doc model.AssembledDocument) ([]byte, error) {
	body := buildDocumentXML(paragraphs(doc))

	modified := doc.IssuedAt
	if modified.IsZero() || modified.Year() < 1980 {
		modified = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", coreXML(doc)},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", body},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx: %w", err)
	}
	return buf.Bytes(), nil
}

// paragraphs maps the sections onto headings and paragraphs, one per
// non-empty line.
func paragraphs(doc model.AssembledDocument) []paragraph {
	out := make([]paragraph, 0, len(doc.Sections)*2)
	for _, section := range doc.Sections {
		switch section.Kind {
		case model.SectionTitle:
			out = append(out, paragraph{style: styleTitle, text: section.Text})
			continue
		case model.SectionDate:
			out = append(out, paragraph{centered: true, text: section.Text})
			continue
		case model.SectionAnnexureHeading:
			out = append(out, paragraph{style: styleHeading1, pageBreakBefore: true, text: section.Text})
			continue
		}

		for _, line := range strings.Split(section.Text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			switch {
			case document.IsNumberedClause(line):
				out = append(out, paragraph{style: styleHeading2, text: line})
			case document.IsSignatureLine(line):
				out = append(out, paragraph{bold: true, text: line})
			default:
				out = append(out, paragraph{text: line})
			}
		}
	}
	return out
}

func buildDocumentXML(paras []paragraph) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paras {
		writeParagraph(&b, p)
	}
	b.WriteString(sectionPropsXML)
	b.WriteString(`</w:body></w:document>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, p paragraph) {
	b.WriteString("<w:p>")
	if p.style != "" || p.centered || p.pageBreakBefore {
		b.WriteString("<w:pPr>")
		if p.style != "" {
			b.WriteString(`<w:pStyle w:val="` + p.style + `"/>`)
		}
		if p.pageBreakBefore {
			b.WriteString("<w:pageBreakBefore/>")
		}
		if p.centered {
			b.WriteString(`<w:jc w:val="center"/>`)
		}
		b.WriteString("</w:pPr>")
	}
	b.WriteString("<w:r>")
	if p.bold {
		b.WriteString("<w:rPr><w:b/></w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escape(p.text))
	b.WriteString("</w:t></w:r></w:p>")
}

func coreXML(doc model.AssembledDocument) string {
	var b strings.Builder
	b.WriteString(xmlHeader)
	b.WriteString(`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">`)
	b.WriteString("<dc:title>" + escape(doc.Title()) + "</dc:title>")
	b.WriteString("<dc:creator>" + escape(doc.ProviderName) + "</dc:creator>")
	if !doc.IssuedAt.IsZero() {
		b.WriteString(`<dcterms:created xsi:type="dcterms:W3CDTF">` +
			doc.IssuedAt.UTC().Format(time.RFC3339) + "</dcterms:created>")
	}
	b.WriteString("</cp:coreProperties>")
	return b.String()
}

// escape makes text safe for element content. Characters XML cannot carry
// are replaced with U+FFFD by encoding/xml.
func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
