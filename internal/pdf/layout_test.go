package pdf

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/freelance-shield/internal/clause"
	"github.com/nurpe/freelance-shield/internal/document"
	"github.com/nurpe/freelance-shield/internal/model"
)

// One unit per byte keeps the arithmetic obvious.
func byteWidth(s string) float64 { return float64(len(s)) }

func styledByteWidth(s string, _ LineStyle) float64 { return byteWidth(s) }

var small = Metrics{
	PageWidth:    40,
	PageHeight:   60,
	MarginLeft:   5,
	MarginRight:  5,
	MarginTop:    5,
	MarginBottom: 5,
	LineHeight:   5,
}

func assembled(t *testing.T, scope string) model.AssembledDocument {
	t.Helper()
	in := model.ContractInput{
		ProviderName:     "Amit Kumar",
		ClientName:       "Tech Solutions Pvt Ltd",
		JurisdictionCity: "Bengaluru, Karnataka",
		ProjectFee:       50000,
		AdvancePercent:   50,
		OvertimeRate:     2000,
		IndustryCategory: model.CategoryWebDevelopment,
		ScopeText:        scope,
	}
	doc, err := document.Assemble(in, clause.Resolve(in.IndustryCategory, "Rs. 2,000"), time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return doc
}

func TestWrapKeepsFittingLineUntouched(t *testing.T) {
	line := "  indented   text"
	assert.Equal(t, []string{line}, Wrap(line, 30, byteWidth))
}

func TestWrapGreedy(t *testing.T) {
	got := Wrap("the quick brown fox jumps over the lazy dog", 15, byteWidth)
	assert.Equal(t, []string{"the quick brown", "fox jumps over", "the lazy dog"}, got)
}

func TestWrapExactWidthFits(t *testing.T) {
	got := Wrap("aaaaa bbbbb ccccc", 11, byteWidth)
	assert.Equal(t, []string{"aaaaa bbbbb", "ccccc"}, got)
}

func TestWrapNeverExceedsWidth(t *testing.T) {
	line := strings.Repeat("lorem ipsum dolor sit amet consectetur ", 20)
	for _, width := range []float64{5, 8, 13, 21, 40} {
		pieces := Wrap(line, width, byteWidth)
		for _, p := range pieces {
			assert.LessOrEqual(t, byteWidth(p), width, "piece %q", p)
			assert.NotContains(t, p, "  ")
		}
		if width >= 11 {
			assert.Equal(t, strings.Fields(line), strings.Fields(strings.Join(pieces, " ")))
		}
	}
}

func TestWrapHardBreaksOversizedWord(t *testing.T) {
	word := strings.Repeat("x", 25)
	pieces := Wrap("short "+word+" tail", 10, byteWidth)

	assert.Equal(t, []string{"short", "xxxxxxxxxx", "xxxxxxxxxx", "xxxxx tail"}, pieces)
	for _, p := range pieces {
		assert.LessOrEqual(t, byteWidth(p), 10.0)
	}
	assert.Equal(t, "short"+word+"tail", strings.ReplaceAll(strings.Join(pieces, ""), " ", ""))
}

func TestWrapHardBreakKeepsRunesWhole(t *testing.T) {
	word := strings.Repeat("é", 6) // two bytes each
	pieces := Wrap(word, 5, byteWidth)
	for _, p := range pieces {
		assert.LessOrEqual(t, byteWidth(p), 5.0)
		assert.Equal(t, 0, len(p)%2, "piece %q split a rune", p)
	}
	assert.Equal(t, word, strings.Join(pieces, ""))
}

func TestPaginateLinesFitThePage(t *testing.T) {
	layout := Paginate(assembled(t, "Build 5 pages."), small, styledByteWidth, 0)
	require.Greater(t, len(layout.Pages), 1)

	for _, page := range layout.Pages {
		require.NotEmpty(t, page.Lines)
		for _, line := range page.Lines {
			assert.LessOrEqual(t, byteWidth(line.Text), small.TextWidth(), "line %q", line.Text)
			assert.GreaterOrEqual(t, line.Y, small.MarginTop)
			assert.LessOrEqual(t, line.Y+small.LineHeight, small.PageHeight-small.MarginBottom)
		}
	}
}

func TestPaginateAnnexureStartsFreshPage(t *testing.T) {
	roomy := A4
	layout := Paginate(assembled(t, "Build 5 pages."), roomy, func(s string, _ LineStyle) float64 {
		return float64(len(s)) * 1.8
	}, 0)

	idx := annexurePage(t, layout)
	require.Greater(t, idx, 0)
	first := layout.Pages[idx].Lines[0]
	assert.Equal(t, document.AnnexureHeading, first.Text)
	assert.Equal(t, StyleAnnexure, first.Style)
	assert.Equal(t, roomy.MarginTop, first.Y)

	prev := layout.Pages[idx-1]
	last := prev.Lines[len(prev.Lines)-1]
	assert.Less(t, last.Y+roomy.LineHeight*3, roomy.PageHeight-roomy.MarginBottom, "previous page should still have room")
}

func TestPaginateLongScopeOverflows(t *testing.T) {
	var scope []string
	for i := 0; i < 60; i++ {
		scope = append(scope, "- deliverable line")
	}
	layout := Paginate(assembled(t, strings.Join(scope, "\n")), small, styledByteWidth, 0)

	idx := annexurePage(t, layout)
	count := 0
	for _, page := range layout.Pages[idx:] {
		for _, line := range page.Lines {
			if line.Text == "- deliverable line" {
				count++
			}
		}
	}
	assert.Equal(t, 60, count)
	assert.Greater(t, len(layout.Pages)-idx, 1)
}

func TestPaginateStyles(t *testing.T) {
	layout := Paginate(assembled(t, "2.5 GB storage"), A4, styledByteWidth, 0)

	styles := map[string]LineStyle{}
	for _, page := range layout.Pages {
		for _, line := range page.Lines {
			styles[line.Text] = line.Style
		}
	}
	assert.Equal(t, StyleTitle, styles[document.Title])
	assert.Equal(t, StyleSignature, styles["SIGNED BY PROVIDER:"])
	assert.Equal(t, StyleBody, styles["Name: Amit Kumar"])
	// Scope lines that look numbered get the clause treatment as well.
	assert.Equal(t, StyleClause, styles["2.5 GB storage"])
}

func TestPaginateShadesOnlyClauseHeadingLine(t *testing.T) {
	doc := assembled(t, "Build 5 pages.")
	payment, _ := doc.Section(model.SectionPayment)
	layout := Paginate(doc, A4, func(s string, _ LineStyle) float64 {
		return float64(len(s)) * 3
	}, 0)

	var lines []Line
	for _, page := range layout.Pages {
		lines = append(lines, page.Lines...)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line.Text, "1. PAYMENT TERMS:") {
			continue
		}
		assert.Equal(t, StyleClause, line.Style)
		require.Less(t, i+1, len(lines))
		next := lines[i+1]
		assert.Contains(t, payment.Text, next.Text, "continuation of the payment clause")
		assert.Equal(t, StyleBody, next.Style)
		return
	}
	t.Fatal("payment clause not found")
}

func TestWrapSplitsOnlyOnASCIISpace(t *testing.T) {
	// 0xC2 0x85 and 0xC2 0xA0 decode as UTF-8 whitespace but are two
	// Windows-1252 characters each.
	line := "aaaa Caf\xe9\xc2\x85Brand bbbb \xc2\xa0cc dddd"
	pieces := Wrap(line, 16, byteWidth)
	assert.Equal(t, []string{"aaaa Caf\xe9\xc2\x85Brand", "bbbb \xc2\xa0cc dddd"}, pieces)
}

func TestPaginateKeepsEncodedBytesOnWrappedLines(t *testing.T) {
	scope := "CaféÂ…Brand and Â\u00a0Studio " + strings.Repeat("filler words ", 30)
	encoded, replaced := encodeDocument(assembled(t, scope))
	assert.Zero(t, replaced)

	layout := Paginate(encoded, A4, func(s string, _ LineStyle) float64 {
		return float64(len(s)) * 2
	}, 0)

	var lines []string
	idx := annexurePage(t, layout)
	for _, page := range layout.Pages[idx:] {
		for _, line := range page.Lines {
			lines = append(lines, line.Text)
		}
	}
	require.Greater(t, len(lines), 2, "scope line should wrap")
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "Caf\xe9\xc2\x85Brand")
	assert.Contains(t, joined, "\xc2\xa0Studio")
}

func TestPaginateFirstPageOffset(t *testing.T) {
	layout := Paginate(assembled(t, ""), A4, styledByteWidth, 30)
	assert.Equal(t, A4.MarginTop+30, layout.Pages[0].Lines[0].Y)
	assert.Equal(t, A4.MarginTop, layout.Pages[1].Lines[0].Y)
}

func annexurePage(t *testing.T, layout Layout) int {
	t.Helper()
	for i, page := range layout.Pages {
		for j, line := range page.Lines {
			if line.Text == document.AnnexureHeading {
				require.Equal(t, 0, j, "annexure heading must open its page")
				return i
			}
		}
	}
	t.Fatal("annexure heading not found")
	return -1
}
