package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/freelance-shield/internal/clause"
	"github.com/nurpe/freelance-shield/internal/model"
)

const (
	termsSheet   = "Terms"
	clausesSheet = "Clauses"
	scopeSheet   = "Scope"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// TermSheet is the spreadsheet view of one generated agreement.
type TermSheet struct {
	Reference        string
	Input            model.ContractInput
	Document         model.AssembledDocument
	OvertimeRateText string
}

func (g *Generator) Generate(sheet TermSheet) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", termsSheet); err != nil {
		return nil, err
	}
	if err := g.writeTerms(file, sheet); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(clausesSheet); err != nil {
		return nil, err
	}
	if err := g.writeClauses(file, sheet); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(scopeSheet); err != nil {
		return nil, err
	}
	if err := g.writeScope(file, sheet); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeTerms(file *excelize.File, sheet TermSheet) error {
	doc := sheet.Document
	rows := [][2]interface{}{
		{"Reference", sheet.Reference},
		{"Date", formatDate(doc.IssuedAt)},
		{"Provider", doc.ProviderName},
		{"Client", doc.ClientName},
		{"Jurisdiction", sheet.Input.Jurisdiction()},
		{"Industry", categoryLabel(doc.Category)},
		{"Total fee (INR)", doc.Payment.Total},
		{"Advance (%)", sheet.Input.AdvancePercent},
		{"Advance (INR)", doc.Payment.Advance},
		{"Balance (INR)", doc.Payment.Balance},
		{"Overtime rate", sheet.OvertimeRateText},
		{"GST registered", yesNo(sheet.Input.GSTRegistered)},
	}

	for i, row := range rows {
		r := i + 1
		if err := file.SetCellValue(termsSheet, fmt.Sprintf("A%d", r), row[0]); err != nil {
			return err
		}
		if err := file.SetCellValue(termsSheet, fmt.Sprintf("B%d", r), row[1]); err != nil {
			return err
		}
	}

	if style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = file.SetCellStyle(termsSheet, "A1", fmt.Sprintf("A%d", len(rows)), style)
	}
	if style, err := file.NewStyle(&excelize.Style{NumFmt: 3}); err == nil {
		_ = file.SetCellStyle(termsSheet, "B7", "B7", style)
		_ = file.SetCellStyle(termsSheet, "B9", "B10", style)
	}
	_ = file.SetColWidth(termsSheet, "A", "A", 22)
	_ = file.SetColWidth(termsSheet, "B", "B", 45)
	return nil
}

func (g *Generator) writeClauses(file *excelize.File, sheet TermSheet) error {
	overridden := map[model.ClauseSlot]bool{}
	for _, slot := range clause.OverriddenSlots(sheet.Document.Category) {
		overridden[slot] = true
	}

	headers := []string{"Slot", "Source", "Text"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(clausesSheet, cell, header); err != nil {
			return err
		}
	}

	for i, slot := range model.ClauseSlots {
		row := i + 2
		source := "default"
		if overridden[slot] {
			source = categoryLabel(sheet.Document.Category)
		}
		values := []interface{}{string(slot), source, sheet.Document.Clauses.Get(slot)}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(clausesSheet, cell, value); err != nil {
				return err
			}
		}
	}

	if style, err := file.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}}); err == nil {
		_ = file.SetCellStyle(clausesSheet, "C2", fmt.Sprintf("C%d", len(model.ClauseSlots)+1), style)
	}
	_ = file.SetColWidth(clausesSheet, "A", "A", 16)
	_ = file.SetColWidth(clausesSheet, "B", "B", 24)
	_ = file.SetColWidth(clausesSheet, "C", "C", 100)
	return nil
}

func (g *Generator) writeScope(file *excelize.File, sheet TermSheet) error {
	body, _ := sheet.Document.Section(model.SectionAnnexureBody)
	if err := file.SetCellValue(scopeSheet, "A1", "Scope of work"); err != nil {
		return err
	}
	if err := file.SetCellValue(scopeSheet, "A2", body.Text); err != nil {
		return err
	}
	if style, err := file.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}}); err == nil {
		_ = file.SetCellStyle(scopeSheet, "A2", "A2", style)
	}
	_ = file.SetColWidth(scopeSheet, "A", "A", 100)
	return nil
}

func categoryLabel(category model.IndustryCategory) string {
	if category == "" {
		return string(model.CategoryNone)
	}
	return string(category)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
