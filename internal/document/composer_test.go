package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/freelance-shield/internal/clause"
	"github.com/nurpe/freelance-shield/internal/model"
)

var issued = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

func sampleInput() model.ContractInput {
	return model.ContractInput{
		ProviderName:     "Amit Kumar",
		ClientName:       "Tech Solutions Pvt Ltd",
		JurisdictionCity: "Bengaluru, Karnataka",
		ProjectFee:       50000,
		AdvancePercent:   50,
		OvertimeRate:     2000,
		IndustryCategory: model.CategoryWebDevelopment,
		ScopeText:        "Build 5 pages.",
	}
}

func assemble(t *testing.T, in model.ContractInput) model.AssembledDocument {
	t.Helper()
	doc, err := Assemble(in, clause.Resolve(in.IndustryCategory, FormatRupees(in.OvertimeRate)), issued)
	require.NoError(t, err)
	return doc
}

func kinds(doc model.AssembledDocument) []model.SectionKind {
	out := make([]model.SectionKind, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		out = append(out, s.Kind)
	}
	return out
}

func TestAssembleRoundTrip(t *testing.T) {
	doc := assemble(t, sampleInput())

	assert.Equal(t, int64(25000), doc.Payment.Advance)
	assert.Equal(t, int64(25000), doc.Payment.Balance)
	assert.Equal(t, model.SectionOrder, kinds(doc))

	ip, ok := doc.Section(model.SectionIPRights)
	require.True(t, ok)
	assert.Contains(t, ip.Text, "SOURCE CODE OWNERSHIP")
	assert.NotContains(t, ip.Text, "INTELLECTUAL PROPERTY: All intellectual property")

	payment, _ := doc.Section(model.SectionPayment)
	assert.True(t, strings.HasPrefix(payment.Text, "1. PAYMENT TERMS:"))
	assert.Contains(t, payment.Text, "Total Fee Rs. 50,000 (Rupees fifty thousand only)")
	assert.Contains(t, payment.Text, "Advance: 50% (Rs. 25,000)")
	assert.Contains(t, payment.Text, "Balance: Rs. 25,000")
	assert.Contains(t, payment.Text, "beyond 45 days")
	assert.Contains(t, payment.Text, "3x the bank rate")
	assert.NotContains(t, payment.Text, "GST")

	date, _ := doc.Section(model.SectionDate)
	assert.Equal(t, "Date: October 19, 2026", date.Text)

	parties, _ := doc.Section(model.SectionParties)
	assert.Equal(t, "BETWEEN: Amit Kumar (Provider) AND Tech Solutions Pvt Ltd (Client)", parties.Text)

	jurisdiction, _ := doc.Section(model.SectionJurisdiction)
	assert.Equal(t, "10. ", jurisdiction.Text[:4])
	assert.Contains(t, jurisdiction.Text, "courts in Bengaluru, Karnataka.")

	body, _ := doc.Section(model.SectionAnnexureBody)
	assert.Equal(t, "Build 5 pages.", body.Text)
}

func TestAssembleSectionOrderIsStable(t *testing.T) {
	for _, category := range append(model.Categories, "Plumbing") {
		in := sampleInput()
		in.IndustryCategory = category
		in.ScopeText = ""
		in.GSTRegistered = true
		assert.Equal(t, model.SectionOrder, kinds(assemble(t, in)), "category %s", category)
	}
}

func TestAssembleZeroAdvance(t *testing.T) {
	in := sampleInput()
	in.AdvancePercent = 0
	doc := assemble(t, in)

	assert.Equal(t, int64(0), doc.Payment.Advance)
	assert.Equal(t, int64(50000), doc.Payment.Balance)
	payment, _ := doc.Section(model.SectionPayment)
	assert.Contains(t, payment.Text, "Advance: 0% (Rs. 0)")
	assert.Contains(t, payment.Text, "Balance: Rs. 50,000")
}

func TestAssembleGSTAnnotation(t *testing.T) {
	in := sampleInput()
	in.GSTRegistered = true
	payment, _ := assemble(t, in).Section(model.SectionPayment)
	assert.Contains(t, payment.Text, "only) (Exclusive of GST). Advance")
}

func TestAssembleNoCategoryUsesDefaults(t *testing.T) {
	in := sampleInput()
	in.IndustryCategory = model.CategoryNone
	in.ScopeText = "Design a landing page."
	doc := assemble(t, in)

	assert.Equal(t, clause.Default(FormatRupees(in.OvertimeRate)), doc.Clauses)
	body, _ := doc.Section(model.SectionAnnexureBody)
	assert.Equal(t, "Design a landing page.", body.Text)
}

func TestAssembleEmptyScopeUsesPlaceholder(t *testing.T) {
	for _, scope := range []string{"", "   ", "\r\n\n"} {
		in := sampleInput()
		in.ScopeText = scope
		body, _ := assemble(t, in).Section(model.SectionAnnexureBody)
		assert.Equal(t, ScopePlaceholder, body.Text)
	}
}

func TestAssembleKeepsScopeVerbatim(t *testing.T) {
	in := sampleInput()
	in.ScopeText = "1. DELIVERABLE: Logo\r\n   - CRITERIA: SVG  and PNG\r\n"
	body, _ := assemble(t, in).Section(model.SectionAnnexureBody)
	assert.Equal(t, "1. DELIVERABLE: Logo\n   - CRITERIA: SVG  and PNG", body.Text)
}

func TestAssembleBlankCityUsesDefaultJurisdiction(t *testing.T) {
	in := sampleInput()
	in.JurisdictionCity = "  "
	jurisdiction, _ := assemble(t, in).Section(model.SectionJurisdiction)
	assert.Contains(t, jurisdiction.Text, "courts in "+model.DefaultJurisdictionCity+".")
	assert.NotContains(t, jurisdiction.Text, "courts in .")
}

func TestAssembleSignatureBlock(t *testing.T) {
	sig, _ := assemble(t, sampleInput()).Section(model.SectionSignatures)
	assert.Contains(t, sig.Text, "SIGNED BY PROVIDER:\nSignature: _________________________\nName: Amit Kumar")
	assert.Contains(t, sig.Text, "SIGNED BY CLIENT:\nSignature: _________________________\nName: Tech Solutions Pvt Ltd")
}

func TestAssembleRejectsInvalidTerms(t *testing.T) {
	cases := map[string]func(*model.ContractInput){
		"negative fee":  func(in *model.ContractInput) { in.ProjectFee = -100 },
		"advance above": func(in *model.ContractInput) { in.AdvancePercent = 150 },
		"advance below": func(in *model.ContractInput) { in.AdvancePercent = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := sampleInput()
			mutate(&in)
			doc, err := Assemble(in, clause.Default("Rs. 0"), issued)
			require.ErrorIs(t, err, model.ErrInvalidInput)
			assert.Empty(t, doc.Sections)
		})
	}
}

func TestPlainText(t *testing.T) {
	text := PlainText(assemble(t, sampleInput()))
	assert.True(t, strings.HasPrefix(text, Title+"\n\nDate: "))
	assert.True(t, strings.HasSuffix(text, AnnexureHeading+"\n\nBuild 5 pages."))
}

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "Rs. 0", FormatRupees(0))
	assert.Equal(t, "Rs. 2,000", FormatRupees(2000))
	assert.Equal(t, "Rs. 1,250,000", FormatRupees(1250000))
}
