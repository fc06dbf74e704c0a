// Package document assembles the agreement text from the request and the
// resolved clauses. The result carries no layout information.
package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/nurpe/freelance-shield/internal/model"
)

const (
	Title            = "PROFESSIONAL SERVICES AGREEMENT"
	AnnexureHeading  = "ANNEXURE A: SCOPE OF WORK"
	ScopePlaceholder = "Scope of work to be agreed in writing by the parties and attached to this Annexure."

	// Late-payment interest applies uniformly to every category.
	InterestMultiplier    = 3
	InterestReferenceDays = 45

	ConfidentialityYears = 2

	gstAnnotation = "(Exclusive of GST)"
	signatureLine = "_________________________"
	dateLine      = "_______________"
)

// Assemble builds the agreement. It fails with model.ErrInvalidInput when the
// fee is negative or the advance is outside [0,100].
func Assemble(input model.ContractInput, clauses model.ClauseSet, issuedAt time.Time) (model.AssembledDocument, error) {
	if err := input.ValidateTerms(); err != nil {
		return model.AssembledDocument{}, err
	}

	provider := strings.TrimSpace(input.ProviderName)
	client := strings.TrimSpace(input.ClientName)
	split := input.Split()

	sections := make([]model.Section, 0, len(model.SectionOrder))
	add := func(kind model.SectionKind, text string) {
		sections = append(sections, model.Section{Kind: kind, Text: text})
	}

	add(model.SectionTitle, Title)
	add(model.SectionDate, "Date: "+issuedAt.Format("January 2, 2006"))
	add(model.SectionParties, fmt.Sprintf("BETWEEN: %s (Provider) AND %s (Client)", provider, client))

	numbered := []struct {
		kind model.SectionKind
		text string
	}{
		{model.SectionPayment, paymentClause(input, split)},
		{model.SectionAcceptance, clauses.Acceptance},
		{model.SectionConfidentiality, confidentialityClause()},
		{model.SectionIPRights, clauses.IPRights},
		{model.SectionWarranty, clauses.Warranty},
		{model.SectionCommunication, clauses.Termination},
		{model.SectionForceMajeure, forceMajeureClause},
		{model.SectionLiability, clauses.Liability},
		{model.SectionCancellation, clauses.Cancellation},
		{model.SectionJurisdiction, jurisdictionClause(input.Jurisdiction())},
		{model.SectionGSTCompliance, gstComplianceClause},
	}
	for i, c := range numbered {
		add(c.kind, fmt.Sprintf("%d. %s", i+1, c.text))
	}

	add(model.SectionSignatures, signatureBlock(provider, client))
	add(model.SectionAnnexureHeading, AnnexureHeading)
	add(model.SectionAnnexureBody, scopeBody(input.ScopeText))

	return model.AssembledDocument{
		IssuedAt:     issuedAt,
		ProviderName: provider,
		ClientName:   client,
		Category:     input.IndustryCategory,
		Payment:      split,
		Clauses:      clauses,
		Sections:     sections,
	}, nil
}

// PlainText joins the sections the way the preview shows them.
func PlainText(doc model.AssembledDocument) string {
	parts := make([]string, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, "\n\n")
}

func paymentClause(input model.ContractInput, split model.PaymentSplit) string {
	total := fmt.Sprintf("Total Fee %s (%s)", FormatRupees(split.Total), RupeesInWords(split.Total))
	if input.GSTRegistered {
		total += " " + gstAnnotation
	}
	return fmt.Sprintf(
		"PAYMENT TERMS: %s. Advance: %d%% (%s) payable before work begins. Balance: %s payable on delivery. "+
			"Payments delayed beyond %d days attract compound interest at %dx the bank rate notified by the "+
			"Reserve Bank of India under the MSMED Act, 2006 (where applicable).",
		total,
		input.AdvancePercent,
		FormatRupees(split.Advance),
		FormatRupees(split.Balance),
		InterestReferenceDays,
		InterestMultiplier,
	)
}

func confidentialityClause() string {
	return fmt.Sprintf(
		"CONFIDENTIALITY: Each party shall keep the other's confidential information secret and use it only for "+
			"this Agreement. This obligation survives for %d years after the Agreement ends.",
		ConfidentialityYears,
	)
}

const forceMajeureClause = "FORCE MAJEURE: Neither party is liable for delay or failure caused by events beyond its " +
	"reasonable control, including natural disasters, epidemics, war, government action or failure of public " +
	"utilities. Obligations resume once the event ends."

const gstComplianceClause = "GST COMPLIANCE: Where the Provider is registered under GST, tax at the applicable rate " +
	"is charged in addition to the Total Fee against a valid tax invoice. Each party is responsible for its own tax " +
	"filings."

func jurisdictionClause(city string) string {
	return fmt.Sprintf(
		"JURISDICTION: This Agreement is governed by the laws of India. Disputes are subject to the exclusive "+
			"jurisdiction of the courts in %s.",
		city,
	)
}

func signatureBlock(provider, client string) string {
	var b strings.Builder
	b.WriteString("IN WITNESS WHEREOF, the parties have executed this Agreement.\n")
	for _, party := range []struct{ role, name string }{{"PROVIDER", provider}, {"CLIENT", client}} {
		b.WriteString("\nSIGNED BY ")
		b.WriteString(party.role)
		b.WriteString(":\n")
		b.WriteString("Signature: " + signatureLine + "\n")
		b.WriteString("Name: " + party.name + "\n")
		b.WriteString("Date: " + dateLine + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func scopeBody(scope string) string {
	scope = strings.ReplaceAll(scope, "\r\n", "\n")
	scope = strings.ReplaceAll(scope, "\r", "\n")
	if strings.TrimSpace(scope) == "" {
		return ScopePlaceholder
	}
	return strings.TrimRight(scope, "\n")
}
