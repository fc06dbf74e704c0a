package model

import "time"

type SectionKind string

const (
	SectionTitle           SectionKind = "TITLE"
	SectionDate            SectionKind = "DATE"
	SectionParties         SectionKind = "PARTIES"
	SectionPayment         SectionKind = "PAYMENT"
	SectionAcceptance      SectionKind = "ACCEPTANCE"
	SectionConfidentiality SectionKind = "CONFIDENTIALITY"
	SectionIPRights        SectionKind = "IP_RIGHTS"
	SectionWarranty        SectionKind = "WARRANTY"
	SectionCommunication   SectionKind = "COMMUNICATION"
	SectionForceMajeure    SectionKind = "FORCE_MAJEURE"
	SectionLiability       SectionKind = "LIABILITY"
	SectionCancellation    SectionKind = "CANCELLATION"
	SectionJurisdiction    SectionKind = "JURISDICTION"
	SectionGSTCompliance   SectionKind = "GST_COMPLIANCE"
	SectionSignatures      SectionKind = "SIGNATURES"
	SectionAnnexureHeading SectionKind = "ANNEXURE_HEADING"
	SectionAnnexureBody    SectionKind = "ANNEXURE_BODY"
)

// SectionOrder is the order every assembled agreement follows.
var SectionOrder = []SectionKind{
	SectionTitle,
	SectionDate,
	SectionParties,
	SectionPayment,
	SectionAcceptance,
	SectionConfidentiality,
	SectionIPRights,
	SectionWarranty,
	SectionCommunication,
	SectionForceMajeure,
	SectionLiability,
	SectionCancellation,
	SectionJurisdiction,
	SectionGSTCompliance,
	SectionSignatures,
	SectionAnnexureHeading,
	SectionAnnexureBody,
}

// Section is one labelled block of agreement text. Text may span several
// lines separated by "\n".
type Section struct {
	Kind SectionKind
	Text string
}

// AssembledDocument is the render-agnostic agreement consumed by both the
// print and the rich-document renderers.
type AssembledDocument struct {
	IssuedAt     time.Time
	ProviderName string
	ClientName   string
	Category     IndustryCategory
	Payment      PaymentSplit
	Clauses      ClauseSet
	Sections     []Section
}

func (d AssembledDocument) Section(kind SectionKind) (Section, bool) {
	for _, s := range d.Sections {
		if s.Kind == kind {
			return s, true
		}
	}
	return Section{}, false
}

func (d AssembledDocument) Title() string {
	s, _ := d.Section(SectionTitle)
	return s.Text
}
