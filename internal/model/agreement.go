package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidInput = errors.New("invalid input")

type IndustryCategory string

const (
	CategoryNone                 IndustryCategory = "None"
	CategoryWebDevelopment       IndustryCategory = "Web Development"
	CategoryAppDevelopment       IndustryCategory = "App Development"
	CategoryGraphicDesign        IndustryCategory = "Graphic Design"
	CategoryVideoEditing         IndustryCategory = "Video Editing"
	CategoryUIUXDesign           IndustryCategory = "UI/UX Design"
	CategoryPhotography          IndustryCategory = "Photography"
	CategorySocialMediaMarketing IndustryCategory = "Social Media Marketing"
	CategorySEO                  IndustryCategory = "SEO"
	CategoryContentWriting       IndustryCategory = "Content Writing"
	CategoryTranslation          IndustryCategory = "Translation"
	CategoryVoiceOver            IndustryCategory = "Voice Over"
)

// Categories lists the selectable industries in display order.
var Categories = []IndustryCategory{
	CategoryNone,
	CategoryWebDevelopment,
	CategoryAppDevelopment,
	CategoryGraphicDesign,
	CategoryVideoEditing,
	CategoryUIUXDesign,
	CategoryPhotography,
	CategorySocialMediaMarketing,
	CategorySEO,
	CategoryContentWriting,
	CategoryTranslation,
	CategoryVoiceOver,
}

// ParseCategory matches a display name case-insensitively. Blank input maps to
// CategoryNone; anything unrecognised is returned trimmed so that clause
// resolution falls back to the defaults.
func ParseCategory(raw string) IndustryCategory {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return CategoryNone
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), raw) {
			return c
		}
	}
	return IndustryCategory(raw)
}

// DefaultJurisdictionCity is used when the form leaves the city blank.
const DefaultJurisdictionCity = "Bengaluru, Karnataka"

// ContractInput is one generation request as collected by the form.
type ContractInput struct {
	ProviderName     string
	ClientName       string
	JurisdictionCity string
	ProjectFee       int64
	AdvancePercent   int64
	OvertimeRate     int64
	GSTRegistered    bool
	IndustryCategory IndustryCategory
	ScopeText        string
}

// Jurisdiction returns the trimmed city, or DefaultJurisdictionCity when blank.
func (in ContractInput) Jurisdiction() string {
	if city := strings.TrimSpace(in.JurisdictionCity); city != "" {
		return city
	}
	return DefaultJurisdictionCity
}

// Validate checks the party names and the payment terms.
func (in ContractInput) Validate() error {
	if strings.TrimSpace(in.ProviderName) == "" {
		return fmt.Errorf("%w: provider name is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.ClientName) == "" {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if in.OvertimeRate < 0 {
		return fmt.Errorf("%w: overtime rate must not be negative", ErrInvalidInput)
	}
	return in.ValidateTerms()
}

// ValidateTerms checks only the figures that end up in the payment clause.
func (in ContractInput) ValidateTerms() error {
	if in.ProjectFee < 0 {
		return fmt.Errorf("%w: project fee must not be negative", ErrInvalidInput)
	}
	if in.AdvancePercent < 0 || in.AdvancePercent > 100 {
		return fmt.Errorf("%w: advance percent must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

// PaymentSplit is the advance/balance breakdown of the project fee.
type PaymentSplit struct {
	Total   int64
	Advance int64
	Balance int64
}

// Split computes the advance with integer floor division. Callers must
// validate the terms first. The fee is divided before multiplying so that
// any non-negative int64 fee stays in range.
func (in ContractInput) Split() PaymentSplit {
	fee, pct := in.ProjectFee, in.AdvancePercent
	advance := fee/100*pct + fee%100*pct/100
	return PaymentSplit{
		Total:   in.ProjectFee,
		Advance: advance,
		Balance: in.ProjectFee - advance,
	}
}
