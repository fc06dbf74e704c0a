// Package clause resolves the industry-specific clause text of an agreement.
package clause

import (
	"strings"

	"github.com/nurpe/freelance-shield/internal/model"
)

// Resolve returns the clause set for category with rateDisplay substituted
// for the overtime rate. Categories without overrides, including unknown
// ones, get the default set.
func Resolve(category model.IndustryCategory, rateDisplay string) model.ClauseSet {
	replacer := strings.NewReplacer(rateToken, rateDisplay)

	var set model.ClauseSet
	for _, slot := range model.ClauseSlots {
		set = set.With(slot, replacer.Replace(defaults[slot]))
	}
	for slot, text := range overrides[category] {
		set = set.With(slot, replacer.Replace(text))
	}
	return set
}

// Default is the clause set used when no category applies.
func Default(rateDisplay string) model.ClauseSet {
	return Resolve(model.CategoryNone, rateDisplay)
}

// OverriddenSlots lists the slots category replaces, in slot order.
func OverriddenSlots(category model.IndustryCategory) []model.ClauseSlot {
	o, ok := overrides[category]
	if !ok {
		return nil
	}
	slots := make([]model.ClauseSlot, 0, len(o))
	for _, slot := range model.ClauseSlots {
		if _, ok := o[slot]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}
