package clause

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/freelance-shield/internal/model"
)

const rate = "Rs. 2,000"

func TestResolveDeterministic(t *testing.T) {
	for _, category := range model.Categories {
		first := Resolve(category, rate)
		second := Resolve(category, rate)
		assert.Equal(t, first, second, "category %s", category)
	}
}

func TestResolveDefaultForUnknownCategory(t *testing.T) {
	want := Default(rate)
	for _, category := range []model.IndustryCategory{model.CategoryNone, "", "Plumbing", "web development"} {
		assert.Equal(t, want, Resolve(category, rate), "category %q", category)
	}
	assert.Contains(t, want.Acceptance, "extra changes are billed at Rs. 2,000/hr.")
}

func TestResolveNoTokenLeftBehind(t *testing.T) {
	for _, category := range model.Categories {
		set := Resolve(category, rate)
		for _, slot := range model.ClauseSlots {
			text := set.Get(slot)
			require.NotEmpty(t, text, "%s/%s", category, slot)
			assert.NotContains(t, text, rateToken, "%s/%s", category, slot)
		}
	}
}

func TestResolveOverrides(t *testing.T) {
	def := Default(rate)

	tests := []struct {
		category model.IndustryCategory
		slots    []model.ClauseSlot
	}{
		{model.CategoryWebDevelopment, []model.ClauseSlot{model.SlotWarranty, model.SlotIPRights}},
		{model.CategoryAppDevelopment, []model.ClauseSlot{model.SlotWarranty, model.SlotIPRights}},
		{model.CategoryGraphicDesign, []model.ClauseSlot{model.SlotAcceptance, model.SlotIPRights}},
		{model.CategoryVideoEditing, []model.ClauseSlot{model.SlotAcceptance, model.SlotIPRights}},
		{model.CategoryUIUXDesign, []model.ClauseSlot{model.SlotAcceptance, model.SlotIPRights}},
		{model.CategoryPhotography, []model.ClauseSlot{model.SlotAcceptance, model.SlotIPRights}},
		{model.CategorySocialMediaMarketing, []model.ClauseSlot{model.SlotAcceptance, model.SlotWarranty}},
		{model.CategorySEO, []model.ClauseSlot{model.SlotAcceptance, model.SlotWarranty}},
		{model.CategoryContentWriting, []model.ClauseSlot{model.SlotAcceptance, model.SlotWarranty}},
		{model.CategoryTranslation, []model.ClauseSlot{model.SlotAcceptance, model.SlotWarranty, model.SlotCancellation}},
		{model.CategoryVoiceOver, []model.ClauseSlot{model.SlotAcceptance, model.SlotCancellation}},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.slots, OverriddenSlots(tt.category))

			set := Resolve(tt.category, rate)
			overridden := map[model.ClauseSlot]bool{}
			for _, slot := range tt.slots {
				overridden[slot] = true
			}
			for _, slot := range model.ClauseSlots {
				if overridden[slot] {
					assert.NotEqual(t, def.Get(slot), set.Get(slot), "slot %s should be overridden", slot)
				} else {
					assert.Equal(t, def.Get(slot), set.Get(slot), "slot %s should keep the default", slot)
				}
			}
		})
	}
}

func TestTechnicalCategoryInterpolatesRateIntoWarranty(t *testing.T) {
	set := Resolve(model.CategoryWebDevelopment, rate)
	assert.True(t, strings.HasPrefix(set.IPRights, "SOURCE CODE OWNERSHIP"))
	assert.Contains(t, set.Warranty, "billed at Rs. 2,000/hr.")
}

func TestScopeTemplates(t *testing.T) {
	assert.Contains(t, ScopeTemplate(model.CategoryWebDevelopment), "5-Page WordPress Site")
	assert.Contains(t, ScopeTemplate(model.CategorySocialMediaMarketing), "12 Static Posts/month")
	assert.Empty(t, ScopeTemplate(model.CategoryNone))
	assert.Empty(t, ScopeTemplate("Plumbing"))

	for _, category := range model.Categories[1:] {
		assert.NotEmpty(t, ScopeTemplate(category), "category %s", category)
	}
}

func TestLoadScopeTemplatesRejectsBadYAML(t *testing.T) {
	_, err := loadScopeTemplates([]byte("templates: ["))
	require.Error(t, err)
}
