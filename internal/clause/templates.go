package clause

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nurpe/freelance-shield/internal/model"
)

//go:embed scope_templates.yaml
var scopeTemplatesYAML []byte

type scopeTemplateFile struct {
	Templates []struct {
		Category string `yaml:"category"`
		Scope    string `yaml:"scope"`
	} `yaml:"templates"`
}

var scopeTemplates = mustLoadScopeTemplates(scopeTemplatesYAML)

func loadScopeTemplates(data []byte) (map[model.IndustryCategory]string, error) {
	var file scopeTemplateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse scope templates: %w", err)
	}
	out := make(map[model.IndustryCategory]string, len(file.Templates))
	for _, t := range file.Templates {
		category := model.ParseCategory(t.Category)
		if category == model.CategoryNone {
			continue
		}
		out[category] = strings.TrimRight(t.Scope, "\n")
	}
	return out, nil
}

func mustLoadScopeTemplates(data []byte) map[model.IndustryCategory]string {
	templates, err := loadScopeTemplates(data)
	if err != nil {
		panic(err)
	}
	return templates
}

// ScopeTemplate returns the pre-filled scope of work for category, or "".
func ScopeTemplate(category model.IndustryCategory) string {
	return scopeTemplates[category]
}
