package form

import (
	"fmt"

	"github.com/aretw0/portico/pkg/domain"
)

// OptionGroup is a multi-select question stored in the draft's selected set.
type OptionGroup struct {
	Label       string   `yaml:"label" json:"label"`
	Choices     []string `yaml:"choices" json:"choices"`
	MinSelected int      `yaml:"min_selected,omitempty" json:"min_selected,omitempty"`
}

// Step is one page of the form. Index is 1-based and assigned on load.
type Step struct {
	Index   int          `yaml:"-" json:"index"`
	Title   string       `yaml:"title" json:"title"`
	Intro   string       `yaml:"intro,omitempty" json:"intro,omitempty"`
	Fields  []Field      `yaml:"fields" json:"fields"`
	Options *OptionGroup `yaml:"options,omitempty" json:"options,omitempty"`
}

// OptionsField is the key under which option-group errors are reported.
const OptionsField = "selected_options"

// RequiredFields returns the names of the step's required fields.
func (s Step) RequiredFields() []string {
	var names []string
	for _, f := range s.Fields {
		if f.Required || f.Kind == KindName {
			names = append(names, f.Name)
		}
	}
	return names
}

// Validate checks only this step's fields against the draft.
// An empty map means the step is valid.
func (s Step) Validate(d *domain.Draft) map[string]string {
	errs := make(map[string]string)
	for _, f := range s.Fields {
		if msg := f.Validate(d.Get(f.Name)); msg != "" {
			errs[f.Name] = msg
		}
	}
	if s.Options != nil && s.Options.MinSelected > 0 {
		selected := 0
		for _, choice := range s.Options.Choices {
			if d.HasOption(choice) {
				selected++
			}
		}
		if selected < s.Options.MinSelected {
			errs[OptionsField] = fmt.Sprintf("Please select at least %d option(s)", s.Options.MinSelected)
		}
	}
	return errs
}
