package form

import (
	"html"
	"strings"
	"sync"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce   sync.Once
	strictPolicy *bluemonday.Policy
)

func textSanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// StripMarkup removes tags from visitor-supplied text and keeps surrounding
// whitespace. bluemonday escapes what it keeps, so entities are decoded back.
func StripMarkup(s string) string {
	return html.UnescapeString(textSanitizer().Sanitize(s))
}

// SanitizeText strips any markup and trims the result.
func SanitizeText(s string) string {
	return strings.TrimSpace(StripMarkup(s))
}

// Sanitize returns a copy of fields with every value stripped of markup.
// Unknown keys are dropped so only the closed set of form fields leaves the service.
func (d *Definition) Sanitize(fields map[string]string) map[string]string {
	out := make(map[string]string, len(fields))
	for name, value := range fields {
		if _, ok := d.fields[name]; !ok {
			continue
		}
		out[name] = SanitizeText(value)
	}
	return out
}

// FirstInvalid validates every step against d and returns the index and
// messages of the first step that fails, or 0 when all pass.
func (d *Definition) FirstInvalid(draft *domain.Draft) (int, map[string]string) {
	for _, step := range d.Steps {
		if errs := step.Validate(draft); len(errs) > 0 {
			return step.Index, errs
		}
	}
	return 0, nil
}
