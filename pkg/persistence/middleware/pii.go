package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/ports"
)

// Mask replaces redacted values.
const Mask = "***"

// DefaultPIIPatterns match the contact fields of the lead form.
var DefaultPIIPatterns = []string{`(?i)^name$`, `(?i)email`, `(?i)phone`}

type piiMiddleware struct {
	next     ports.DraftStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a read-side view that masks values of fields whose
// names match the patterns. Writes pass through untouched, so the wrapped store
// keeps full data while listings and inspection only ever see masked copies.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.DraftStore) ports.DraftStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Set(ctx context.Context, key string, draft *domain.Draft) error {
	return m.next.Set(ctx, key, draft)
}

func (m *piiMiddleware) Get(ctx context.Context, key string) (*domain.Draft, error) {
	draft, err := m.next.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	masked := draft.Clone()
	for name, value := range masked.Fields {
		if value != "" && m.sensitive(name) {
			masked.Fields[name] = Mask
		}
	}
	return masked, nil
}

func (m *piiMiddleware) Delete(ctx context.Context, key string) error {
	return m.next.Delete(ctx, key)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) sensitive(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
