package form

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// Lead is the typed view of the answers the lead-qualification form collects.
// Fields absent from a custom definition are left empty.
type Lead struct {
	Name        string `mapstructure:"name"`
	Email       string `mapstructure:"email"`
	Phone       string `mapstructure:"phone"`
	Company     string `mapstructure:"company"`
	Website     string `mapstructure:"website"`
	ProjectType string `mapstructure:"project_type"`
	Budget      string `mapstructure:"budget"`
	Timeline    string `mapstructure:"timeline"`
	Description string `mapstructure:"description"`
}

// DecodeLead maps a loose field map onto Lead.
func DecodeLead(fields map[string]string) (Lead, error) {
	var lead Lead
	if err := mapstructure.Decode(fields, &lead); err != nil {
		return Lead{}, fmt.Errorf("failed to decode lead: %w", err)
	}
	return lead, nil
}

// ReplyTo picks the address replies should go to: the "email" field, or the
// first email-kind field of the definition.
func (d *Definition) ReplyTo(fields map[string]string) string {
	if lead, err := DecodeLead(fields); err == nil && ValidEmail(lead.Email) {
		return lead.Email
	}
	for _, name := range d.FieldsOfKind(KindEmail) {
		if v := strings.TrimSpace(fields[name]); ValidEmail(v) {
			return v
		}
	}
	return ""
}

// SubjectFor renders the subject line, substituting "{name}".
func (d *Definition) SubjectFor(fields map[string]string) string {
	subject := d.Subject
	if subject == "" {
		subject = d.Title
	}
	name := ""
	if lead, err := DecodeLead(fields); err == nil {
		name = strings.TrimSpace(lead.Name)
	}
	if name == "" {
		for _, n := range d.FieldsOfKind(KindName) {
			if name = strings.TrimSpace(fields[n]); name != "" {
				break
			}
		}
	}
	if name == "" {
		name = "a visitor"
	}
	return strings.ReplaceAll(subject, "{name}", name)
}
