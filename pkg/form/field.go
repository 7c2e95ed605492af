package form

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"
)

// FieldKind selects the validator applied to a field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindName     FieldKind = "name"
	KindEmail    FieldKind = "email"
	KindPhone    FieldKind = "phone"
	KindLongText FieldKind = "longtext"
	KindChoice   FieldKind = "choice"
	KindURL      FieldKind = "url"
)

// Default minimum lengths per kind.
const (
	DefaultNameMinLength        = 2
	DefaultDescriptionMinLength = 20
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)
	phoneStrip   = strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")
	urlPattern   = regexp.MustCompile(`^(https?://)?[^\s/$.?#]+\.[^\s]+$`)
)

// Field is a named, typed input belonging to one step.
type Field struct {
	Name      string    `yaml:"name" json:"name"`
	Label     string    `yaml:"label" json:"label"`
	Kind      FieldKind `yaml:"kind" json:"kind"`
	Required  bool      `yaml:"required" json:"required"`
	MinLength int       `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	Options   []string  `yaml:"options,omitempty" json:"options,omitempty"`
	Help      string    `yaml:"help,omitempty" json:"help,omitempty"`
}

// minLength returns the effective minimum length for the field.
func (f Field) minLength() int {
	if f.MinLength > 0 {
		return f.MinLength
	}
	switch f.Kind {
	case KindName:
		return DefaultNameMinLength
	case KindLongText:
		return DefaultDescriptionMinLength
	}
	return 0
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Validate returns a human-readable message, or "" when value is acceptable.
func (f Field) Validate(value string) string {
	trimmed := strings.TrimSpace(value)

	if trimmed == "" {
		// Kinds with a minimum length treat empty as too short even when optional.
		if f.Required || f.Kind == KindName {
			return fmt.Sprintf("%s is required", f.label())
		}
		return ""
	}

	switch f.Kind {
	case KindName, KindText:
		if n := f.minLength(); n > 0 && utf8.RuneCountInString(trimmed) < n {
			return fmt.Sprintf("%s must be at least %d characters", f.label(), n)
		}
	case KindEmail:
		if !ValidEmail(trimmed) {
			return "Please enter a valid email address"
		}
	case KindPhone:
		if !ValidPhone(trimmed) {
			return "Please enter a valid phone number"
		}
	case KindLongText:
		if n := f.minLength(); utf8.RuneCountInString(trimmed) < n {
			return fmt.Sprintf("Please tell me a bit more (at least %d characters)", n)
		}
	case KindChoice:
		if !slices.Contains(f.Options, trimmed) {
			return fmt.Sprintf("Please choose a valid %s", strings.ToLower(f.label()))
		}
	case KindURL:
		if !urlPattern.MatchString(trimmed) {
			return "Please enter a valid website address"
		}
	}
	return ""
}

// ValidEmail reports whether s has a single "@" and a dotted domain.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone reports whether s is a loose international number once
// spaces, parentheses and hyphens are stripped.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(phoneStrip.Replace(s))
}
