package form

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lead.yaml
var defaultLeadYAML []byte

// Definition is the static description of a multi-step form.
type Definition struct {
	ID       string `yaml:"id" json:"id"`
	FormType string `yaml:"form_type" json:"form_type"`
	Title    string `yaml:"title" json:"title"`
	// Subject is the email subject line; "{name}" is replaced by the lead's name.
	Subject string `yaml:"subject" json:"subject"`
	Steps   []Step `yaml:"steps" json:"steps"`

	fields  map[string]Field
	options map[string]struct{}
}

// Default returns the embedded lead-qualification form.
func Default() *Definition {
	def, err := Parse(defaultLeadYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded lead form is invalid: %v", err))
	}
	return def
}

// Load reads a YAML definition from disk.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form definition: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse form definition: %w", err)
	}
	if err := def.init(); err != nil {
		return nil, err
	}
	return &def, nil
}

// init assigns step indices, builds lookup tables and rejects inconsistent definitions.
func (d *Definition) init() error {
	var problems []string
	if d.ID == "" {
		problems = append(problems, "id is required")
	}
	if d.FormType == "" {
		d.FormType = d.ID
	}
	if len(d.Steps) == 0 {
		problems = append(problems, "at least one step is required")
	}

	d.fields = make(map[string]Field)
	d.options = make(map[string]struct{})
	for i := range d.Steps {
		step := &d.Steps[i]
		step.Index = i + 1
		for _, f := range step.Fields {
			if f.Name == "" {
				problems = append(problems, fmt.Sprintf("step %d: field without name", step.Index))
				continue
			}
			if f.Name == OptionsField {
				problems = append(problems, fmt.Sprintf("step %d: field name %q is reserved", step.Index, f.Name))
			}
			if _, dup := d.fields[f.Name]; dup {
				problems = append(problems, fmt.Sprintf("step %d: duplicate field %q", step.Index, f.Name))
			}
			if !knownKind(f.Kind) {
				problems = append(problems, fmt.Sprintf("step %d: field %q has unknown kind %q", step.Index, f.Name, f.Kind))
			}
			if f.Kind == KindChoice && len(f.Options) == 0 {
				problems = append(problems, fmt.Sprintf("step %d: choice field %q has no options", step.Index, f.Name))
			}
			d.fields[f.Name] = f
		}
		if step.Options != nil {
			if step.Options.MinSelected > len(step.Options.Choices) {
				problems = append(problems, fmt.Sprintf("step %d: min_selected exceeds choices", step.Index))
			}
			for _, c := range step.Options.Choices {
				d.options[c] = struct{}{}
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid form definition:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func knownKind(k FieldKind) bool {
	return slices.Contains([]FieldKind{KindText, KindName, KindEmail, KindPhone, KindLongText, KindChoice, KindURL}, k)
}

// TotalSteps returns N, the number of steps.
func (d *Definition) TotalSteps() int {
	return len(d.Steps)
}

// Step returns the 1-based step i.
func (d *Definition) Step(i int) (Step, error) {
	if i < 1 || i > len(d.Steps) {
		return Step{}, errors.New("step index out of range")
	}
	return d.Steps[i-1], nil
}

// Field looks up a field by name across all steps.
func (d *Definition) Field(name string) (Field, bool) {
	f, ok := d.fields[name]
	return f, ok
}

// HasOption reports whether name is a declared multi-select choice.
func (d *Definition) HasOption(name string) bool {
	_, ok := d.options[name]
	return ok
}

// FieldsOfKind returns the names of every field of kind k, in declaration order.
func (d *Definition) FieldsOfKind(k FieldKind) []string {
	var names []string
	for _, s := range d.Steps {
		for _, f := range s.Fields {
			if f.Kind == k {
				names = append(names, f.Name)
			}
		}
	}
	return names
}
