package form_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_LeadForm(t *testing.T) {
	def := form.Default()

	assert.Equal(t, "lead-qualification", def.FormType)
	assert.Equal(t, 4, def.TotalSteps())

	step1, err := def.Step(1)
	require.NoError(t, err)
	assert.Equal(t, 1, step1.Index)
	assert.ElementsMatch(t, []string{"name", "email"}, step1.RequiredFields())

	_, err = def.Step(5)
	assert.Error(t, err)

	_, ok := def.Field("description")
	assert.True(t, ok)
	assert.True(t, def.HasOption("More leads"))
	assert.False(t, def.HasOption("World domination"))
}

func TestStep_ValidateOnlyOwnFields(t *testing.T) {
	def := form.Default()
	d := domain.NewDraft()
	d.Set("name", "Ada")
	d.Set("email", "not-an-email")

	step1, _ := def.Step(1)
	errs := step1.Validate(d)
	assert.Len(t, errs, 1)
	assert.Contains(t, errs, "email")

	d.Set("email", "a@b.co")
	assert.Empty(t, step1.Validate(d))
}

func TestStep_OptionGroupMinimum(t *testing.T) {
	def := form.Default()
	d := domain.NewDraft()
	d.Set("budget", "$2k - $5k")
	d.Set("timeline", "Flexible")

	step3, _ := def.Step(3)
	errs := step3.Validate(d)
	assert.Contains(t, errs, form.OptionsField)

	d.ToggleOption("Better SEO")
	assert.Empty(t, step3.Validate(d))
}

func TestParse_RejectsInconsistentDefinitions(t *testing.T) {
	tests := map[string]string{
		"no steps": "id: x\nsteps: []\n",
		"duplicate field": `
id: x
steps:
  - title: a
    fields:
      - {name: email, kind: email}
  - title: b
    fields:
      - {name: email, kind: email}
`,
		"unknown kind": `
id: x
steps:
  - title: a
    fields:
      - {name: age, kind: number}
`,
		"choice without options": `
id: x
steps:
  - title: a
    fields:
      - {name: size, kind: choice}
`,
		"reserved name": `
id: x
steps:
  - title: a
    fields:
      - {name: selected_options, kind: text}
`,
	}

	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := form.Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.yaml")
	src := `
id: contact
title: Contact
steps:
  - title: Only step
    fields:
      - {name: email, kind: email, required: true}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	def, err := form.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "contact", def.FormType, "form_type defaults to id")
	assert.Equal(t, 1, def.TotalSteps())

	_, err = form.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefinition_SanitizeDropsUnknownFields(t *testing.T) {
	def := form.Default()
	out := def.Sanitize(map[string]string{
		"description": "<script>alert(1)</script>I need a <b>new</b> site for my bakery",
		"injected":    "value",
	})
	assert.NotContains(t, out, "injected")
	assert.False(t, strings.Contains(out["description"], "<"))
	assert.Contains(t, out["description"], "new site for my bakery")
}

func TestDefinition_ReplyToAndSubject(t *testing.T) {
	def := form.Default()
	fields := map[string]string{"name": " Ada ", "email": "ada@example.com"}

	assert.Equal(t, "ada@example.com", def.ReplyTo(fields))
	assert.Equal(t, "New project inquiry from Ada", def.SubjectFor(fields))

	assert.Equal(t, "", def.ReplyTo(map[string]string{"email": "nope"}))
	assert.Equal(t, "New project inquiry from a visitor", def.SubjectFor(nil))
}

func TestDecodeLead(t *testing.T) {
	lead, err := form.DecodeLead(map[string]string{"name": "Ada", "project_type": "Redesign", "extra": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", lead.Name)
	assert.Equal(t, "Redesign", lead.ProjectType)
}

func TestDefinition_FirstInvalid(t *testing.T) {
	def := form.Default()
	d := domain.NewDraft()

	idx, errs := def.FirstInvalid(d)
	assert.Equal(t, 1, idx)
	assert.Contains(t, errs, "name")

	d.Set("name", "Ada Lovelace")
	d.Set("email", "ada@example.com")
	idx, _ = def.FirstInvalid(d)
	assert.Equal(t, 2, idx)
}
