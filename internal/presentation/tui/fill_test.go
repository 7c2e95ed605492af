package tui

import (
	"context"
	"strings"
	"testing"

	"github.com/aretw0/portico/pkg/adapters/memory"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/aretw0/portico/pkg/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedDriver answers prompts from per-message queues.
type scriptedDriver struct {
	t       *testing.T
	answers map[string][]string
	infos   []string
	helps   map[string][]string
}

func newScriptedDriver(t *testing.T, answers map[string][]string) *scriptedDriver {
	return &scriptedDriver{t: t, answers: answers, helps: map[string][]string{}}
}

func (d *scriptedDriver) next(msg, help string) string {
	d.t.Helper()
	q := d.answers[msg]
	require.NotEmpty(d.t, q, "unexpected prompt %q", msg)
	d.answers[msg] = q[1:]
	d.helps[msg] = append(d.helps[msg], help)
	return q[0]
}

func (d *scriptedDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	return d.next(cfg.Message, cfg.Help), nil
}

func (d *scriptedDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	return d.next(cfg.Message, cfg.Help), nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	return indexOf(cfg.Options, d.next(cfg.Message, cfg.Help)), nil
}

func (d *scriptedDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	answer := d.next(cfg.Message, cfg.Help)
	return indicesOf(cfg.Options, strings.Split(answer, ",")), nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

type okSubmitter struct{ records []domain.SubmissionRecord }

func (s *okSubmitter) Submit(_ context.Context, r domain.SubmissionRecord) error {
	s.records = append(s.records, r)
	return nil
}

func newWizard(t *testing.T, store *memory.Store, sub *okSubmitter) *wizard.Controller {
	t.Helper()
	c := wizard.New(form.Default(), store, sub)
	c.Initialize(context.Background())
	return c
}

func TestFiller_CompletesWizard(t *testing.T) {
	store := memory.NewStore()
	sub := &okSubmitter{}
	c := newWizard(t, store, sub)

	driver := newScriptedDriver(t, map[string][]string{
		"Full name *": {"Ada Lovelace"},
		// The first email fails validation and is asked again on its own.
		"Email *":               {"ada-at-example", "ada@example.com"},
		"Phone":                 {""},
		"Company":               {"Analytical Engines"},
		"Current website":       {""},
		"Project type *":        {"E-commerce store"},
		"Goals":                 {"Online sales,Faster site"},
		"Budget *":              {"$5k - $10k"},
		"Timeline *":            {"1-3 months"},
		"Project description *": {"An online shop for our punched-card looms."},
		"What next?":            {ActionNext, ActionNext, ActionNext, ActionNext, ActionSubmit},
	})

	require.NoError(t, NewFiller(driver, nil).Run(context.Background(), c))

	require.Len(t, sub.records, 1)
	rec := sub.records[0]
	assert.Equal(t, "ada@example.com", rec.Fields["email"])
	assert.Equal(t, "E-commerce store", rec.Fields["project_type"])
	assert.ElementsMatch(t, []string{"Online sales", "Faster site"}, rec.SelectedOptions)
	assert.Equal(t, domain.PhaseSubmitted, c.Phase())

	assert.Equal(t, []string{"", "Please enter a valid email address"}, driver.helps["Email *"])
	assert.Contains(t, driver.infos, "Step 1 of 4: About you")
	assert.Contains(t, driver.infos[len(driver.infos)-1], "Thanks!")
}

func TestFiller_QuitKeepsDraft(t *testing.T) {
	store := memory.NewStore()
	c := newWizard(t, store, &okSubmitter{})

	driver := newScriptedDriver(t, map[string][]string{
		"Full name *": {"Grace Hopper"},
		"Email *":     {"grace@navy.mil"},
		"Phone":       {""},
		"What next?":  {ActionQuit},
	})
	err := NewFiller(driver, nil).Run(context.Background(), c)
	assert.ErrorIs(t, err, ErrQuit)

	// A new controller on the same store resumes with the answers.
	resumed := newWizard(t, store, &okSubmitter{})
	assert.Equal(t, "Grace Hopper", resumed.View().Fields["name"])
}

func TestFiller_BackReturnsToPreviousStep(t *testing.T) {
	store := memory.NewStore()
	c := newWizard(t, store, &okSubmitter{})

	driver := newScriptedDriver(t, map[string][]string{
		"Full name *":     {"Ada Lovelace", "Ada King"},
		"Email *":         {"ada@example.com", "ada@example.com"},
		"Phone":           {"", ""},
		"Company":         {""},
		"Current website": {""},
		"Project type *":  {"Redesign"},
		"What next?":      {ActionNext, ActionBack, ActionQuit},
	})
	err := NewFiller(driver, func(md string) (string, error) { return "rendered", nil }).Run(context.Background(), c)
	assert.ErrorIs(t, err, ErrQuit)

	v := c.View()
	assert.Equal(t, 1, v.StepIndex)
	assert.Equal(t, "Ada King", v.Fields["name"])
	assert.Contains(t, driver.infos, "rendered")
}
