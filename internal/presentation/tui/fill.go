package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/aretw0/portico/pkg/wizard"
)

// Actions offered at the end of each step.
const (
	ActionNext   = "Continue"
	ActionBack   = "Back"
	ActionSubmit = "Send my request"
	ActionQuit   = "Save and quit"
)

// ErrQuit is returned when the visitor leaves with the draft saved.
var ErrQuit = errors.New("tui: saved for later")

// Filler walks a visitor through the wizard in the terminal.
type Filler struct {
	driver PromptDriver
	render func(string) (string, error)
}

// NewFiller creates a Filler. render formats step intros; nil prints them raw.
func NewFiller(driver PromptDriver, render func(string) (string, error)) *Filler {
	if render == nil {
		render = PlainRenderer
	}
	return &Filler{driver: driver, render: render}
}

// Run prompts step by step until the form is submitted, the visitor quits
// (ErrQuit) or a prompt fails. Every answer goes through the controller, so
// the draft is saved as the visitor types.
func (f *Filler) Run(ctx context.Context, c *wizard.Controller) error {
	var retry map[string]string
	for {
		v := c.View()
		if v.Phase == domain.PhaseSubmitted {
			return nil
		}

		if retry == nil {
			if err := f.intro(ctx, v); err != nil {
				return err
			}
		}
		if err := f.promptStep(ctx, c, v, retry); err != nil {
			return err
		}
		retry = nil

		action, err := f.chooseAction(ctx, v)
		if err != nil {
			return err
		}

		switch action {
		case ActionQuit:
			return ErrQuit
		case ActionBack:
			if err := c.GoBack(ctx); err != nil {
				return err
			}
		case ActionNext:
			err = c.GoNext(ctx)
		case ActionSubmit:
			err = c.Submit(ctx)
			if err == nil {
				return f.driver.Info(ctx, Success("Thanks! Your request is on its way. I'll reply within two business days."))
			}
		}

		var verr *domain.ValidationError
		var serr *domain.SubmissionError
		switch {
		case err == nil:
		case errors.As(err, &verr):
			retry = verr.Fields
			if err := f.showErrors(ctx, verr.Fields); err != nil {
				return err
			}
		case errors.As(err, &serr):
			if err := f.driver.Info(ctx, Warn(serr.UserMessage())); err != nil {
				return err
			}
		default:
			return err
		}
	}
}

func (f *Filler) intro(ctx context.Context, v wizard.View) error {
	header := fmt.Sprintf("Step %d of %d: %s", v.StepIndex, v.TotalSteps, v.Step.Title)
	if err := f.driver.Info(ctx, header); err != nil {
		return err
	}
	if v.Step.Intro == "" {
		return nil
	}
	out, err := f.render(v.Step.Intro)
	if err != nil {
		out = v.Step.Intro
	}
	return f.driver.Info(ctx, strings.TrimRight(out, "\n"))
}

// promptStep asks for every field of the step, or only for the fields in
// retry after a failed validation.
func (f *Filler) promptStep(ctx context.Context, c *wizard.Controller, v wizard.View, retry map[string]string) error {
	for _, field := range v.Step.Fields {
		msg, failed := retry[field.Name]
		if retry != nil && !failed {
			continue
		}
		value, err := f.promptField(ctx, field, v.Fields[field.Name], msg)
		if err != nil {
			return err
		}
		if err := c.UpdateField(ctx, field.Name, value); err != nil {
			return err
		}
	}

	group := v.Step.Options
	if group == nil {
		return nil
	}
	if _, failed := retry[form.OptionsField]; retry != nil && !failed {
		return nil
	}

	selected := make(map[string]bool, len(v.Options))
	var defaults []int
	for _, o := range v.Options {
		selected[o] = true
	}
	for i, choice := range group.Choices {
		if selected[choice] {
			defaults = append(defaults, i)
		}
	}
	picked, err := f.driver.MultiSelect(ctx, SelectConfig{
		Message:  group.Label,
		Options:  group.Choices,
		Defaults: defaults,
		Help:     retry[form.OptionsField],
	})
	if err != nil {
		return err
	}

	want := make(map[string]bool, len(picked))
	for _, i := range picked {
		want[group.Choices[i]] = true
	}
	for _, choice := range group.Choices {
		if want[choice] != selected[choice] {
			if _, err := c.ToggleOption(ctx, choice); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *Filler) promptField(ctx context.Context, field form.Field, current, problem string) (string, error) {
	help := field.Help
	if problem != "" {
		help = problem
	}
	label := field.Label
	if field.Required {
		label += " *"
	}

	switch field.Kind {
	case form.KindChoice:
		i, err := f.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, current),
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if i < 0 || i >= len(field.Options) {
			return current, nil
		}
		return field.Options[i], nil
	case form.KindLongText:
		return f.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current, Help: help})
	default:
		return f.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: help})
	}
}

func (f *Filler) chooseAction(ctx context.Context, v wizard.View) (string, error) {
	options := []string{ActionNext}
	if v.StepIndex == v.TotalSteps {
		options = []string{ActionSubmit}
	}
	if v.StepIndex > 1 {
		options = append(options, ActionBack)
	}
	options = append(options, ActionQuit)

	i, err := f.driver.Select(ctx, SelectConfig{Message: "What next?", Options: options})
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(options) {
		return "", fmt.Errorf("tui: no action selected")
	}
	return options[i], nil
}

func (f *Filler) showErrors(ctx context.Context, fields map[string]string) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := f.driver.Info(ctx, Warn("  - "+fields[name])); err != nil {
			return err
		}
	}
	return nil
}
