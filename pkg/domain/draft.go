package domain

import (
	"maps"
	"slices"
	"time"
)

// Draft holds the in-progress answers of a multi-step form.
// It is the unit persisted by a DraftStore.
type Draft struct {
	// Fields is the union of every step's named answers.
	Fields map[string]string `json:"fields"`

	// StepIndex is the 1-based step the visitor is on.
	StepIndex int `json:"step_index"`

	// SelectedOptions is a set of multi-select answers, kept sorted and unique.
	SelectedOptions []string `json:"selected_options"`

	// UpdatedAt is the time of the last mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDraft creates an empty draft positioned on the first step.
func NewDraft() *Draft {
	return &Draft{
		Fields:          make(map[string]string),
		StepIndex:       1,
		SelectedOptions: []string{},
	}
}

// Set merges a field value (last write wins).
func (d *Draft) Set(name, value string) {
	if d.Fields == nil {
		d.Fields = make(map[string]string)
	}
	d.Fields[name] = value
}

// Get returns a field value or "" when unset.
func (d *Draft) Get(name string) string {
	return d.Fields[name]
}

// HasOption reports whether name is in the selected set.
func (d *Draft) HasOption(name string) bool {
	_, found := slices.BinarySearch(d.SelectedOptions, name)
	return found
}

// ToggleOption adds name to the selected set, or removes it if present.
// It returns true when the option is selected after the call.
func (d *Draft) ToggleOption(name string) bool {
	i, found := slices.BinarySearch(d.SelectedOptions, name)
	if found {
		d.SelectedOptions = slices.Delete(d.SelectedOptions, i, i+1)
		return false
	}
	d.SelectedOptions = slices.Insert(d.SelectedOptions, i, name)
	return true
}

// Normalize repairs a draft restored from storage: nil maps, unsorted or
// duplicated options and out-of-range steps.
func (d *Draft) Normalize(totalSteps int) {
	if d.Fields == nil {
		d.Fields = make(map[string]string)
	}
	if d.SelectedOptions == nil {
		d.SelectedOptions = []string{}
	}
	slices.Sort(d.SelectedOptions)
	d.SelectedOptions = slices.Compact(d.SelectedOptions)

	if d.StepIndex < 1 {
		d.StepIndex = 1
	}
	if totalSteps > 0 && d.StepIndex > totalSteps {
		d.StepIndex = totalSteps
	}
}

// Clone returns a deep copy so callers cannot mutate stored drafts by pointer.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := *d
	out.Fields = maps.Clone(d.Fields)
	if out.Fields == nil {
		out.Fields = make(map[string]string)
	}
	out.SelectedOptions = slices.Clone(d.SelectedOptions)
	if out.SelectedOptions == nil {
		out.SelectedOptions = []string{}
	}
	return &out
}
