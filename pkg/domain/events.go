package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStepEnter        EventType = "step_enter"
	EventStepLeave        EventType = "step_leave"
	EventValidationFailed EventType = "validation_failed"
	EventSubmit           EventType = "submit"
)

// SubmitOutcome classifies a submission attempt.
type SubmitOutcome string

const (
	SubmitSucceeded SubmitOutcome = "succeeded"
	SubmitFailed    SubmitOutcome = "failed"
	SubmitRejected  SubmitOutcome = "rejected" // blocked before any network call
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Key       string    `json:"key"`
}

// StepEvent represents entry or exit from a step.
type StepEvent struct {
	EventBase
	Step  int `json:"step"`
	Total int `json:"total"`
}

// ValidationEvent reports the fields that blocked a step.
type ValidationEvent struct {
	EventBase
	Step   int               `json:"step"`
	Fields map[string]string `json:"fields"`
}

// SubmitEvent reports the outcome of a submit call.
type SubmitEvent struct {
	EventBase
	Outcome  SubmitOutcome `json:"outcome"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// WizardHooks defines callbacks for wizard observability.
type WizardHooks struct {
	OnStepEnter        func(context.Context, *StepEvent)
	OnStepLeave        func(context.Context, *StepEvent)
	OnValidationFailed func(context.Context, *ValidationEvent)
	OnSubmit           func(context.Context, *SubmitEvent)
}
