package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDraftNotFound is returned when no draft exists under a key.
var ErrDraftNotFound = errors.New("draft not found")

// ErrSessionNotFound is returned when a wizard session is not open.
var ErrSessionNotFound = errors.New("session not found")

// ErrNotFinalStep is returned when Submit is called before the last step.
var ErrNotFinalStep = errors.New("submit is only allowed on the final step")

// ErrSubmitInFlight is returned when Submit is called while a submission is running.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// ErrAlreadySubmitted is returned for any mutation after a successful submission.
var ErrAlreadySubmitted = errors.New("form already submitted")

// ErrFormLocked is returned for field mutations while a submission is in flight.
var ErrFormLocked = errors.New("form is locked while submitting")

// ErrUnknownField is returned when a field or option name is not part of the form.
var ErrUnknownField = errors.New("unknown field")

// ErrInvalidInput is returned for values that cannot be stored at all
// (oversized or malformed), as opposed to values that fail step validation.
var ErrInvalidInput = errors.New("invalid input")

// ValidationError carries the per-field messages that blocked a step.
type ValidationError struct {
	Step   int
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("step %d has invalid fields: %s", e.Step, strings.Join(names, ", "))
}

// SubmissionError describes a failed delivery to the form backend.
// Status is 0 for network-level failures.
type SubmissionError struct {
	Status       int
	Message      string
	ContactEmail string
	Err          error
}

func (e *SubmissionError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("submission rejected with status %d: %s", e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("submission failed: %v", e.Err)
	}
	return "submission failed: " + e.Message
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the visitor, with a contact channel that
// does not depend on the broken mechanism.
func (e *SubmissionError) UserMessage() string {
	msg := "Sorry, your request could not be sent. Please try again."
	if e.ContactEmail != "" {
		msg += " You can also email me directly at " + e.ContactEmail + "."
	}
	return msg
}
