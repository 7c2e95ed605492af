package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestSubmissionRecord_Payload(t *testing.T) {
	d := domain.NewDraft()
	d.Set("name", "Ada")
	d.Set("form_type", "spoofed")
	d.ToggleOption("seo")

	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	rec := domain.RecordFromDraft(d, "lead-qualification", at)
	rec.ReplyTo = "ada@example.com"
	rec.Subject = "New project inquiry"

	payload := rec.Payload()
	assert.Equal(t, "Ada", payload["name"])
	assert.Equal(t, "lead-qualification", payload[domain.PayloadFormType])
	assert.Equal(t, "2026-10-19T12:00:00Z", payload[domain.PayloadSubmittedAt])
	assert.Equal(t, []string{"seo"}, payload[domain.PayloadOptions])
	assert.Equal(t, "ada@example.com", payload[domain.PayloadReplyTo])
	assert.Equal(t, "New project inquiry", payload[domain.PayloadSubject])

	// The record must not alias the draft.
	d.Set("name", "Grace")
	assert.Equal(t, "Ada", rec.Fields["name"])
}

func TestSubmissionError_UserMessage(t *testing.T) {
	err := &domain.SubmissionError{Status: 500, Message: "boom", ContactEmail: "hello@studio.dev"}
	assert.Contains(t, err.UserMessage(), "hello@studio.dev")
	assert.Contains(t, err.Error(), "500")

	netErr := errors.New("dial tcp: refused")
	wrapped := &domain.SubmissionError{Err: netErr}
	assert.ErrorIs(t, wrapped, netErr)
	assert.NotContains(t, wrapped.UserMessage(), "email me")
}

func TestValidationError_ListsFieldsSorted(t *testing.T) {
	err := &domain.ValidationError{Step: 1, Fields: map[string]string{"email": "x", "name": "y"}}
	assert.Equal(t, "step 1 has invalid fields: email, name", err.Error())
}
