package domain

import (
	"maps"
	"time"
)

// Keys added to the flattened payload on top of the form's own fields.
const (
	PayloadFormType    = "form_type"
	PayloadSubmittedAt = "submitted_at"
	PayloadOptions     = "selected_options"
	PayloadReplyTo     = "_replyto"
	PayloadSubject     = "_subject"
)

// SubmissionRecord is the flattened draft sent to the form backend.
// It is not retained locally after a successful send.
type SubmissionRecord struct {
	FormType        string
	SubmittedAt     time.Time
	Fields          map[string]string
	SelectedOptions []string
	ReplyTo         string
	Subject         string
}

// Payload flattens the record into the JSON object posted to the endpoint.
// Metadata keys win over form fields with the same name.
func (r SubmissionRecord) Payload() map[string]any {
	out := make(map[string]any, len(r.Fields)+5)
	for k, v := range r.Fields {
		out[k] = v
	}
	options := r.SelectedOptions
	if options == nil {
		options = []string{}
	}
	out[PayloadOptions] = options
	out[PayloadFormType] = r.FormType
	out[PayloadSubmittedAt] = r.SubmittedAt.UTC().Format(time.RFC3339)
	if r.ReplyTo != "" {
		out[PayloadReplyTo] = r.ReplyTo
	}
	if r.Subject != "" {
		out[PayloadSubject] = r.Subject
	}
	return out
}

// RecordFromDraft flattens a draft. Fields are copied, never aliased.
func RecordFromDraft(d *Draft, formType string, at time.Time) SubmissionRecord {
	return SubmissionRecord{
		FormType:        formType,
		SubmittedAt:     at,
		Fields:          maps.Clone(d.Fields),
		SelectedOptions: append([]string(nil), d.SelectedOptions...),
	}
}
