/*
Package wizard drives a visitor through the steps of a multi-step form.

A Controller owns one draft. It gates forward progress on the current step's
validation, writes every mutation to a DraftStore so answers survive a reload,
and performs exactly one submission attempt per Submit call.

	ctrl := wizard.New(form.Default(), store, submitter, wizard.WithKey(wizard.DraftKey+":"+sessionID))
	ctrl.Initialize(ctx)
	_ = ctrl.UpdateField(ctx, "email", "ada@example.com")
	if err := ctrl.GoNext(ctx); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			// show verr.Fields next to the inputs
		}
	}

# Submission

Submit is only accepted on the final step, re-validates it, and rejects re-entrant
calls while a submission is in flight. On success the stored draft is deleted and the
controller becomes read-only; on failure the draft is kept and Submit may be called again.
No automatic retry is ever performed.
*/
package wizard
