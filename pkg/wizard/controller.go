package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/aretw0/portico/pkg/ports"
)

// DraftKey is the fixed storage key of the lead wizard's draft.
// Server deployments scope it per visitor session.
const DraftKey = "portico:lead-draft"

// Controller manages one visitor's pass through a form.
// It is safe for concurrent use.
type Controller struct {
	def          *form.Definition
	store        ports.DraftStore
	submitter    ports.Submitter
	key          string
	logger       *slog.Logger
	hooks        domain.WizardHooks
	now          func() time.Time
	contactEmail string

	mu        sync.Mutex
	draft     *domain.Draft
	errors    map[string]string
	phase     domain.Phase
	submitErr *domain.SubmissionError
}

// Option configures the Controller.
type Option func(*Controller)

// WithKey sets the storage key of the draft.
func WithKey(key string) Option {
	return func(c *Controller) {
		c.key = key
	}
}

// WithLogger configures a logger for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithHooks registers observability hooks. Hooks run synchronously, some while
// the controller is locked, and must not call back into it.
func WithHooks(hooks domain.WizardHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithContactEmail sets the direct address shown when submission fails.
func WithContactEmail(email string) Option {
	return func(c *Controller) {
		c.contactEmail = email
	}
}

// New creates a Controller. Call Initialize before use.
func New(def *form.Definition, store ports.DraftStore, submitter ports.Submitter, opts ...Option) *Controller {
	c := &Controller{
		def:       def,
		store:     store,
		submitter: submitter,
		key:       DraftKey,
		logger:    logging.NewNop(),
		now:       time.Now,
		draft:     domain.NewDraft(),
		errors:    map[string]string{},
		phase:     domain.PhaseEditing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the storage key of the draft.
func (c *Controller) Key() string { return c.key }

// Definition returns the form being filled.
func (c *Controller) Definition() *form.Definition { return c.def }

// Initialize restores a stored draft, or starts empty on step 1.
// Missing, unreadable or corrupt drafts are absorbed; it reports whether a draft was restored.
func (c *Controller) Initialize(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errors = map[string]string{}
	c.phase = domain.PhaseEditing
	c.submitErr = nil

	stored, err := c.store.Get(ctx, c.key)
	if err != nil {
		if !errors.Is(err, domain.ErrDraftNotFound) {
			c.logger.Warn("Discarding unreadable draft", "key", c.key, "err", err)
		}
		c.draft = domain.NewDraft()
		c.fireStepEnter(ctx)
		return false
	}

	stored.Normalize(c.def.TotalSteps())
	c.draft = stored
	c.logger.Debug("Draft restored", "key", c.key, "step", stored.StepIndex)
	c.fireStepEnter(ctx)
	return true
}

// Refresh reloads the draft from the store while the form is still editable,
// picking up writes made by another replica. Errors leave the in-memory draft.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != domain.PhaseEditing {
		return nil
	}
	stored, err := c.store.Get(ctx, c.key)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to refresh draft: %w", err)
	}
	stored.Normalize(c.def.TotalSteps())
	c.draft = stored
	return nil
}

// UpdateField merges a value into the draft and persists it. It does not
// validate; markup and control characters are stripped and oversized values
// rejected, so the stored draft is what validation and submission see.
func (c *Controller) UpdateField(ctx context.Context, name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if _, ok := c.def.Field(name); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownField, name)
	}
	value, err := form.CleanInput(value)
	if err != nil {
		return fmt.Errorf("field %q: %w", name, err)
	}
	value = form.StripMarkup(value)

	c.draft.Set(name, value)
	return c.persist(ctx)
}

// ToggleOption adds or removes a multi-select answer and persists the draft.
// It returns whether the option is selected afterwards.
func (c *Controller) ToggleOption(ctx context.Context, name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return c.draft.HasOption(name), err
	}
	if !c.def.HasOption(name) {
		return false, fmt.Errorf("%w: option %q", domain.ErrUnknownField, name)
	}

	selected := c.draft.ToggleOption(name)
	return selected, c.persist(ctx)
}

// GoNext validates the current step and advances when it is valid.
// It returns *domain.ValidationError and stays put when the step is invalid.
// On the last step it only re-validates.
func (c *Controller) GoNext(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}
	if verr := c.validateCurrent(ctx); verr != nil {
		return verr
	}
	if c.draft.StepIndex >= c.def.TotalSteps() {
		return nil
	}

	c.fireStepLeave(ctx)
	c.draft.StepIndex++
	c.fireStepEnter(ctx)
	return c.persist(ctx)
}

// GoBack moves to the previous step without validating and clears errors.
func (c *Controller) GoBack(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkMutable(); err != nil {
		return err
	}

	c.errors = map[string]string{}
	if c.draft.StepIndex <= 1 {
		return nil
	}

	c.fireStepLeave(ctx)
	c.draft.StepIndex--
	c.fireStepEnter(ctx)
	return c.persist(ctx)
}

// Submit delivers the draft to the form backend.
//
// It rejects calls before the final step, while another submission is in flight,
// and after a successful submission, without issuing any network call. The request
// is detached from ctx cancellation so a visitor leaving mid-submit does not abort it.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.phase == domain.PhaseSubmitted:
		c.mu.Unlock()
		return domain.ErrAlreadySubmitted
	case c.phase == domain.PhaseSubmitting:
		c.mu.Unlock()
		c.fireSubmit(ctx, domain.SubmitRejected, 0, domain.ErrSubmitInFlight)
		return domain.ErrSubmitInFlight
	case c.draft.StepIndex != c.def.TotalSteps():
		c.mu.Unlock()
		c.fireSubmit(ctx, domain.SubmitRejected, 0, domain.ErrNotFinalStep)
		return domain.ErrNotFinalStep
	}
	if verr := c.validateCurrent(ctx); verr != nil {
		c.mu.Unlock()
		c.fireSubmit(ctx, domain.SubmitRejected, 0, verr)
		return verr
	}

	// Restored drafts may predate cleaning; check what will actually be sent.
	record := c.buildRecord()
	if verr := c.validateRecord(ctx, record); verr != nil {
		c.mu.Unlock()
		c.fireSubmit(ctx, domain.SubmitRejected, 0, verr)
		return verr
	}

	c.phase = domain.PhaseSubmitting
	c.submitErr = nil
	c.mu.Unlock()

	start := c.now()
	err := c.submitter.Submit(context.WithoutCancel(ctx), record)
	elapsed := c.now().Sub(start)

	c.mu.Lock()
	if err != nil {
		c.phase = domain.PhaseEditing
		c.submitErr = c.asSubmissionError(err)
		c.mu.Unlock()
		c.logger.Warn("Submission failed, draft kept", "key", c.key, "err", err)
		c.fireSubmit(ctx, domain.SubmitFailed, elapsed, err)
		return c.submitErr
	}

	c.phase = domain.PhaseSubmitted
	c.errors = map[string]string{}
	if delErr := c.store.Delete(context.WithoutCancel(ctx), c.key); delErr != nil {
		c.logger.Error("Submitted but failed to clear draft", "key", c.key, "err", delErr)
	}
	c.mu.Unlock()

	c.logger.Info("Lead submitted", "key", c.key, "form_type", record.FormType, "duration", elapsed)
	c.fireSubmit(ctx, domain.SubmitSucceeded, elapsed, nil)
	return nil
}

// View is a read-only snapshot of the controller.
type View struct {
	Key         string            `json:"key"`
	FormID      string            `json:"form_id"`
	Step        form.Step         `json:"step"`
	StepIndex   int               `json:"step_index"`
	TotalSteps  int               `json:"total_steps"`
	Fields      map[string]string `json:"fields"`
	Options     []string          `json:"selected_options"`
	Errors      map[string]string `json:"errors,omitempty"`
	Phase       domain.Phase      `json:"phase"`
	SubmitError string            `json:"submit_error,omitempty"`
}

// View returns a snapshot safe to serialise or hand to another goroutine.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	step, _ := c.def.Step(c.draft.StepIndex)
	v := View{
		Key:        c.key,
		FormID:     c.def.ID,
		Step:       step,
		StepIndex:  c.draft.StepIndex,
		TotalSteps: c.def.TotalSteps(),
		Fields:     maps.Clone(c.draft.Fields),
		Options:    append([]string{}, c.draft.SelectedOptions...),
		Errors:     maps.Clone(c.errors),
		Phase:      c.phase,
	}
	if c.submitErr != nil {
		v.SubmitError = c.submitErr.UserMessage()
	}
	return v
}

// Draft returns a copy of the in-memory draft.
func (c *Controller) Draft() *domain.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Clone()
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() domain.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Errors returns the current step's validation messages.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.errors)
}

// Internals (caller holds c.mu)

func (c *Controller) checkMutable() error {
	switch c.phase {
	case domain.PhaseSubmitted:
		return domain.ErrAlreadySubmitted
	case domain.PhaseSubmitting:
		return domain.ErrFormLocked
	}
	return nil
}

func (c *Controller) validateCurrent(ctx context.Context) *domain.ValidationError {
	step, err := c.def.Step(c.draft.StepIndex)
	if err != nil {
		return &domain.ValidationError{Step: c.draft.StepIndex, Fields: map[string]string{"step": err.Error()}}
	}
	errs := step.Validate(c.draft)
	if len(errs) == 0 {
		c.errors = map[string]string{}
		return nil
	}

	c.errors = errs
	if c.hooks.OnValidationFailed != nil {
		c.hooks.OnValidationFailed(ctx, &domain.ValidationEvent{
			EventBase: c.event(domain.EventValidationFailed),
			Step:      step.Index,
			Fields:    maps.Clone(errs),
		})
	}
	return &domain.ValidationError{Step: step.Index, Fields: maps.Clone(errs)}
}

func (c *Controller) persist(ctx context.Context) error {
	c.draft.UpdatedAt = c.now()
	if err := c.store.Set(ctx, c.key, c.draft.Clone()); err != nil {
		c.logger.Error("Failed to persist draft", "key", c.key, "err", err)
		return fmt.Errorf("failed to persist draft: %w", err)
	}
	return nil
}

func (c *Controller) buildRecord() domain.SubmissionRecord {
	fields := c.def.Sanitize(c.draft.Fields)
	record := domain.RecordFromDraft(c.draft, c.def.FormType, c.now())
	record.Fields = fields
	record.ReplyTo = c.def.ReplyTo(fields)
	record.Subject = c.def.SubjectFor(fields)
	return record
}

func (c *Controller) validateRecord(ctx context.Context, record domain.SubmissionRecord) *domain.ValidationError {
	sent := c.draft.Clone()
	sent.Fields = record.Fields
	idx, errs := c.def.FirstInvalid(sent)
	if idx == 0 {
		return nil
	}
	if idx == c.draft.StepIndex {
		c.errors = maps.Clone(errs)
	}
	if c.hooks.OnValidationFailed != nil {
		c.hooks.OnValidationFailed(ctx, &domain.ValidationEvent{
			EventBase: c.event(domain.EventValidationFailed),
			Step:      idx,
			Fields:    maps.Clone(errs),
		})
	}
	return &domain.ValidationError{Step: idx, Fields: errs}
}

func (c *Controller) asSubmissionError(err error) *domain.SubmissionError {
	var serr *domain.SubmissionError
	if errors.As(err, &serr) {
		out := *serr
		if out.ContactEmail == "" {
			out.ContactEmail = c.contactEmail
		}
		return &out
	}
	return &domain.SubmissionError{Message: err.Error(), ContactEmail: c.contactEmail, Err: err}
}

func (c *Controller) event(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: c.now(), Type: t, Key: c.key}
}

func (c *Controller) fireStepEnter(ctx context.Context) {
	if c.hooks.OnStepEnter != nil {
		c.hooks.OnStepEnter(ctx, &domain.StepEvent{EventBase: c.event(domain.EventStepEnter), Step: c.draft.StepIndex, Total: c.def.TotalSteps()})
	}
}

func (c *Controller) fireStepLeave(ctx context.Context) {
	if c.hooks.OnStepLeave != nil {
		c.hooks.OnStepLeave(ctx, &domain.StepEvent{EventBase: c.event(domain.EventStepLeave), Step: c.draft.StepIndex, Total: c.def.TotalSteps()})
	}
}

func (c *Controller) fireSubmit(ctx context.Context, outcome domain.SubmitOutcome, d time.Duration, err error) {
	if c.hooks.OnSubmit != nil {
		c.hooks.OnSubmit(ctx, &domain.SubmitEvent{EventBase: c.event(domain.EventSubmit), Outcome: outcome, Duration: d, Err: err})
	}
}
