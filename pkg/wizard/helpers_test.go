package wizard_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aretw0/portico/pkg/adapters/memory"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/aretw0/portico/pkg/wizard"
	"github.com/stretchr/testify/require"
)

const validDescription = "A faster, friendlier site for our bakery."

// fakeSubmitter records every call and answers from a queue of errors.
type fakeSubmitter struct {
	mu      sync.Mutex
	records []domain.SubmissionRecord
	errs    []error
	ctxErrs []error

	// When set, Submit blocks until release is closed.
	entered chan struct{}
	release chan struct{}
}

func (f *fakeSubmitter) Submit(ctx context.Context, record domain.SubmissionRecord) error {
	if f.entered != nil {
		close(f.entered)
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, record)
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func (f *fakeSubmitter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

// flakyStore fails writes or reads on demand.
type flakyStore struct {
	*memory.Store
	failSet bool
	failGet bool
}

var errDisk = errors.New("disk full")

func (s *flakyStore) Set(ctx context.Context, key string, d *domain.Draft) error {
	if s.failSet {
		return errDisk
	}
	return s.Store.Set(ctx, key, d)
}

func (s *flakyStore) Get(ctx context.Context, key string) (*domain.Draft, error) {
	if s.failGet {
		return nil, errDisk
	}
	return s.Store.Get(ctx, key)
}

func newController(t *testing.T, store *memory.Store, sub *fakeSubmitter, opts ...wizard.Option) *wizard.Controller {
	t.Helper()
	c := wizard.New(form.Default(), store, sub, opts...)
	c.Initialize(context.Background())
	return c
}

func fillStep1(t *testing.T, c *wizard.Controller) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, c.UpdateField(ctx, "name", "Ada Lovelace"))
	require.NoError(t, c.UpdateField(ctx, "email", "ada@example.com"))
}

func fillStep2(t *testing.T, c *wizard.Controller) {
	t.Helper()
	require.NoError(t, c.UpdateField(context.Background(), "project_type", "Redesign"))
}

func fillStep3(t *testing.T, c *wizard.Controller) {
	t.Helper()
	ctx := context.Background()
	_, err := c.ToggleOption(ctx, "More leads")
	require.NoError(t, err)
	require.NoError(t, c.UpdateField(ctx, "budget", "$2k - $5k"))
	require.NoError(t, c.UpdateField(ctx, "timeline", "ASAP"))
}

// advanceToFinal fills steps 1-3 and stops on step 4.
func advanceToFinal(t *testing.T, c *wizard.Controller) {
	t.Helper()
	ctx := context.Background()
	fillStep1(t, c)
	require.NoError(t, c.GoNext(ctx))
	fillStep2(t, c)
	require.NoError(t, c.GoNext(ctx))
	fillStep3(t, c)
	require.NoError(t, c.GoNext(ctx))
	require.Equal(t, 4, c.View().StepIndex)
}
