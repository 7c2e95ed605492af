package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/portico/pkg/adapters/memory"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/aretw0/portico/pkg/wizard"
	"github.com/stretchr/testify/assert"
)

type discardSubmitter struct{}

func (discardSubmitter) Submit(context.Context, domain.SubmissionRecord) error { return nil }

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(form.Default(), memory.NewStore(), discardSubmitter{})
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.Open(ctx, sid)
		_ = mgr.Do(ctx, sid, func(ctx context.Context, c *wizard.Controller) error {
			return c.UpdateField(ctx, "name", "Ada")
		})
		_ = mgr.Delete(ctx, sid)
	}

	assert.Empty(t, mgr.locks, "lock entries must be released")
	assert.Empty(t, mgr.controllers, "deleted sessions must not stay cached")
}
