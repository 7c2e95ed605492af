package imaging_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProber succeeds only for URIs in ok and records every probe.
type fakeProber struct {
	mu     sync.Mutex
	ok     map[string]bool
	probed []string
	delay  time.Duration
}

func (p *fakeProber) Probe(ctx context.Context, uri string) error {
	p.mu.Lock()
	p.probed = append(p.probed, uri)
	ok := p.ok[uri]
	p.mu.Unlock()

	if p.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.delay):
		}
	}
	if ok {
		return nil
	}
	return errors.New("404")
}

func TestResolve_StopsAtFirstSuccess(t *testing.T) {
	prober := &fakeProber{ok: map[string]bool{"/fallback.png": true}}
	l := newLoader("/missing.png", imaging.WithFallback("/fallback.png"))

	state, err := imaging.Resolve(context.Background(), l, prober)
	require.NoError(t, err)
	assert.Equal(t, domain.LoadLoaded, state.Status)
	assert.Equal(t, 2, state.Attempt)
	assert.Equal(t, "/fallback.png", state.ResolvedSource)
	assert.Len(t, prober.probed, 3)
}

func TestResolve_AllFailAbsorbed(t *testing.T) {
	prober := &fakeProber{}
	l := newLoader("/missing.png", imaging.WithFallback("/also-missing.png"))

	state, err := imaging.Resolve(context.Background(), l, prober)
	require.NoError(t, err, "load failures are never returned")
	assert.Equal(t, domain.LoadFailed, state.Status)
	assert.Len(t, prober.probed, 4)
}

func TestResolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imaging.Resolve(ctx, newLoader("/a.png"), &fakeProber{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolver_PlaceholderOnFailure(t *testing.T) {
	var observed atomic.Int32
	r := imaging.NewResolver(&fakeProber{},
		imaging.WithResolverOrigin("https://studio.dev"),
		imaging.WithResolverClock(fixedNow),
		imaging.WithObserver(func(ctx context.Context, s domain.ImageLoadState) { observed.Add(1) }),
	)

	res, err := r.Resolve(context.Background(), imaging.Request{Source: "/a.png", Label: "Logo"})
	require.NoError(t, err)
	assert.Equal(t, domain.LoadFailed, res.State.Status)
	require.NotNil(t, res.Placeholder)
	assert.Equal(t, imaging.UnavailableLabel, res.Placeholder.Label)
	assert.Equal(t, "Logo", res.Label)
	assert.Equal(t, int32(1), observed.Load())
}

func TestResolver_TimeoutEndsFailed(t *testing.T) {
	prober := &fakeProber{ok: map[string]bool{"/slow.png": true}, delay: time.Second}
	r := imaging.NewResolver(prober, imaging.WithProbeTimeout(20*time.Millisecond))

	res, err := r.Resolve(context.Background(), imaging.Request{Source: "/slow.png"})
	require.NoError(t, err)
	assert.Equal(t, domain.LoadFailed, res.State.Status)
	assert.NotNil(t, res.Placeholder)
}

func TestResolver_ResolveAllPreservesOrder(t *testing.T) {
	prober := &fakeProber{ok: map[string]bool{"/a.png": true, "/c.png": true}}
	r := imaging.NewResolver(prober, imaging.WithConcurrency(2))

	results, err := r.ResolveAll(context.Background(), []imaging.Request{
		{Source: "/a.png"}, {Source: "/b.png"}, {Source: "/c.png"},
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, domain.LoadLoaded, results[0].State.Status)
	assert.Equal(t, domain.LoadFailed, results[1].State.Status)
	assert.Equal(t, "/c.png", results[2].State.ResolvedSource)
}
