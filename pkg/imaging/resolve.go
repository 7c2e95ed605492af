package imaging

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/ports"
	"golang.org/x/sync/errgroup"
)

// Request describes one image to resolve.
type Request struct {
	Source   string `json:"src"`
	Fallback string `json:"fallback,omitempty"`
	Label    string `json:"label,omitempty"`
	Priority bool   `json:"priority,omitempty"`
}

// Result is the terminal outcome of a cascade.
type Result struct {
	State       domain.ImageLoadState `json:"state"`
	Label       string                `json:"label,omitempty"`
	Placeholder *Placeholder          `json:"placeholder,omitempty"`
}

// Observer is notified of every terminal cascade.
type Observer func(ctx context.Context, state domain.ImageLoadState)

// Resolve drives l against prober until it reaches a terminal state.
// Load failures are absorbed into the state; only context errors are returned.
func Resolve(ctx context.Context, l *Loader, prober ports.AssetProber) (domain.ImageLoadState, error) {
	for !l.Terminal() {
		if err := ctx.Err(); err != nil {
			return l.State(), err
		}
		if err := prober.Probe(ctx, l.State().ResolvedSource); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return l.State(), ctxErr
			}
			l.Fail()
			continue
		}
		l.Succeed()
	}
	return l.State(), nil
}

// Resolver resolves image requests with shared configuration.
type Resolver struct {
	prober      ports.AssetProber
	origin      string
	timeout     time.Duration
	concurrency int
	logger      *slog.Logger
	observer    Observer
	now         func() time.Time
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverOrigin sets the origin used for the absolute-URL attempt.
func WithResolverOrigin(origin string) ResolverOption {
	return func(r *Resolver) { r.origin = origin }
}

// WithProbeTimeout bounds a whole cascade.
func WithProbeTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) { r.timeout = d }
}

// WithConcurrency bounds ResolveAll (default 4).
func WithConcurrency(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithResolverLogger sets the logger.
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.logger = logger }
}

// WithObserver registers a callback for terminal states (e.g. metrics).
func WithObserver(o Observer) ResolverOption {
	return func(r *Resolver) { r.observer = o }
}

// WithResolverClock overrides the cache-bust clock.
func WithResolverClock(now func() time.Time) ResolverOption {
	return func(r *Resolver) { r.now = now }
}

// NewResolver creates a Resolver probing through prober.
func NewResolver(prober ports.AssetProber, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		prober:      prober,
		concurrency: 4,
		logger:      logging.NewNop(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Loader builds a Loader for req with the resolver's configuration.
func (r *Resolver) Loader(req Request) *Loader {
	return NewLoader(req.Source,
		WithFallback(req.Fallback),
		WithOrigin(r.origin),
		WithClock(r.now),
		WithLabel(req.Label),
		WithPriority(req.Priority),
	)
}

// Resolve runs one cascade. A timeout ends the cascade as Failed rather than
// as an error, so callers always get a renderable result.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Result, error) {
	l := r.Loader(req)

	probeCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		probeCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	state, err := Resolve(probeCtx, l, r.prober)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		// Cascade timed out: exhaust it so the result is terminal.
		for !l.Terminal() {
			l.Fail()
		}
		state = l.State()
		r.logger.Warn("Image cascade timed out", "src", req.Source, "timeout", r.timeout)
	}

	if state.Status == domain.LoadFailed {
		r.logger.Info("Image unavailable after all strategies", "src", req.Source, "fallback", req.Fallback)
	} else if state.Attempt > 0 {
		r.logger.Debug("Image recovered", "src", req.Source, "attempt", state.Attempt, "resolved", state.ResolvedSource)
	}
	if r.observer != nil {
		r.observer(ctx, state)
	}

	res := Result{State: state, Label: l.Label()}
	if state.Status == domain.LoadFailed {
		p := l.Placeholder()
		res.Placeholder = &p
	}
	return res, nil
}

// ResolveAll resolves reqs with bounded concurrency, preserving order.
func (r *Resolver) ResolveAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := r.Resolve(gCtx, req)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
