package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/portico/internal/logging"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/form"
	"github.com/aretw0/portico/pkg/ports"
	"github.com/aretw0/portico/pkg/wizard"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed session lock may be held.
const DefaultLockTTL = 30 * time.Second

const (
	// DefaultIdleTTL is how long an unused controller stays cached.
	DefaultIdleTTL = 30 * time.Minute
	// DefaultMaxSessions caps the number of cached controllers.
	DefaultMaxSessions = 10000
	// SubmittedRetention keeps a submitted controller around long enough for
	// follow-up reads to see the terminal phase instead of a missing session.
	SubmittedRetention = time.Minute
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// cacheEntry is a cached controller and the last time a caller used it.
type cacheEntry struct {
	ctrl     *wizard.Controller
	lastUsed time.Time
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks, and evicts
// idle or submitted controllers; evicted sessions reopen from the store.
type Manager struct {
	def       *form.Definition
	store     ports.DraftStore
	submitter ports.Submitter

	mu          sync.Mutex
	locks       map[string]*lockEntry
	controllers map[string]*cacheEntry
	lastSweep   time.Time

	locker      ports.DistributedLocker
	lockTTL     time.Duration
	idleTTL     time.Duration
	maxSessions int
	now         func() time.Time
	logger      *slog.Logger
	ctrlOpts    []wizard.Option
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the lease of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithIdleTTL sets how long an unused controller stays cached.
func WithIdleTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.idleTTL = ttl
		}
	}
}

// WithMaxSessions caps the number of cached controllers. The least recently
// used are evicted first.
func WithMaxSessions(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxSessions = n
		}
	}
}

// WithClock overrides the time source used for cache eviction.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithControllerOptions are applied to every controller the Manager opens.
func WithControllerOptions(opts ...wizard.Option) Option {
	return func(m *Manager) {
		m.ctrlOpts = append(m.ctrlOpts, opts...)
	}
}

// NewManager creates a new session Manager.
func NewManager(def *form.Definition, store ports.DraftStore, submitter ports.Submitter, opts ...Option) *Manager {
	m := &Manager{
		def:         def,
		store:       store,
		submitter:   submitter,
		locks:       make(map[string]*lockEntry),
		controllers: make(map[string]*cacheEntry),
		lockTTL:     DefaultLockTTL,
		idleTTL:     DefaultIdleTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		logger:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the draft key of a session.
func Key(sessionID string) string {
	return wizard.DraftKey + ":" + sessionID
}

// SessionID extracts the session ID from a draft key, if it is one.
func SessionID(key string) (string, bool) {
	return strings.CutPrefix(key, wizard.DraftKey+":")
}

// Definition returns the form served by every session.
func (m *Manager) Definition() *form.Definition { return m.def }

// Store returns the underlying draft store.
func (m *Manager) Store() ports.DraftStore { return m.store }

// Start opens a new session with a random ID.
func (m *Manager) Start(ctx context.Context) (string, *wizard.Controller, error) {
	id := uuid.NewString()
	var ctrl *wizard.Controller
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		ctrl = m.open(ctx, id)
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	return id, ctrl, nil
}

// Open returns the session's controller, creating or restoring it as needed.
func (m *Manager) Open(ctx context.Context, sessionID string) (*wizard.Controller, error) {
	var ctrl *wizard.Controller
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		ctrl = m.open(ctx, sessionID)
		return nil
	})
	return ctrl, err
}

// Do runs fn with the session's controller while holding the session lock.
// Unknown sessions, with no cached controller and no stored draft, return
// domain.ErrSessionNotFound.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(context.Context, *wizard.Controller) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		ctrl, err := m.lookup(ctx, sessionID)
		if err != nil {
			return err
		}
		return fn(ctx, ctrl)
	})
}

// Submit looks the controller up under the session lock, then submits outside
// it so that a concurrent Submit is rejected by the controller instead of queueing.
func (m *Manager) Submit(ctx context.Context, sessionID string) (*wizard.Controller, error) {
	var ctrl *wizard.Controller
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		ctrl, err = m.lookup(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ctrl, ctrl.Submit(ctx)
}

// Forget drops the cached controller but keeps the stored draft.
func (m *Manager) Forget(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.controllers, sessionID)
}

// Delete discards the session and its stored draft.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.Forget(sessionID)
		return m.store.Delete(ctx, Key(sessionID))
	})
}

// List returns the IDs of sessions with a stored draft or a live controller.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	keys, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, k := range keys {
		if id, ok := SessionID(k); ok {
			seen[id] = struct{}{}
		}
	}
	m.mu.Lock()
	for id := range m.controllers {
		seen[id] = struct{}{}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Active reports how many controllers are cached.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.controllers)
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// open returns the cached controller or builds one. Caller holds the session lock.
func (m *Manager) open(ctx context.Context, sessionID string) *wizard.Controller {
	if ctrl := m.cached(sessionID); ctrl != nil {
		return ctrl
	}

	opts := append([]wizard.Option{
		wizard.WithKey(Key(sessionID)),
		wizard.WithLogger(m.logger.With("session_id", sessionID)),
	}, m.ctrlOpts...)
	ctrl := wizard.New(m.def, m.store, m.submitter, opts...)
	restored := ctrl.Initialize(ctx)
	m.logger.Debug("Session opened", "session_id", sessionID, "restored", restored)

	m.mu.Lock()
	m.controllers[sessionID] = &cacheEntry{ctrl: ctrl, lastUsed: m.now()}
	m.sweepLocked()
	m.mu.Unlock()
	return ctrl
}

// lookup finds a live controller, reopening it from the store after a restart.
// With a distributed locker the cached draft is refreshed, since another replica
// may have written it. Caller holds the session lock.
func (m *Manager) lookup(ctx context.Context, sessionID string) (*wizard.Controller, error) {
	if ctrl := m.cached(sessionID); ctrl != nil {
		if m.locker != nil {
			if err := ctrl.Refresh(ctx); err != nil {
				return nil, err
			}
		}
		return ctrl, nil
	}

	_, err := m.store.Get(ctx, Key(sessionID))
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		m.logger.Warn("Reopening session with unreadable draft", "session_id", sessionID, "err", err)
	}
	return m.open(ctx, sessionID), nil
}

func (m *Manager) cached(sessionID string) *wizard.Controller {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.controllers[sessionID]
	if !ok {
		return nil
	}
	entry.lastUsed = m.now()
	return entry.ctrl
}

// Sweep evicts idle and submitted controllers and trims the cache to its cap.
// Stored drafts are untouched.
func (m *Manager) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastSweep = time.Time{}
	m.sweepLocked()
}

// sweepLocked runs at most once per tenth of the idle TTL unless the cache is
// over its cap. Sessions whose lock is held or whose submission is in flight
// are never evicted. Caller holds m.mu.
func (m *Manager) sweepLocked() {
	now := m.now()
	if len(m.controllers) <= m.maxSessions && now.Sub(m.lastSweep) < m.idleTTL/10 {
		return
	}
	m.lastSweep = now

	var candidates []string
	for id, entry := range m.controllers {
		if _, busy := m.locks[id]; busy {
			continue
		}
		ttl := m.idleTTL
		switch entry.ctrl.Phase() {
		case domain.PhaseSubmitting:
			continue
		case domain.PhaseSubmitted:
			ttl = min(ttl, SubmittedRetention)
		}
		if now.Sub(entry.lastUsed) >= ttl {
			delete(m.controllers, id)
			continue
		}
		candidates = append(candidates, id)
	}

	excess := len(m.controllers) - m.maxSessions
	if excess <= 0 {
		return
	}
	slices.SortFunc(candidates, func(a, b string) int {
		return m.controllers[a].lastUsed.Compare(m.controllers[b].lastUsed)
	})
	for _, id := range candidates[:min(excess, len(candidates))] {
		delete(m.controllers, id)
	}
	m.logger.Debug("Evicted least recently used sessions", "count", min(excess, len(candidates)))
}
