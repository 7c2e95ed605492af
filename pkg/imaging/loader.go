// Package imaging implements the robust image-loading cascade.
//
// A Loader walks a fixed sequence of remediation strategies for one image:
// the primary URI, a cache-busted retry, a designated fallback, and finally the
// primary resolved against the site origin. Failure is never surfaced as an error;
// exhausting the cascade ends in the Failed state with a renderable placeholder.
package imaging

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/portico/pkg/domain"
)

// CacheBustParam is the query parameter appended on the first retry.
const CacheBustParam = "_cb"

// Placeholder is what a layout renders instead of an image after the cascade fails.
type Placeholder struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Alt   string `json:"alt,omitempty"`
}

// UnavailableLabel is the fixed text of the failure placeholder.
const UnavailableLabel = "Image unavailable"

// Loader is the state machine for one image reference.
// It is not safe for concurrent use.
type Loader struct {
	state    domain.ImageLoadState
	origin   *url.URL
	now      func() time.Time
	label    string
	priority bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithFallback sets the alternate source tried on the third attempt.
func WithFallback(src string) Option {
	return func(l *Loader) {
		l.state.FallbackSource = strings.TrimSpace(src)
	}
}

// WithOrigin sets the origin used to force an absolute URL on the last attempt.
// Invalid origins are ignored.
func WithOrigin(origin string) Option {
	return func(l *Loader) {
		if u, err := url.Parse(origin); err == nil && u.IsAbs() {
			l.origin = u
		}
	}
}

// WithClock overrides the cache-bust token source.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		l.now = now
	}
}

// WithLabel sets the accessibility text.
func WithLabel(label string) Option {
	return func(l *Loader) {
		l.label = label
	}
}

// WithPriority marks the image for immediate loading.
func WithPriority(priority bool) Option {
	return func(l *Loader) {
		l.priority = priority
	}
}

// NewLoader starts a cascade at attempt 0 for primary.
func NewLoader(primary string, opts ...Option) *Loader {
	l := &Loader{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	l.state.RequestedSource = primary
	l.state.ResolvedSource = primary
	l.state.Status = domain.LoadLoading
	return l
}

// Reset returns a fresh Loader for a new primary source, inheriting the
// receiver's options unless overridden by opts.
// The receiver is left untouched, so a terminal state is never mutated in place.
func (l *Loader) Reset(primary string, opts ...Option) *Loader {
	inherited := []Option{
		WithFallback(l.state.FallbackSource),
		func(n *Loader) {
			n.origin = l.origin
			n.now = l.now
			n.label = l.label
			n.priority = l.priority
		},
	}
	return NewLoader(primary, append(inherited, opts...)...)
}

// State returns a snapshot of the cascade.
func (l *Loader) State() domain.ImageLoadState {
	return l.state
}

// Label returns the accessibility text.
func (l *Loader) Label() string { return l.label }

// Priority reports whether the image should load immediately.
func (l *Loader) Priority() bool { return l.priority }

// Terminal reports whether the cascade has finished.
func (l *Loader) Terminal() bool {
	return l.state.Status.Terminal()
}

// Succeed records a successful load of the current source.
func (l *Loader) Succeed() domain.ImageLoadState {
	if l.Terminal() {
		return l.state
	}
	l.state.Status = domain.LoadLoaded
	return l.state
}

// Fail records a failed load of the current source and advances the cascade.
func (l *Loader) Fail() domain.ImageLoadState {
	if l.Terminal() {
		return l.state
	}

	primary := l.state.RequestedSource
	switch l.state.Attempt {
	case 0:
		l.state.Attempt = 1
		l.state.ResolvedSource = l.cacheBusted(primary)
	case 1:
		if l.state.FallbackSource != "" {
			l.state.Attempt = 2
			l.state.ResolvedSource = l.state.FallbackSource
		} else {
			l.state.Attempt = 3
			l.state.ResolvedSource = l.absolute(primary)
		}
	case 2:
		l.state.Attempt = 3
		l.state.ResolvedSource = l.absolute(primary)
	default:
		l.state.Status = domain.LoadFailed
	}
	return l.state
}

// Placeholder returns the fixed failure visual. It is valid in any state.
func (l *Loader) Placeholder() Placeholder {
	return Placeholder{Icon: "image-off", Label: UnavailableLabel, Alt: l.label}
}

func (l *Loader) cacheBusted(src string) string {
	token := strconv.FormatInt(l.now().UnixMilli(), 10)
	u, err := url.Parse(src)
	if err != nil {
		sep := "?"
		if strings.Contains(src, "?") {
			sep = "&"
		}
		return src + sep + CacheBustParam + "=" + token
	}
	// Append rather than re-encode so the existing query stays byte-identical.
	param := CacheBustParam + "=" + token
	if u.RawQuery == "" {
		u.RawQuery = param
	} else {
		u.RawQuery += "&" + param
	}
	return u.String()
}

func (l *Loader) absolute(src string) string {
	if l.origin == nil {
		return src
	}
	ref, err := url.Parse(src)
	if err != nil {
		return src
	}
	return l.origin.ResolveReference(ref).String()
}
