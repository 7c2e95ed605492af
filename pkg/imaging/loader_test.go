package imaging_test

import (
	"testing"
	"time"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/imaging"
	"github.com/stretchr/testify/assert"
)

var fixedNow = func() time.Time { return time.UnixMilli(1700000000000) }

func newLoader(primary string, opts ...imaging.Option) *imaging.Loader {
	base := []imaging.Option{imaging.WithClock(fixedNow), imaging.WithOrigin("https://studio.dev")}
	return imaging.NewLoader(primary, append(base, opts...)...)
}

func TestLoader_CascadeWithFallback(t *testing.T) {
	l := newLoader("/img/hero.png?w=800", imaging.WithFallback("/img/fallback.png"))

	sources := []string{l.State().ResolvedSource}
	for i := 0; i < 3; i++ {
		s := l.Fail()
		assert.Equal(t, domain.LoadLoading, s.Status, "failure %d", i+1)
		sources = append(sources, s.ResolvedSource)
	}

	assert.Equal(t, []string{
		"/img/hero.png?w=800",
		"/img/hero.png?w=800&_cb=1700000000000",
		"/img/fallback.png",
		"https://studio.dev/img/hero.png?w=800",
	}, sources)
	assert.Equal(t, 3, l.State().Attempt)

	final := l.Fail()
	assert.Equal(t, domain.LoadFailed, final.Status)
	assert.Equal(t, "https://studio.dev/img/hero.png?w=800", final.ResolvedSource)
}

func TestLoader_CascadeWithoutFallback(t *testing.T) {
	l := newLoader("img/team.jpg")

	l.Fail()
	second := l.Fail()
	assert.Equal(t, 3, second.Attempt)
	assert.Equal(t, "https://studio.dev/img/team.jpg", second.ResolvedSource)
	assert.Equal(t, domain.LoadLoading, second.Status)

	third := l.Fail()
	assert.Equal(t, domain.LoadFailed, third.Status, "Failed after 3 failures without fallback")
}

func TestLoader_TerminalStatesAreFrozen(t *testing.T) {
	l := newLoader("/a.png", imaging.WithFallback("/b.png"))
	l.Fail()
	l.Fail()
	loaded := l.Succeed()
	assert.Equal(t, domain.LoadLoaded, loaded.Status)
	assert.Equal(t, "/b.png", loaded.ResolvedSource)

	assert.Equal(t, loaded, l.Fail())
	assert.Equal(t, loaded, l.Succeed())

	failed := newLoader("/a.png")
	for i := 0; i < 3; i++ {
		failed.Fail()
	}
	snapshot := failed.State()
	assert.Equal(t, domain.LoadFailed, snapshot.Status)
	assert.Equal(t, snapshot, failed.Succeed())
	assert.Equal(t, snapshot, failed.Fail())
}

func TestLoader_AttemptNeverDecreases(t *testing.T) {
	l := newLoader("/a.png", imaging.WithFallback("/b.png"))
	last := l.State().Attempt
	for i := 0; i < 6; i++ {
		s := l.Fail()
		assert.GreaterOrEqual(t, s.Attempt, last)
		last = s.Attempt
	}
}

func TestLoader_ResetStartsFresh(t *testing.T) {
	l := newLoader("/a.png", imaging.WithLabel("Portfolio shot"))
	for i := 0; i < 3; i++ {
		l.Fail()
	}
	assert.True(t, l.Terminal())

	next := l.Reset("/c.png")
	assert.Equal(t, domain.ImageLoadState{
		RequestedSource: "/c.png",
		ResolvedSource:  "/c.png",
		Status:          domain.LoadLoading,
	}, next.State())
	assert.Equal(t, "Portfolio shot", next.Label())
	assert.Equal(t, domain.LoadFailed, l.State().Status, "old instance untouched")

	withFallback := l.Reset("/d.png", imaging.WithFallback("/e.png"))
	assert.Equal(t, "/e.png", withFallback.State().FallbackSource)
}

func TestLoader_NoOriginKeepsSource(t *testing.T) {
	l := imaging.NewLoader("/a.png", imaging.WithClock(fixedNow), imaging.WithOrigin("not absolute"))
	l.Fail()
	s := l.Fail()
	assert.Equal(t, "/a.png", s.ResolvedSource)
}

func TestLoader_Placeholder(t *testing.T) {
	l := newLoader("/a.png", imaging.WithLabel("Case study"), imaging.WithPriority(true))
	p := l.Placeholder()
	assert.Equal(t, imaging.UnavailableLabel, p.Label)
	assert.Equal(t, "Case study", p.Alt)
	assert.NotEmpty(t, p.Icon)
	assert.True(t, l.Priority())
}

func TestLoader_CacheBustKeepsExistingQuery(t *testing.T) {
	tests := []struct {
		primary string
		want    string
	}{
		{"/img/a.png", "/img/a.png?_cb=1700000000000"},
		{"/img/a.png?z=1&a=2", "/img/a.png?z=1&a=2&_cb=1700000000000"},
		{"/img/a.png?path=%2Fx%20y", "/img/a.png?path=%2Fx%20y&_cb=1700000000000"},
		{"https://cdn.test/a.png?sig=abc#frag", "https://cdn.test/a.png?sig=abc&_cb=1700000000000#frag"},
	}
	for _, tt := range tests {
		t.Run(tt.primary, func(t *testing.T) {
			l := newLoader(tt.primary)
			assert.Equal(t, tt.want, l.Fail().ResolvedSource)
		})
	}
}
