// Package ticker rotates through fixed sets of short messages, such as
// testimonials or recent-activity notices, on a timer.
//
// Every Run call is an independent task with its own position and random
// source; cancelling its context stops it and closes the channel.
package ticker

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"time"
)

// DefaultInterval is used when a Feed leaves Interval unset.
const DefaultInterval = 6 * time.Second

// ErrUnknownFeed is returned by Lookup for names not in the catalog.
var ErrUnknownFeed = errors.New("unknown ticker feed")

// Feed is a named, fixed set of messages.
type Feed struct {
	Name     string        `yaml:"name" json:"name"`
	Messages []string      `yaml:"messages" json:"messages"`
	Interval time.Duration `yaml:"interval" json:"interval"`
	// Shuffle picks messages at random instead of in order.
	Shuffle bool `yaml:"shuffle" json:"shuffle"`
}

// Contains reports whether msg is one of the feed's messages.
func (f Feed) Contains(msg string) bool {
	return slices.Contains(f.Messages, msg)
}

// Catalog holds the feeds served by name.
type Catalog map[string]Feed

// DefaultCatalog is the set of feeds shown on the marketing site.
func DefaultCatalog() Catalog {
	return Catalog{
		"testimonials": {
			Name: "testimonials",
			Messages: []string{
				"\"Our bookings doubled in the first month.\" (Marta, physiotherapy clinic)",
				"\"Fast, clear, and the site finally looks like us.\" (Jon, coffee roaster)",
				"\"Launched on time and under budget.\" (Priya, architecture studio)",
				"\"Visitors actually fill in the contact form now.\" (Leo, language school)",
			},
			Interval: 8 * time.Second,
		},
		"activity": {
			Name: "activity",
			Messages: []string{
				"Someone from Lisbon just requested a quote",
				"A bakery in Porto started a new project",
				"3 people are looking at this page right now",
				"A new landing page went live yesterday",
			},
			Interval: 12 * time.Second,
			Shuffle:  true,
		},
	}
}

// Lookup returns the feed called name.
func (c Catalog) Lookup(name string) (Feed, error) {
	f, ok := c[name]
	if !ok || len(f.Messages) == 0 {
		return Feed{}, ErrUnknownFeed
	}
	return f, nil
}

// Run emits the first message immediately and then one per interval until
// ctx is done. A slow reader delays the next tick rather than queueing.
func Run(ctx context.Context, feed Feed) <-chan string {
	out := make(chan string)
	interval := feed.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	messages := slices.Clone(feed.Messages)

	go func() {
		defer close(out)
		if len(messages) == 0 {
			return
		}

		rnd := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		next := 0
		if feed.Shuffle {
			next = rnd.IntN(len(messages))
		}

		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			select {
			case <-ctx.Done():
				return
			case out <- messages[next]:
			}

			if feed.Shuffle {
				next = pick(rnd, len(messages), next)
			} else {
				next = (next + 1) % len(messages)
			}
			timer.Reset(interval)
		}
	}()

	return out
}

// pick chooses a random index different from prev when there is a choice.
func pick(rnd *rand.Rand, n, prev int) int {
	if n < 2 {
		return 0
	}
	i := rnd.IntN(n - 1)
	if i >= prev {
		i++
	}
	return i
}
