package domain

// LoadStatus is the position of an image in its load lifecycle.
type LoadStatus string

const (
	LoadLoading LoadStatus = "loading"
	LoadLoaded  LoadStatus = "loaded" // Terminal
	LoadFailed  LoadStatus = "failed" // Terminal
)

// Terminal reports whether no further transitions are allowed.
func (s LoadStatus) Terminal() bool {
	return s == LoadLoaded || s == LoadFailed
}

// MaxImageAttempt is the last position of the fallback cascade.
const MaxImageAttempt = 3

// ImageLoadState is a snapshot of one image's progress through the fallback cascade.
type ImageLoadState struct {
	RequestedSource string     `json:"requested_source"`
	FallbackSource  string     `json:"fallback_source,omitempty"`
	Attempt         int        `json:"attempt"`
	ResolvedSource  string     `json:"resolved_source"`
	Status          LoadStatus `json:"status"`
}
