package ports

import "context"

// AssetProber checks whether an image URI can be loaded.
// A nil error means the asset loaded; any error counts as a load failure.
type AssetProber interface {
	Probe(ctx context.Context, uri string) error
}
