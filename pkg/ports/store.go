package ports

import (
	"context"

	"github.com/aretw0/portico/pkg/domain"
)

// DraftStore defines the interface for persisting in-progress drafts.
// It is what lets a visitor close the tab and resume the form later.
type DraftStore interface {
	// Get retrieves the draft stored under key.
	// Returns domain.ErrDraftNotFound if nothing is stored.
	Get(ctx context.Context, key string) (*domain.Draft, error)

	// Set persists the draft under key, replacing any previous value.
	Set(ctx context.Context, key string, draft *domain.Draft) error

	// Delete removes the draft. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the keys of all stored drafts.
	List(ctx context.Context) ([]string, error)
}
