package ports

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDraftStoreContract runs a suite of tests to verify that a DraftStore implementation
// adheres to the defined interface contract.
func RunDraftStoreContract(t *testing.T, store DraftStore) {
	ctx := context.Background()
	key := "portico:contract:" + time.Now().Format("20060102150405")

	t.Run("Set and Get round trip", func(t *testing.T) {
		draft := domain.NewDraft()
		draft.Set("name", "Ada Lovelace")
		draft.Set("email", "ada@example.com")
		draft.Set("notes", "multi\nline — ünïcode")
		draft.ToggleOption("seo")
		draft.ToggleOption("branding")
		draft.StepIndex = 3

		require.NoError(t, store.Set(ctx, key, draft), "Set should not return error")

		loaded, err := store.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		if diff := cmp.Diff(draft.Fields, loaded.Fields); diff != "" {
			t.Errorf("fields mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(draft.SelectedOptions, loaded.SelectedOptions); diff != "" {
			t.Errorf("options mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 3, loaded.StepIndex)
	})

	t.Run("Get returns isolated copy", func(t *testing.T) {
		loaded, err := store.Get(ctx, key)
		require.NoError(t, err)
		loaded.Set("name", "mutated")

		again, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", again.Get("name"))
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, domain.NewDraft()))
		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrDraftNotFound, "Get after Delete should return ErrDraftNotFound")

		assert.NoError(t, store.Delete(ctx, key), "Deleting a missing key is not an error")
	})

	t.Run("List", func(t *testing.T) {
		k1 := key + "-1"
		k2 := key + "-2"
		require.NoError(t, store.Set(ctx, k1, domain.NewDraft()))
		require.NoError(t, store.Set(ctx, k2, domain.NewDraft()))
		defer func() {
			_ = store.Delete(ctx, k1)
			_ = store.Delete(ctx, k2)
		}()

		keys, err := store.List(ctx)
		require.NoError(t, err)
		assert.True(t, slices.Contains(keys, k1), "missing %s in %v", k1, keys)
		assert.True(t, slices.Contains(keys, k2), "missing %s in %v", k2, keys)
	})
}
