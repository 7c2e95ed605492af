package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/portico/pkg/adapters/memory"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/persistence/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_MasksOnRead(t *testing.T) {
	underlying := memory.NewStore()
	view := middleware.NewPIIMiddleware(middleware.DefaultPIIPatterns)(underlying)
	ctx := context.Background()

	draft := domain.NewDraft()
	draft.Set("name", "Ada Lovelace")
	draft.Set("email", "ada@example.com")
	draft.Set("phone", "")
	draft.Set("company", "Analytical Engines")
	require.NoError(t, view.Set(ctx, "k", draft))

	masked, err := view.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, masked.Get("name"))
	assert.Equal(t, middleware.Mask, masked.Get("email"))
	assert.Equal(t, "", masked.Get("phone"), "empty values reveal nothing and stay empty")
	assert.Equal(t, "Analytical Engines", masked.Get("company"))

	raw, err := underlying.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", raw.Get("email"), "writes must pass through unmasked")
}

func TestChain_OrderAndComposition(t *testing.T) {
	underlying := memory.NewStore()
	store := middleware.Chain(underlying,
		middleware.NewPIIMiddleware([]string{"email"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)
	ctx := context.Background()

	draft := domain.NewDraft()
	draft.Set("email", "ada@example.com")
	require.NoError(t, store.Set(ctx, "k", draft))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, middleware.Mask, got.Get("email"))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)
}
