package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"

	"github.com/aretw0/portico/pkg/adapters/memory"
	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/persistence/middleware"
	"github.com/aretw0/portico/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	ports.RunDraftStoreContract(t, mw(memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(underlying)
	ctx := context.Background()

	draft := domain.NewDraft()
	draft.Set("email", "ada@example.com")
	draft.StepIndex = 2
	require.NoError(t, secure.Set(ctx, "k", draft))

	stored, err := underlying.Get(ctx, "k")
	require.NoError(t, err)
	assert.NotContains(t, stored.Fields, "email", "plaintext must not reach the inner store")
	assert.Contains(t, stored.Fields, middleware.EnvelopeField)
	assert.Equal(t, 2, stored.StepIndex)

	loaded, err := secure.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", loaded.Get("email"))
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	store := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)
	ctx := context.Background()

	draft := domain.NewDraft()
	draft.Set("name", "Ada")
	require.NoError(t, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})(store).Set(ctx, "k", draft))

	rotated := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	})(store)
	loaded, err := rotated.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "Ada", loaded.Get("name"))

	strict := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})(store)
	_, err = strict.Get(ctx, "k")
	assert.Error(t, err, "a key that never encrypted the draft must not decrypt it")
}

func TestEncryptionMiddleware_RejectsPlaintext(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", domain.NewDraft()))

	secure := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})(store)
	_, err := secure.Get(ctx, "k")
	assert.ErrorIs(t, err, middleware.ErrNotEncrypted)
}

func TestParseKey(t *testing.T) {
	key := generateKey(t)
	got, err := middleware.ParseKey(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	assert.Equal(t, key, got)

	_, err = middleware.ParseKey(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.Error(t, err)
	_, err = middleware.ParseKey("%%%")
	assert.Error(t, err)
}
