package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/portico/pkg/domain"
	"github.com/aretw0/portico/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_Contract(t *testing.T) {
	ports.RunDraftStoreContract(t, openTestStore(t))
}

func TestSQLiteStore_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "drafts.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	d := domain.NewDraft()
	d.Set("name", "Ada")
	require.NoError(t, s.Set(ctx, "k", d))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Get("name"))
}

func TestSQLiteStore_PruneBefore(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base }
	require.NoError(t, s.Set(ctx, "old", domain.NewDraft()))
	s.now = func() time.Time { return base.Add(48 * time.Hour) }
	require.NoError(t, s.Set(ctx, "fresh", domain.NewDraft()))

	n, err := s.PruneBefore(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	keys, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, keys)
}
