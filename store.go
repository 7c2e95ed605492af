package portico

import (
	"fmt"
	"io"

	"github.com/aretw0/portico/internal/adapters/file"
	"github.com/aretw0/portico/internal/config"
	"github.com/aretw0/portico/pkg/adapters/memory"
	"github.com/aretw0/portico/pkg/adapters/redis"
	"github.com/aretw0/portico/pkg/adapters/sqlite"
	"github.com/aretw0/portico/pkg/persistence/middleware"
	"github.com/aretw0/portico/pkg/ports"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore builds the draft store selected by cfg, wrapped in envelope
// encryption when a key is configured. The closer releases connections.
func OpenStore(cfg config.StoreConfig) (ports.DraftStore, io.Closer, error) {
	var (
		store  ports.DraftStore
		closer io.Closer = nopCloser{}
	)

	switch cfg.Driver {
	case config.DriverMemory:
		store = memory.NewStore()
	case config.DriverFile:
		store = file.New(cfg.Path)
	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		store, closer = s, s
	case config.DriverRedis:
		s := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, redis.WithTTL(cfg.TTL))
		store, closer = s, s
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}

	if cfg.EncryptionKey == "" {
		return store, closer, nil
	}

	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cfg.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			closer.Close()
			return nil, nil, fmt.Errorf("fallback key %d: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return middleware.Chain(store, middleware.NewEncryptionMiddleware(enc)), closer, nil
}
