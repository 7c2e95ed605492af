package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serialises access to a wizard session across replicas.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held, the context is canceled,
	// or the implementation gives up. The returned UnlockFunc MUST be called.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
