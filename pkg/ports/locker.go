package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a session lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes navigation on one session across replicas.
// session.Manager takes it around every load, transition and save, so two
// servers never both append to the same history.
type DistributedLocker interface {
	// Lock acquires the lock on key, normally a session id, and holds it for
	// at most ttl. It blocks until the lock is held or ctx is done. The
	// caller must invoke the returned UnlockFunc.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
