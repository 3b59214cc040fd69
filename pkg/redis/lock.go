package redis

import (
	"context"
	"time"
)

// Lock represents a held non-reentrancy lock. Release is idempotent.
type Lock struct {
	client Client
	key    string
	held   bool
}

// TryAcquire attempts to acquire a lease-bounded lock for key. It returns a
// Lock with Held()==false if another holder currently owns it — callers
// should skip the guarded work rather than block, matching spec §4.12's
// "a long-running ingestion must not start a second copy".
func TryAcquire(ctx context.Context, client Client, key string, lease time.Duration) (*Lock, error) {
	ok, err := client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), lease)
	if err != nil {
		return nil, err
	}
	return &Lock{client: client, key: key, held: ok}, nil
}

// Held reports whether this call acquired the lock.
func (l *Lock) Held() bool {
	return l != nil && l.held
}

// Release drops the lock if held. Safe to call on a non-held lock.
func (l *Lock) Release(ctx context.Context) error {
	if l == nil || !l.held {
		return nil
	}
	l.held = false
	return l.client.Del(ctx, l.key)
}
