package redis

import (
	"context"
	"time"
)

// Client represents a Redis client interface for testing and abstraction.
// The engine uses Redis narrowly as the scheduler's distributed
// non-reentrancy lock (spec §4.12) — all durable domain rows live in
// Postgres (pkg/store).
type Client interface {
	// Set sets a key to a value with an optional TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Get gets the value of a key.
	Get(ctx context.Context, key string) (string, error)

	// SetNX sets a key only if it does not already exist, returning true if
	// the set happened. Used as the acquire step of a non-reentrancy lock.
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)

	// Del deletes a key, used to release a lock.
	Del(ctx context.Context, key string) error

	// Expire sets a TTL on a key.
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Ping checks the connection to Redis.
	Ping(ctx context.Context) error

	// Close closes the Redis connection.
	Close() error
}
