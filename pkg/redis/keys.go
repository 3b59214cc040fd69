package redis

import "fmt"

// Key construction helpers for Redis locks and cached values. Only
// JobLockKey is used in this module (by internal/scheduler); ScoreLockKey
// and StaleCacheKey have no callers.

// JobLockKey returns the lock key for a named scheduler job, e.g.
// "ingestion", "snapshot", "periodic_recalc".
func JobLockKey(job string) string {
	return fmt.Sprintf("bayscan:lock:job:%s", job)
}

// ScoreLockKey returns a per-(species,zone) lock key. No code in this module
// acquires it, so an event-driven recompute and the scheduler's periodic
// recompute of the same (species, zone) are not serialized against each
// other.
func ScoreLockKey(species, zoneID string) string {
	return fmt.Sprintf("bayscan:lock:score:%s:%s", species, zoneID)
}

// StaleCacheKey returns a key for the last-known-good value of a named
// external source. No code in this module uses it; internal/sources keeps
// its fallback values in memory.
func StaleCacheKey(sourceName string) string {
	return fmt.Sprintf("bayscan:stale:%s", sourceName)
}
