// Package cache provides the response cache backing the catalog access
// layer. The store only enforces the retention ceiling; freshness windows
// are interpreted by the caller, which knows the per-operation policy.
package cache

import (
	"context"
	"time"
)

// Entry holds a cached payload and the time it was fetched from upstream.
type Entry struct {
	Payload   []byte    `json:"payload"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Age returns how long ago the entry was fetched.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Store is the backing storage for cached responses. Implementations must be
// safe for concurrent use. Get returns (nil, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	// Set stores the entry, evicting it once retain has elapsed.
	Set(ctx context.Context, key string, entry *Entry, retain time.Duration) error
	Delete(ctx context.Context, key string) error
}
