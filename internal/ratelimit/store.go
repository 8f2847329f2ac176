// Package ratelimit provides a fixed-window request counter keyed by
// client address and route. The store is injected so the in-process map
// can be swapped for Redis without touching call sites.
package ratelimit

import (
	"context"
	"time"
)

// Store counts hits per key within a fixed window.
type Store interface {
	// Incr records one hit for key and returns the total for the
	// current window, starting a new window when the old one lapsed.
	Incr(ctx context.Context, key string, window time.Duration) (int, error)

	// Sweep drops expired windows. A no-op for stores that expire
	// entries themselves.
	Sweep(ctx context.Context) error
}
