package ports

import (
	"context"
	"time"
)

// DedupeStore defines the contract for short-lived first-seen tracking of
// carrier webhook deliveries. Carriers redeliver webhooks aggressively; the
// ingest path drops a delivery whose key was already seen within the TTL.
//
// Deduplication is best-effort: losing the store only costs duplicate
// processing, which the lifecycle machine already tolerates (a repeated
// signal refreshes observability fields and moves nothing).
type DedupeStore interface {
	// FirstSeen records the key and reports whether this was its first
	// appearance within the TTL window. The check and the record are atomic.
	FirstSeen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
