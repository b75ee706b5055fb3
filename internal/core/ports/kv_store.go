package ports

import "context"

// KeyValueStore is the durable string store the bookmark set and the
// session identity are persisted to. Get reports ok=false for a key that
// was never written or has been deleted.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
