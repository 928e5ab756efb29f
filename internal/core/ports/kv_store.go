package ports

import "context"

// KeyValueStore is durable local storage that survives process restarts.
// Get returns domain.ErrKeyNotFound for an absent key; Delete of an absent
// key is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
