package storage

import "context"

//go:generate moq -out kv_mock.go . KVStorage

// KVStorage defines the raw string-keyed blob store underneath the snapshot cache and the queue.
// Values are opaque bytes; the Adapter owns serialization.
type KVStorage interface {
	// Get returns the stored value or ErrKeyNotFound
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the stored value
	Put(ctx context.Context, key string, value []byte) error
}
