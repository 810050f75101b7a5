// Package storage is the durable key/value store of the client, the
// equivalent of a browser's local storage. Values are opaque bytes.
package storage

import "context"

// Repository is a string-keyed durable store. Get returns (nil, nil) for an
// absent key. SetAll and DeleteAll are atomic.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetAll(ctx context.Context, values map[string][]byte) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
