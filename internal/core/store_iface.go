//go:generate go run go.uber.org/mock/mockgen -source=store_iface.go -destination=../mocks/mock_store.go -package=mocks
package core

import "context"

// Store is the persistent key/value collaborator. Values are JSON documents.
type Store interface {
	// Get returns the document at key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Push appends one JSON element to the array at key, creating the
	// array if it does not exist yet.
	Push(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
