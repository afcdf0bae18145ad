package ports

import "context"

// Storage is a key-value backend holding serialized state documents. It plays
// the role of browser local storage: one key, one JSON document.
type Storage interface {
	// Load returns the raw document stored under key, or domain.ErrStateNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the document stored under key.
	Save(ctx context.Context, key string, value []byte) error
	// Remove deletes the document under key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
