// Package kvstore defines the key-value storage substrate the engine
// persists its state snapshots to, with interchangeable pebble and
// leveldb backends.
package kvstore

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned when operating on a closed store.
	ErrClosed = errors.New("kvstore is closed")

	// ErrKeyNotFound is returned when a key does not exist.
	ErrKeyNotFound = errors.New("key not found")
)

// DB defines the operations any backend must support.
type DB interface {
	// Get reads the value stored under key. Returns ErrKeyNotFound when
	// the key is absent.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key []byte) error

	// Close releases the backend. Further calls return ErrClosed.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
)

// Open opens the named backend rooted at path.
func Open(backend, path string) (DB, error) {
	switch backend {
	case BackendPebble:
		return OpenPebble(path)
	case BackendLevelDB:
		return OpenLevelDB(path)
	default:
		return nil, fmt.Errorf("unknown kvstore backend %q", backend)
	}
}
