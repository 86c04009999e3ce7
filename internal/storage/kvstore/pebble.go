package kvstore

import (
	"context"
	"errors"

	"github.com/cockroachdb/pebble"
)

// PebbleDB is the pebble-backed store.
type PebbleDB struct {
	db *pebble.DB
}

// OpenPebble opens (or creates) a pebble database at path.
func OpenPebble(path string) (*PebbleDB, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &PebbleDB{db: db}, nil
}

// Get implements DB.
func (p *PebbleDB) Get(ctx context.Context, key []byte) ([]byte, error) {
	if p.db == nil {
		return nil, ErrClosed
	}
	val, closer, err := p.db.Get(key)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	defer closer.Close()

	// Pebble reuses the returned buffer after the closer closes.
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

// Put implements DB.
func (p *PebbleDB) Put(ctx context.Context, key, value []byte) error {
	if p.db == nil {
		return ErrClosed
	}
	return p.db.Set(key, value, pebble.Sync)
}

// Delete implements DB.
func (p *PebbleDB) Delete(ctx context.Context, key []byte) error {
	if p.db == nil {
		return ErrClosed
	}
	return p.db.Delete(key, pebble.Sync)
}

// Close implements DB.
func (p *PebbleDB) Close() error {
	if p.db == nil {
		return ErrClosed
	}
	err := p.db.Close()
	p.db = nil
	return err
}
