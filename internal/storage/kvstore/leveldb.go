package kvstore

import (
	"context"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
)

// LevelDB is the goleveldb-backed store.
type LevelDB struct {
	db *leveldb.DB
}

// OpenLevelDB opens (or creates) a leveldb database at path.
func OpenLevelDB(path string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &LevelDB{db: db}, nil
}

// Get implements DB.
func (l *LevelDB) Get(ctx context.Context, key []byte) ([]byte, error) {
	if l.db == nil {
		return nil, ErrClosed
	}
	val, err := l.db.Get(key, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return val, nil
}

// Put implements DB.
func (l *LevelDB) Put(ctx context.Context, key, value []byte) error {
	if l.db == nil {
		return ErrClosed
	}
	return l.db.Put(key, value, nil)
}

// Delete implements DB.
func (l *LevelDB) Delete(ctx context.Context, key []byte) error {
	if l.db == nil {
		return ErrClosed
	}
	return l.db.Delete(key, nil)
}

// Close implements DB.
func (l *LevelDB) Close() error {
	if l.db == nil {
		return ErrClosed
	}
	err := l.db.Close()
	l.db = nil
	return err
}
