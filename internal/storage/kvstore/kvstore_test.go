package kvstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBackends(t *testing.T) {
	for _, backend := range []string{BackendPebble, BackendLevelDB} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			db, err := Open(backend, filepath.Join(t.TempDir(), "db"))
			require.NoError(t, err)

			_, err = db.Get(ctx, []byte("missing"))
			require.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, db.Put(ctx, []byte("k"), []byte("v1")))
			got, err := db.Get(ctx, []byte("k"))
			require.NoError(t, err)
			require.Equal(t, []byte("v1"), got)

			require.NoError(t, db.Put(ctx, []byte("k"), []byte("v2")))
			got, err = db.Get(ctx, []byte("k"))
			require.NoError(t, err)
			require.Equal(t, []byte("v2"), got)

			require.NoError(t, db.Delete(ctx, []byte("k")))
			_, err = db.Get(ctx, []byte("k"))
			require.ErrorIs(t, err, ErrKeyNotFound)

			require.NoError(t, db.Close())
			_, err = db.Get(ctx, []byte("k"))
			require.ErrorIs(t, err, ErrClosed)
		})
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("bolt", t.TempDir())
	require.Error(t, err)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db")

	db, err := Open(BackendPebble, path)
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, []byte("persist"), []byte("yes")))
	require.NoError(t, db.Close())

	db, err = Open(BackendPebble, path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get(ctx, []byte("persist"))
	require.NoError(t, err)
	require.Equal(t, []byte("yes"), got)
}
