package statestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/treelot/treelotd/internal/core/market"
	"github.com/treelot/treelotd/internal/core/registry"
	"github.com/treelot/treelotd/internal/core/types"
	"github.com/treelot/treelotd/internal/storage/kvstore"
)

func testAccountID(b byte) types.AccountID {
	var id types.AccountID
	id[0] = b
	return id
}

func testClassID(b byte) types.ClassID {
	var id types.ClassID
	id[0] = b
	return id
}

// buildState assembles a state with a contract, an offer, a lot, and
// holdings so every snapshot section is exercised.
func buildState(t *testing.T) *market.State {
	t.Helper()
	admin := testAccountID(0xAD)
	buyer := testAccountID(0xB1)
	settlement := testClassID(0x55)
	offerClass := testClassID(0x01)
	lotClass := testClassID(0x02)

	st := market.NewState()
	st.Contract = &market.Contract{
		Admin:            admin,
		Authority:        testAccountID(0xCC),
		TreesPerLot:      10,
		SettlementClass:  settlement,
		SettlementHolder: testAccountID(0xCC),
		ClassSeq:         2,
	}

	require.NoError(t, st.Book.CreateClass(settlement, admin, 6, "Settlement Token", nil, false))
	require.NoError(t, st.Book.Mint(admin, settlement, buyer, 1_000_000))

	md := map[string]string{"location": "Valdivia", "variety": "Pine", "price": "500"}
	require.NoError(t, st.Book.CreateClass(offerClass, admin, 0, "Lot Offer", md, true))
	require.NoError(t, st.Book.CreateClass(lotClass, admin, 0, "Lot", nil, true))

	_, err := st.Offers.Push(registry.Offer{Class: offerClass})
	require.NoError(t, err)
	_, err = st.Lots.Push(registry.Lot{Class: lotClass, OriginalPricePerTree: 500})
	require.NoError(t, err)

	return st
}

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := kvstore.Open(kvstore.BackendPebble, filepath.Join(t.TempDir(), "db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store, err := New(db, 0)
	require.NoError(t, err)
	return store
}

func requireStatesEqual(t *testing.T, want, got *market.State) {
	t.Helper()
	require.Equal(t, want.Contract, got.Contract)
	require.Equal(t, want.Offers.Entries(), got.Offers.Entries())
	require.Equal(t, want.Lots.Entries(), got.Lots.Entries())

	wantClasses, wantHoldings := want.Book.Export()
	gotClasses, gotHoldings := got.Book.Export()
	require.ElementsMatch(t, wantClasses, gotClasses)
	require.ElementsMatch(t, wantHoldings, gotHoldings)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	st := buildState(t)

	require.NoError(t, store.Save(ctx, 7, st))

	got, err := store.Load(ctx, 7)
	require.NoError(t, err)
	requireStatesEqual(t, st, got)
}

func TestLoadBypassesCache(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	st := buildState(t)

	require.NoError(t, store.Save(ctx, 1, st))
	store.cache.Purge()

	got, err := store.Load(ctx, 1)
	require.NoError(t, err)
	requireStatesEqual(t, st, got)
}

func TestLoadLatest(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	st := buildState(t)

	_, _, err := store.LoadLatest(ctx)
	require.ErrorIs(t, err, kvstore.ErrKeyNotFound)

	require.NoError(t, store.Save(ctx, 1, st))
	require.NoError(t, store.Save(ctx, 2, st))

	seq, got, err := store.LoadLatest(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(2), seq)
	requireStatesEqual(t, st, got)
}

func TestLoadMissingSeq(t *testing.T) {
	store := newStore(t)
	_, err := store.Load(context.Background(), 99)
	require.ErrorIs(t, err, kvstore.ErrKeyNotFound)
}

func TestCompressRoundTrip(t *testing.T) {
	small := []byte("tiny")
	stored, err := compress(small)
	require.NoError(t, err)
	raw, err := decompress(stored)
	require.NoError(t, err)
	require.Equal(t, small, raw)

	big := make([]byte, 4096)
	for i := range big {
		big[i] = byte(i % 7)
	}
	stored, err = compress(big)
	require.NoError(t, err)
	require.Less(t, len(stored), len(big), "repetitive payload should compress")
	raw, err = decompress(stored)
	require.NoError(t, err)
	require.Equal(t, big, raw)
}
