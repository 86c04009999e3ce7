package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/treelot/treelotd/internal/core/types"
)

func classID(b byte) types.ClassID {
	var id types.ClassID
	id[0] = b
	return id
}

func TestOffersPushAndVerify(t *testing.T) {
	offers := NewOffers()
	require.Equal(t, uint64(0), offers.Tail())

	idx, err := offers.Push(Offer{Class: classID(1)})
	require.NoError(t, err)
	require.Equal(t, uint64(0), idx)

	idx, err = offers.Push(Offer{Class: classID(2)})
	require.NoError(t, err)
	require.Equal(t, uint64(1), idx)
	require.Equal(t, uint64(2), offers.Tail())

	require.NoError(t, offers.Verify(0, classID(1)))
	require.NoError(t, offers.Verify(1, classID(2)))

	err = offers.Verify(0, classID(2))
	require.ErrorIs(t, err, ErrOfferClassMismatch)

	err = offers.Verify(2, classID(1))
	require.ErrorIs(t, err, ErrInvalidOfferIndex)
}

func TestOffersCapacity(t *testing.T) {
	offers := NewOffers()
	for i := 0; i < OffersCapacity; i++ {
		_, err := offers.Push(Offer{Class: classID(byte(i))})
		require.NoError(t, err)
	}

	_, err := offers.Push(Offer{Class: classID(0xFF)})
	require.ErrorIs(t, err, ErrOffersFull)
	require.Equal(t, uint64(OffersCapacity), offers.Tail())
}

func TestLotsCapacity(t *testing.T) {
	lots := NewLots()
	for i := 0; i < LotsCapacity; i++ {
		_, err := lots.Push(Lot{Class: classID(byte(i))})
		require.NoError(t, err)
	}

	_, err := lots.Push(Lot{Class: classID(0xFF)})
	require.ErrorIs(t, err, ErrLotsFull)
	require.Equal(t, uint64(LotsCapacity), lots.Tail())
}

func TestLotsGetOutOfBounds(t *testing.T) {
	lots := NewLots()
	_, err := lots.Get(0)
	require.ErrorIs(t, err, ErrInvalidLotIndex)

	_, err = lots.Push(Lot{Class: classID(1)})
	require.NoError(t, err)

	_, err = lots.Get(1)
	require.ErrorIs(t, err, ErrInvalidLotIndex)
}

func TestLotsRemoveSwapsTail(t *testing.T) {
	lots := NewLots()
	for i := byte(1); i <= 3; i++ {
		_, err := lots.Push(Lot{Class: classID(i), OriginalPricePerTree: uint64(i) * 100})
		require.NoError(t, err)
	}

	// Removing the head moves the last record into slot 0.
	require.NoError(t, lots.Remove(0))
	require.Equal(t, uint64(2), lots.Tail())

	moved, err := lots.Get(0)
	require.NoError(t, err)
	require.Equal(t, classID(3), moved.Class)
	require.Equal(t, uint64(300), moved.OriginalPricePerTree)

	second, err := lots.Get(1)
	require.NoError(t, err)
	require.Equal(t, classID(2), second.Class)
}

func TestLotsRemoveLast(t *testing.T) {
	lots := NewLots()
	_, err := lots.Push(Lot{Class: classID(1)})
	require.NoError(t, err)

	require.NoError(t, lots.Remove(0))
	require.Equal(t, uint64(0), lots.Tail())

	err = lots.Remove(0)
	require.ErrorIs(t, err, ErrInvalidLotIndex)
}

func TestLotsCloneIsIndependent(t *testing.T) {
	lots := NewLots()
	_, err := lots.Push(Lot{Class: classID(1), OriginalPricePerTree: 500})
	require.NoError(t, err)

	clone := lots.Clone()
	_, err = clone.Push(Lot{Class: classID(2)})
	require.NoError(t, err)

	require.Equal(t, uint64(1), lots.Tail())
	require.Equal(t, uint64(2), clone.Tail())
}

func TestRoundTripEntries(t *testing.T) {
	lots := NewLots()
	_, err := lots.Push(Lot{Class: classID(7), OriginalPricePerTree: 42})
	require.NoError(t, err)

	rebuilt := LotsFromEntries(lots.Entries())
	got, err := rebuilt.Get(0)
	require.NoError(t, err)
	require.Equal(t, classID(7), got.Class)
	require.Equal(t, uint64(42), got.OriginalPricePerTree)
}
