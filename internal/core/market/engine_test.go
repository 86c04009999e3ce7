package market

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineSeqAdvancesOnCommit(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, uint64(1), f.engine.Seq(), "init_contract is the first commit")

	f.addOffer()
	require.Equal(t, uint64(2), f.engine.Seq())
}

func TestEngineFailedOperationHasNoEffect(t *testing.T) {
	f := newFixture(t)
	index, class := f.addOffer()
	seqBefore := f.engine.Seq()

	// The order places its escrow transfer before the mint. A buyer with no
	// settlement balance fails mid-operation; nothing may stick.
	err := f.engine.Apply(&PlaceOrder{
		Buyer:      tOther,
		OfferIndex: index,
		OfferClass: class,
		Quantity:   testQuantity,
	})
	require.Error(t, err)

	require.Equal(t, seqBefore, f.engine.Seq())
	require.Equal(t, uint64(0), f.balance(class, tOther))
	require.Equal(t, uint64(0), f.supply(class))
	c := f.contract()
	require.Equal(t, uint64(0), f.balance(f.settlement, c.SettlementHolder))
}

func TestEngineCommitHooks(t *testing.T) {
	f := newFixture(t)

	var names []string
	var seqs []uint64
	f.engine.OnCommit(func(name string, seq uint64, state *State) {
		names = append(names, name)
		seqs = append(seqs, seq)
		require.NotNil(t, state.Contract)
	})

	f.addOffer()
	index, class := f.addOffer()
	f.placeOrder(index, class)

	require.Equal(t, []string{"add_offer", "add_offer", "place_order"}, names)
	require.Equal(t, []uint64{2, 3, 4}, seqs)
}

func TestEngineValidateRejectsBeforeApply(t *testing.T) {
	f := newFixture(t)
	seqBefore := f.engine.Seq()

	err := f.engine.Apply(&PlaceOrder{OfferIndex: 0, Quantity: 1})
	require.ErrorIs(t, err, ErrZeroIdentity)
	require.Equal(t, seqBefore, f.engine.Seq())
}

func TestClassIDDerivationIsDeterministic(t *testing.T) {
	a := newFixture(t)
	b := newFixture(t)

	_, classA := a.addOffer()
	_, classB := b.addOffer()
	require.Equal(t, classA, classB, "same operation stream yields the same class IDs")
}
