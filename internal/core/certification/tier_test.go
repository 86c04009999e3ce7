package certification

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTierOrder(t *testing.T) {
	require.True(t, Undefined < Tier1)
	require.True(t, Tier1 < Tier2)
	require.True(t, Tier2 < Tier3)
	require.True(t, Tier3 < Tier4)
	require.True(t, Tier4 < Decertified)
}

func TestTierPredicates(t *testing.T) {
	testcases := []struct {
		tier      Tier
		valid     bool
		terminal  bool
		certified bool
	}{
		{Undefined, true, false, false},
		{Tier1, true, false, true},
		{Tier2, true, false, true},
		{Tier3, true, false, true},
		{Tier4, true, false, true},
		{Decertified, true, true, false},
		{Tier(6), false, false, false},
	}

	for _, tc := range testcases {
		t.Run(tc.tier.String(), func(t *testing.T) {
			require.Equal(t, tc.valid, tc.tier.Valid())
			require.Equal(t, tc.terminal, tc.tier.Terminal())
			require.Equal(t, tc.certified, tc.tier.Certified())
		})
	}
}

func TestSuccessor(t *testing.T) {
	next, ok := Undefined.Successor()
	require.True(t, ok)
	require.Equal(t, Tier1, next)

	next, ok = Tier4.Successor()
	require.True(t, ok)
	require.Equal(t, Decertified, next)

	_, ok = Decertified.Successor()
	require.False(t, ok, "terminal sentinel has no successor")
}

func TestFromBalance(t *testing.T) {
	for balance := uint64(0); balance <= 5; balance++ {
		tier, ok := FromBalance(balance)
		require.True(t, ok)
		require.Equal(t, Tier(balance), tier)
	}

	_, ok := FromBalance(6)
	require.False(t, ok)
}
