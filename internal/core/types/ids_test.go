package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAccountIDRoundTrip(t *testing.T) {
	var id AccountID
	id[0] = 0xAB
	id[19] = 0x01

	parsed, err := ParseAccountID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseAccountIDErrors(t *testing.T) {
	_, err := ParseAccountID("zz")
	require.Error(t, err)

	_, err = ParseAccountID(strings.Repeat("ab", 19))
	require.Error(t, err, "wrong length")
}

func TestParseClassIDRoundTrip(t *testing.T) {
	var id ClassID
	id[0] = 0xCD
	id[31] = 0x02

	parsed, err := ParseClassID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestIsZero(t *testing.T) {
	require.True(t, AccountID{}.IsZero())
	require.True(t, ClassID{}.IsZero())

	var a AccountID
	a[5] = 1
	require.False(t, a.IsZero())
}
