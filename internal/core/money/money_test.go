package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCentsToUnits(t *testing.T) {
	testcases := []struct {
		name  string
		cents uint64
		units uint64
	}{
		{name: "zero", cents: 0, units: 0},
		{name: "one cent", cents: 1, units: 10_000},
		{name: "one dollar", cents: 100, units: 1_000_000},
		{name: "catalog price 500", cents: 500, units: 5_000_000},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.units, CentsToUnits(tc.cents))
		})
	}
}

func TestMul(t *testing.T) {
	testcases := []struct {
		name    string
		a, b    uint64
		want    uint64
		wantErr bool
	}{
		{name: "zero", a: 0, b: math.MaxUint64, want: 0},
		{name: "small", a: 7, b: 6, want: 42},
		{name: "max by one", a: math.MaxUint64, b: 1, want: math.MaxUint64},
		{name: "just over max", a: math.MaxUint64/2 + 1, b: 2, wantErr: true},
		{name: "both large", a: 1 << 32, b: 1 << 32, wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Mul(tc.a, tc.b)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrAmountOverflow)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLotTotal(t *testing.T) {
	testcases := []struct {
		name        string
		cents       uint64
		quantity    uint64
		treesPerLot uint64
		want        uint64
		wantErr     bool
	}{
		{name: "catalog scenario", cents: 500, quantity: 2, treesPerLot: 10, want: 100_000_000},
		{name: "single tree", cents: 1, quantity: 1, treesPerLot: 1, want: 10_000},
		{name: "price conversion overflows", cents: math.MaxUint64, quantity: 1, treesPerLot: 1, wantErr: true},
		{name: "quantity overflows", cents: 500, quantity: 368_934_881_475, treesPerLot: 10, wantErr: true},
		{name: "trees overflow", cents: 500, quantity: 1, treesPerLot: math.MaxUint64 / 100, wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LotTotal(tc.cents, tc.quantity, tc.treesPerLot)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrAmountOverflow)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParsePriceCents(t *testing.T) {
	testcases := []struct {
		name    string
		input   string
		want    uint64
		wantErr bool
	}{
		{name: "plain integer", input: "500", want: 500},
		{name: "zero", input: "0", want: 0},
		{name: "large", input: "123456789", want: 123456789},
		{name: "empty", input: "", wantErr: true},
		{name: "negative sign", input: "-5", wantErr: true},
		{name: "plus sign", input: "+5", wantErr: true},
		{name: "decimal point", input: "5.00", wantErr: true},
		{name: "whitespace", input: " 500", wantErr: true},
		{name: "letters", input: "5oo", wantErr: true},
		{name: "overflow", input: "99999999999999999999999999", wantErr: true},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParsePriceCents(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidPrice)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}
