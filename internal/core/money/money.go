// Package money converts catalog prices quoted in cents into settlement
// asset units. The settlement asset has 6 decimal places, so one cent is
// worth 10,000 units and $1.00 = 100 cents = 1,000,000 units.
package money

import (
	"errors"
	"math/bits"
	"strconv"
)

// SettlementDecimals is the decimal precision of the settlement asset.
const SettlementDecimals = 6

// UnitsPerCent is the fixed cents-to-settlement-units scale.
const UnitsPerCent uint64 = 10_000

// ErrInvalidPrice is returned when a metadata price is not a valid
// non-negative integer string.
var ErrInvalidPrice = errors.New("price is not a valid non-negative integer")

// ErrAmountOverflow is returned when a settlement computation exceeds the
// uint64 range.
var ErrAmountOverflow = errors.New("settlement amount out of range")

// CentsToUnits converts a cents amount to settlement units.
func CentsToUnits(cents uint64) uint64 {
	return cents * UnitsPerCent
}

// Mul multiplies two settlement amounts, rejecting uint64 overflow.
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrAmountOverflow
	}
	return lo, nil
}

// LotTotal computes the settlement total for quantity lots of treesPerLot
// trees priced at cents per tree. Every multiplication in the chain is
// overflow-checked; quantities are caller-supplied.
func LotTotal(cents, quantity, treesPerLot uint64) (uint64, error) {
	units, err := Mul(cents, UnitsPerCent)
	if err != nil {
		return 0, err
	}
	perLot, err := Mul(units, treesPerLot)
	if err != nil {
		return 0, err
	}
	return Mul(perLot, quantity)
}

// ParsePriceCents parses a catalog price metadata string into cents.
// Only plain base-10 digits are accepted; signs, spaces, and fractions are
// all rejected.
func ParsePriceCents(s string) (uint64, error) {
	if s == "" {
		return 0, ErrInvalidPrice
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidPrice
		}
	}
	cents, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return cents, nil
}
