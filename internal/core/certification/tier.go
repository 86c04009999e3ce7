// Package certification defines the manager certification tier as an
// explicit total order with a successor function and a distinguished
// terminal value. A manager's tier is represented externally by the
// balance of a non-transferable certification token: balance value equals
// tier ordinal.
package certification

import "fmt"

// Tier is an ordinal certification level.
type Tier uint8

const (
	// Undefined means the manager has never been certified.
	Undefined Tier = 0

	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3
	Tier4 Tier = 4

	// Decertified is the terminal sentinel: a decertified manager can no
	// longer be certified.
	Decertified Tier = 5
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case Undefined:
		return "Undefined"
	case Tier1:
		return "Tier1"
	case Tier2:
		return "Tier2"
	case Tier3:
		return "Tier3"
	case Tier4:
		return "Tier4"
	case Decertified:
		return "Decertified"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is a defined tier ordinal.
func (t Tier) Valid() bool {
	return t <= Decertified
}

// Terminal reports whether t is the decertified sentinel.
func (t Tier) Terminal() bool {
	return t == Decertified
}

// Certified reports whether t is an active certification level (Tier1
// through Tier4).
func (t Tier) Certified() bool {
	return t >= Tier1 && t <= Tier4
}

// Successor returns the next tier in the order. ok is false at the
// terminal sentinel, which has no outgoing transition.
func (t Tier) Successor() (Tier, bool) {
	if t >= Decertified {
		return Decertified, false
	}
	return t + 1, true
}

// FromBalance maps a certification token balance onto a tier.
// Balances above the decertified ordinal cannot be produced by the
// certification flows and report ok false.
func FromBalance(balance uint64) (Tier, bool) {
	if balance > uint64(Decertified) {
		return Decertified, false
	}
	return Tier(balance), true
}
