package types

import (
	"encoding/hex"
	"fmt"
)

// AccountIDSize is the size of an account identifier in bytes.
const AccountIDSize = 20

// ClassIDSize is the size of an asset class identifier in bytes.
const ClassIDSize = 32

// AccountID identifies a balance holder: a buyer, a manager, the admin, or
// the contract's derived authority. It is a 160-bit hash of a public key.
type AccountID [AccountIDSize]byte

// ClassID identifies an asset class (a representation token or the
// settlement asset).
type ClassID [ClassIDSize]byte

// String returns the hex encoding of the account ID.
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero returns true if the account ID is all zeros.
func (a AccountID) IsZero() bool {
	return a == AccountID{}
}

// String returns the hex encoding of the class ID.
func (c ClassID) String() string {
	return hex.EncodeToString(c[:])
}

// IsZero returns true if the class ID is all zeros.
func (c ClassID) IsZero() bool {
	return c == ClassID{}
}

// ParseAccountID decodes a hex-encoded account ID.
func ParseAccountID(s string) (AccountID, error) {
	var id AccountID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("invalid account id %q: %w", s, err)
	}
	if len(b) != AccountIDSize {
		return id, fmt.Errorf("invalid account id length %d, want %d", len(b), AccountIDSize)
	}
	copy(id[:], b)
	return id, nil
}

// ParseClassID decodes a hex-encoded class ID.
func ParseClassID(s string) (ClassID, error) {
	var id ClassID
	b, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("invalid class id %q: %w", s, err)
	}
	if len(b) != ClassIDSize {
		return id, fmt.Errorf("invalid class id length %d, want %d", len(b), ClassIDSize)
	}
	copy(id[:], b)
	return id, nil
}
