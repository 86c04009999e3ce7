package crypto

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/decred/dcrd/crypto/ripemd160"

	"github.com/treelot/treelotd/internal/core/types"
)

// CalcAccountID computes the account ID from a public key.
// The account ID is a 160-bit identifier computed as RIPEMD160(SHA256(publicKey)).
//
// Using two different hashes avoids length extension attacks, and RIPEMD160
// is the only hash generally considered safe at 160 bits.
func CalcAccountID(publicKey []byte) types.AccountID {
	sha := sha256.Sum256(publicKey)

	h := ripemd160.New()
	h.Write(sha[:])
	sum := h.Sum(nil)

	var id types.AccountID
	copy(id[:], sum)
	return id
}

// DeriveAuthority deterministically derives the controller identity for a
// namespace owned by admin. The same (namespace, admin) pair always yields
// the same authority, so callers never need to persist it.
func DeriveAuthority(namespace string, admin types.AccountID) types.AccountID {
	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write(admin[:])
	return CalcAccountID(h.Sum(nil))
}

// DeriveClassID deterministically derives an asset class ID from the
// controlling authority and a per-contract sequence number, in the same
// spirit as ledger keylets: SHA256(namespace || authority || seq).
func DeriveClassID(namespace string, authority types.AccountID, seq uint64) types.ClassID {
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], seq)

	h := sha256.New()
	h.Write([]byte(namespace))
	h.Write(authority[:])
	h.Write(seqBytes[:])

	var id types.ClassID
	copy(id[:], h.Sum(nil))
	return id
}
