package crypto

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/treelot/treelotd/internal/core/types"
)

// ErrRandomGeneration is returned when random number generation fails.
var ErrRandomGeneration = errors.New("failed to generate random bytes")

// RandomBytes generates n cryptographically secure random bytes.
// It uses crypto/rand which reads from the system's CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, ErrRandomGeneration
	}
	return b, nil
}

// NewIdentity generates a fresh secp256k1 keypair and returns the account ID
// derived from the compressed public key. Signer verification happens in the
// external execution environment; the engine only ever sees account IDs.
func NewIdentity() (types.AccountID, *btcec.PrivateKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return types.AccountID{}, nil, ErrRandomGeneration
	}
	return CalcAccountID(priv.PubKey().SerializeCompressed()), priv, nil
}
