package market

import (
	"github.com/treelot/treelotd/internal/core/custody"
	"github.com/treelot/treelotd/internal/core/types"
	"github.com/treelot/treelotd/internal/crypto"
)

// Operation is one all-or-nothing unit of work submitted to the engine.
// Validate performs signer-independent argument checks; Apply mutates the
// context's state and must return an error on the first failed check.
// The engine discards every mutation of a failed operation.
type Operation interface {
	// Name identifies the operation in the journal and on the wire.
	Name() string

	// Validate checks the operation's own arguments.
	Validate() error

	// Apply executes the operation against ctx.State.
	Apply(ctx *ApplyContext) error
}

// ApplyContext carries the state an operation mutates. Operations run
// strictly sequentially with exclusive access; there is no locking below
// this layer.
type ApplyContext struct {
	State *State
}

// Contract returns the contract singleton.
func (ctx *ApplyContext) Contract() (*Contract, error) {
	if ctx.State.Contract == nil {
		return nil, ErrContractNotInitialized
	}
	return ctx.State.Contract, nil
}

// Custody returns an adapter bound to the contract's derived authority.
func (ctx *ApplyContext) Custody() (*custody.Adapter, error) {
	contract, err := ctx.Contract()
	if err != nil {
		return nil, err
	}
	return custody.NewAdapter(ctx.State.Book, contract.Authority), nil
}

// NextClassID derives a fresh class ID for a representation class created
// by the contract. Derivation is deterministic in (namespace, authority,
// sequence) so replaying the same operation stream yields the same IDs.
func (ctx *ApplyContext) NextClassID(namespace string) (types.ClassID, error) {
	contract, err := ctx.Contract()
	if err != nil {
		return types.ClassID{}, err
	}
	contract.ClassSeq++
	return crypto.DeriveClassID(namespace, contract.Authority, contract.ClassSeq), nil
}
