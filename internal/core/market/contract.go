package market

import (
	"github.com/treelot/treelotd/internal/core/asset"
	"github.com/treelot/treelotd/internal/core/registry"
	"github.com/treelot/treelotd/internal/core/types"
)

// Metadata keys carried on representation asset classes.
const (
	MetaLocation = "location"
	MetaVariety  = "variety"
	MetaPrice    = "price"
	MetaManager  = "manager"
	MetaState    = "state"
)

// LotStateConfirmed is the value written to a lot class's state field when
// the buyer confirms delivery. Observability flag only.
const LotStateConfirmed = "1"

// AuthorityNamespace seeds the deterministic derivation of the contract's
// self-authority from the admin identity.
const AuthorityNamespace = "treelot/contract"

// Contract is the singleton configuration created once at setup. Fields
// are immutable after initialization except ClassSeq, which counts the
// representation classes the contract has created.
type Contract struct {
	// Admin is the deploying identity; admin-only flows check against it.
	Admin types.AccountID

	// Authority is the derived controller credential for every
	// representation class the contract creates.
	Authority types.AccountID

	// TreesPerLot is the trees-per-lot conversion unit.
	TreesPerLot uint64

	// CertificationClass is the non-transferable certification token; a
	// manager's balance in it equals their tier ordinal.
	CertificationClass types.ClassID

	// SettlementClass is the fungible 6-decimal payment asset.
	SettlementClass types.ClassID

	// SettlementHolder is the contract's own settlement balance holder,
	// escrowing order payments until settlement.
	SettlementHolder types.AccountID

	// ClassSeq feeds deterministic class-ID derivation for new offer and
	// lot classes.
	ClassSeq uint64
}

// State is the whole of the engine's mutable world: the contract
// singleton, both registries, and the custody book.
type State struct {
	Contract *Contract
	Offers   *registry.Offers
	Lots     *registry.Lots
	Book     *asset.Book
}

// NewState creates an empty state with no contract.
func NewState() *State {
	return &State{
		Offers: registry.NewOffers(),
		Lots:   registry.NewLots(),
		Book:   asset.NewBook(),
	}
}

// Clone deep-copies the state. The engine applies every operation to a
// clone and swaps it in only on success.
func (s *State) Clone() *State {
	out := &State{
		Offers: s.Offers.Clone(),
		Lots:   s.Lots.Clone(),
		Book:   s.Book.Clone(),
	}
	if s.Contract != nil {
		c := *s.Contract
		out.Contract = &c
	}
	return out
}
