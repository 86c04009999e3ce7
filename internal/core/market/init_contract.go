package market

import (
	"github.com/treelot/treelotd/internal/core/types"
	"github.com/treelot/treelotd/internal/crypto"
)

// InitContract creates the contract singleton: it derives the contract
// authority from the admin identity, creates the certification asset
// class, and records the settlement asset class the marketplace settles
// in. The settlement class itself is issued externally and must already
// exist in the custody book.
type InitContract struct {
	Admin           types.AccountID
	TreesPerLot     uint64
	SettlementClass types.ClassID
}

// Name implements Operation.
func (op *InitContract) Name() string { return "init_contract" }

// Validate implements Operation.
func (op *InitContract) Validate() error {
	if op.Admin.IsZero() {
		return ErrZeroIdentity
	}
	if op.TreesPerLot == 0 {
		return ErrZeroQuantity
	}
	return nil
}

// Apply implements Operation.
func (op *InitContract) Apply(ctx *ApplyContext) error {
	if ctx.State.Contract != nil {
		return ErrContractExists
	}
	if !ctx.State.Book.HasClass(op.SettlementClass) {
		return ErrSettlementClassMissing
	}

	authority := crypto.DeriveAuthority(AuthorityNamespace, op.Admin)
	contract := &Contract{
		Admin:           op.Admin,
		Authority:       authority,
		TreesPerLot:     op.TreesPerLot,
		SettlementClass: op.SettlementClass,
		SettlementHolder: authority,
	}

	certClass := crypto.DeriveClassID("treelot/certification", authority, 0)
	err := ctx.State.Book.CreateClass(certClass, authority, 0, "Manager Certification", nil, true)
	if err != nil {
		return err
	}
	contract.CertificationClass = certClass

	ctx.State.Contract = contract
	return nil
}
