package market

import (
	"github.com/treelot/treelotd/internal/core/certification"
	"github.com/treelot/treelotd/internal/core/types"
)

// Certify raises a manager's certification by exactly one tier. The tier
// is tracked as the manager's balance of the certification token, so a
// successful certification mints and locks exactly one unit.
type Certify struct {
	Admin   types.AccountID
	Manager types.AccountID
	NewTier certification.Tier
}

// Name implements Operation.
func (op *Certify) Name() string { return "certify" }

// Validate implements Operation.
func (op *Certify) Validate() error {
	if op.Admin.IsZero() || op.Manager.IsZero() {
		return ErrZeroIdentity
	}
	if op.Admin == op.Manager {
		return ErrAdminCannotBeCertified
	}
	if op.NewTier == certification.Undefined {
		return ErrCertifyUndefined
	}
	if op.NewTier.Terminal() || !op.NewTier.Valid() {
		return ErrCertifyDecertified
	}
	return nil
}

// Apply implements Operation.
func (op *Certify) Apply(ctx *ApplyContext) error {
	contract, err := ctx.Contract()
	if err != nil {
		return err
	}
	if op.Admin != contract.Admin {
		return ErrNotAdmin
	}

	current := ctx.State.Book.Balance(contract.CertificationClass, op.Manager)
	if current == uint64(certification.Decertified) {
		return ErrAlreadyDecertified
	}
	if current+1 != uint64(op.NewTier) {
		return ErrTierNotSequential
	}

	cust, err := ctx.Custody()
	if err != nil {
		return err
	}
	return cust.MintAndLock(contract.CertificationClass, op.Manager, 1)
}

// Decertify jumps a manager straight to the terminal decertified sentinel
// by minting however many certification units close the gap.
type Decertify struct {
	Admin   types.AccountID
	Manager types.AccountID
}

// Name implements Operation.
func (op *Decertify) Name() string { return "decertify" }

// Validate implements Operation.
func (op *Decertify) Validate() error {
	if op.Admin.IsZero() || op.Manager.IsZero() {
		return ErrZeroIdentity
	}
	if op.Admin == op.Manager {
		return ErrAdminCannotBeCertified
	}
	return nil
}

// Apply implements Operation.
func (op *Decertify) Apply(ctx *ApplyContext) error {
	contract, err := ctx.Contract()
	if err != nil {
		return err
	}
	if op.Admin != contract.Admin {
		return ErrNotAdmin
	}
	return decertifyManager(ctx, contract, op.Manager)
}

// decertifyManager performs the terminal transition shared by Decertify
// and order rejection.
func decertifyManager(ctx *ApplyContext, contract *Contract, manager types.AccountID) error {
	current := ctx.State.Book.Balance(contract.CertificationClass, manager)
	terminal := uint64(certification.Decertified)
	if current == terminal {
		return ErrAlreadyDecertified
	}

	cust, err := ctx.Custody()
	if err != nil {
		return err
	}
	return cust.MintAndLock(contract.CertificationClass, manager, terminal-current)
}
