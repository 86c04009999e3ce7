package market

import (
	"fmt"

	"github.com/treelot/treelotd/internal/core/certification"
	"github.com/treelot/treelotd/internal/core/money"
	"github.com/treelot/treelotd/internal/core/registry"
	"github.com/treelot/treelotd/internal/core/types"
)

// PrepareLots turns order tokens into a concrete lot: the buyer's order
// tokens are burned, a lot representation class bound to the preparing
// manager is created and minted locked to the buyer, the lot record is
// appended with the offer's current price captured as
// OriginalPricePerTree, and the manager is paid a 10% advance from the
// contract's escrow.
type PrepareLots struct {
	Manager    types.AccountID
	Buyer      types.AccountID
	OrderIndex uint64
	OrderClass types.ClassID
	Quantity   uint64

	// LotIndex is set on success to the new lot's registry index.
	LotIndex uint64

	// LotClass is set on success to the new lot class.
	LotClass types.ClassID

	// Advance is set on success to the settlement amount paid to the
	// manager.
	Advance uint64
}

// Name implements Operation.
func (op *PrepareLots) Name() string { return "prepare_lots" }

// Validate implements Operation.
func (op *PrepareLots) Validate() error {
	if op.Manager.IsZero() || op.Buyer.IsZero() {
		return ErrZeroIdentity
	}
	if op.Quantity == 0 {
		return ErrZeroQuantity
	}
	return nil
}

// Apply implements Operation.
func (op *PrepareLots) Apply(ctx *ApplyContext) error {
	contract, err := ctx.Contract()
	if err != nil {
		return err
	}
	if err := ctx.State.Offers.Verify(op.OrderIndex, op.OrderClass); err != nil {
		return err
	}

	tier, ok := certification.FromBalance(ctx.State.Book.Balance(contract.CertificationClass, op.Manager))
	if !ok || !tier.Certified() {
		return ErrManagerNotCertified
	}

	location, err := ctx.State.Book.MetadataValue(op.OrderClass, MetaLocation)
	if err != nil {
		return err
	}
	variety, err := ctx.State.Book.MetadataValue(op.OrderClass, MetaVariety)
	if err != nil {
		return err
	}
	priceStr, err := ctx.State.Book.MetadataValue(op.OrderClass, MetaPrice)
	if err != nil {
		return err
	}
	cents, err := money.ParsePriceCents(priceStr)
	if err != nil {
		return err
	}

	cust, err := ctx.Custody()
	if err != nil {
		return err
	}
	if err := cust.BurnAndLock(op.OrderClass, op.Buyer, op.Quantity); err != nil {
		return err
	}

	lotClass, err := ctx.NextClassID("treelot/lot")
	if err != nil {
		return err
	}
	name := fmt.Sprintf("Lot - %s %s", location, variety)
	metadata := map[string]string{
		MetaLocation: location,
		MetaVariety:  variety,
		MetaManager:  op.Manager.String(),
	}
	if err := ctx.State.Book.CreateClass(lotClass, contract.Authority, 0, name, metadata, true); err != nil {
		return err
	}

	if err := cust.MintAndLock(lotClass, op.Buyer, op.Quantity); err != nil {
		return err
	}

	// The current catalog price is captured here and never re-read; later
	// catalog edits must not change what this lot settles at.
	lotIndex, err := ctx.State.Lots.Push(registry.Lot{
		Class:                lotClass,
		OriginalPricePerTree: cents,
	})
	if err != nil {
		return err
	}

	total, err := money.LotTotal(cents, op.Quantity, contract.TreesPerLot)
	if err != nil {
		return err
	}
	advance := total / 10
	err = ctx.State.Book.Transfer(contract.SettlementClass, contract.SettlementHolder, op.Manager, advance)
	if err != nil {
		return err
	}

	op.LotIndex = lotIndex
	op.LotClass = lotClass
	op.Advance = advance
	return nil
}
