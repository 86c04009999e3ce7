package market

import (
	"github.com/treelot/treelotd/internal/core/money"
	"github.com/treelot/treelotd/internal/core/types"
)

// ConfirmLots settles an in-flight lot one way or the other.
//
// Confirmation releases the remaining 90% of the lot's total to the
// manager, marks the lot class confirmed, and permanently unlocks the
// buyer's lot tokens. No other path leaves a representation token
// transferable.
//
// Rejection decertifies the manager outright, repays the 10% advance into
// escrow from the admin's own balance, restores the buyer's order tokens,
// burns the lot tokens, closes the lot class, and removes the lot record.
type ConfirmLots struct {
	Admin      types.AccountID
	Confirmed  bool
	OfferIndex uint64
	OrderClass types.ClassID
	LotIndex   uint64
	LotClass   types.ClassID
	Manager    types.AccountID
	Buyer      types.AccountID
}

// Name implements Operation.
func (op *ConfirmLots) Name() string { return "confirm_lots" }

// Validate implements Operation.
func (op *ConfirmLots) Validate() error {
	if op.Admin.IsZero() || op.Manager.IsZero() || op.Buyer.IsZero() {
		return ErrZeroIdentity
	}
	return nil
}

// Apply implements Operation.
func (op *ConfirmLots) Apply(ctx *ApplyContext) error {
	contract, err := ctx.Contract()
	if err != nil {
		return err
	}
	if op.Admin != contract.Admin {
		return ErrNotAdmin
	}

	lot, err := ctx.State.Lots.Get(op.LotIndex)
	if err != nil {
		return err
	}
	if lot.Class != op.LotClass {
		return ErrLotClassMismatch
	}
	if err := ctx.State.Offers.Verify(op.OfferIndex, op.OrderClass); err != nil {
		return err
	}

	// Settlement is always priced at the preparation-time price, never the
	// current catalog price.
	preparedLots := ctx.State.Book.Supply(op.LotClass)
	total, err := money.LotTotal(lot.OriginalPricePerTree, preparedLots, contract.TreesPerLot)
	if err != nil {
		return err
	}

	cust, err := ctx.Custody()
	if err != nil {
		return err
	}

	if op.Confirmed {
		remaining := total * 9 / 10
		err = ctx.State.Book.Transfer(contract.SettlementClass, contract.SettlementHolder, op.Manager, remaining)
		if err != nil {
			return err
		}
		err = ctx.State.Book.SetMetadata(contract.Authority, op.LotClass, MetaState, LotStateConfirmed)
		if err != nil {
			return err
		}
		return cust.Unlock(op.LotClass, op.Buyer)
	}

	if err := decertifyManager(ctx, contract, op.Manager); err != nil {
		return err
	}

	// The advance reversal is funded by the admin, not clawed back from
	// the manager who was just decertified.
	returnFee := total / 10
	err = ctx.State.Book.Transfer(contract.SettlementClass, op.Admin, contract.SettlementHolder, returnFee)
	if err != nil {
		return err
	}

	if err := cust.MintAndLock(op.OrderClass, op.Buyer, preparedLots); err != nil {
		return err
	}
	if err := cust.BurnAndLock(op.LotClass, op.Buyer, preparedLots); err != nil {
		return err
	}
	if err := ctx.State.Book.Close(contract.Authority, op.LotClass); err != nil {
		return err
	}
	return ctx.State.Lots.Remove(op.LotIndex)
}
