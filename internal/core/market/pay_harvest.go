package market

import (
	"github.com/treelot/treelotd/internal/core/money"
	"github.com/treelot/treelotd/internal/core/types"
)

// PayHarvest distributes post-sale profit for a harvested lot: half to the
// buyer, a quarter to the admin, and a quarter plus the harvest fee to the
// manager, all funded by the designated payer. Profit and fee are
// converted to settlement units first and the split divides the unit
// amount.
type PayHarvest struct {
	Payer    types.AccountID
	LotIndex uint64
	LotClass types.ClassID
	Manager  types.AccountID
	Buyer    types.AccountID

	// HarvestFee and Profit are quoted in cents.
	HarvestFee uint64
	Profit     uint64
}

// Name implements Operation.
func (op *PayHarvest) Name() string { return "pay_harvest" }

// Validate implements Operation.
func (op *PayHarvest) Validate() error {
	if op.Payer.IsZero() || op.Manager.IsZero() || op.Buyer.IsZero() {
		return ErrZeroIdentity
	}
	return nil
}

// Apply implements Operation.
func (op *PayHarvest) Apply(ctx *ApplyContext) error {
	contract, err := ctx.Contract()
	if err != nil {
		return err
	}

	lot, err := ctx.State.Lots.Get(op.LotIndex)
	if err != nil {
		return err
	}
	if lot.Class != op.LotClass {
		return ErrLotClassMismatch
	}

	recorded, err := ctx.State.Book.MetadataValue(op.LotClass, MetaManager)
	if err != nil {
		return err
	}
	if recorded != op.Manager.String() {
		return ErrManagerMismatch
	}

	// Sole-owner invariant: the buyer must hold the lot's entire supply.
	if ctx.State.Book.Balance(op.LotClass, op.Buyer) != ctx.State.Book.Supply(op.LotClass) {
		return ErrBuyerMismatch
	}

	profitUnits, err := money.Mul(op.Profit, money.UnitsPerCent)
	if err != nil {
		return err
	}
	feeUnits, err := money.Mul(op.HarvestFee, money.UnitsPerCent)
	if err != nil {
		return err
	}

	payouts := []struct {
		to     types.AccountID
		amount uint64
	}{
		{op.Buyer, profitUnits / 2},
		{contract.Admin, profitUnits / 4},
		{op.Manager, profitUnits/4 + feeUnits},
	}
	for _, p := range payouts {
		err = ctx.State.Book.Transfer(contract.SettlementClass, op.Payer, p.to, p.amount)
		if err != nil {
			return err
		}
	}
	return nil
}
