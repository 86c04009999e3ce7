package market

import (
	"github.com/treelot/treelotd/internal/core/money"
	"github.com/treelot/treelotd/internal/core/types"
)

// PlaceOrder escrows the buyer's payment and issues order tokens: the full
// price moves from the buyer's settlement balance into the contract's, and
// quantity units of the offer's representation class are minted and locked
// to the buyer.
type PlaceOrder struct {
	Buyer      types.AccountID
	OfferIndex uint64
	OfferClass types.ClassID
	Quantity   uint64

	// Total is set on success to the escrowed settlement amount.
	Total uint64
}

// Name implements Operation.
func (op *PlaceOrder) Name() string { return "place_order" }

// Validate implements Operation.
func (op *PlaceOrder) Validate() error {
	if op.Buyer.IsZero() {
		return ErrZeroIdentity
	}
	if op.Quantity == 0 {
		return ErrZeroQuantity
	}
	return nil
}

// Apply implements Operation.
func (op *PlaceOrder) Apply(ctx *ApplyContext) error {
	contract, err := ctx.Contract()
	if err != nil {
		return err
	}
	if err := ctx.State.Offers.Verify(op.OfferIndex, op.OfferClass); err != nil {
		return err
	}

	priceStr, err := ctx.State.Book.MetadataValue(op.OfferClass, MetaPrice)
	if err != nil {
		return err
	}
	cents, err := money.ParsePriceCents(priceStr)
	if err != nil {
		return err
	}

	total, err := money.LotTotal(cents, op.Quantity, contract.TreesPerLot)
	if err != nil {
		return err
	}
	err = ctx.State.Book.Transfer(contract.SettlementClass, op.Buyer, contract.SettlementHolder, total)
	if err != nil {
		return err
	}

	cust, err := ctx.Custody()
	if err != nil {
		return err
	}
	if err := cust.MintAndLock(op.OfferClass, op.Buyer, op.Quantity); err != nil {
		return err
	}

	op.Total = total
	return nil
}
