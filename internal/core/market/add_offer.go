package market

import (
	"fmt"

	"github.com/treelot/treelotd/internal/core/registry"
	"github.com/treelot/treelotd/internal/core/types"
)

// AddOffer lists a new sellable offer: it creates the offer's
// representation asset class carrying the descriptive metadata and appends
// the catalog record. Offers are permanent once listed.
type AddOffer struct {
	Admin    types.AccountID
	Location string
	Variety  string

	// Price is the price per tree in cents, kept as a metadata string the
	// way the catalog stores it.
	Price string

	// Index is set on success to the new offer's catalog index.
	Index uint64

	// Class is set on success to the new offer class.
	Class types.ClassID
}

// Name implements Operation.
func (op *AddOffer) Name() string { return "add_offer" }

// Validate implements Operation.
func (op *AddOffer) Validate() error {
	if op.Admin.IsZero() {
		return ErrZeroIdentity
	}
	if op.Location == "" || op.Variety == "" {
		return ErrMetadataIncomplete
	}
	return nil
}

// Apply implements Operation.
func (op *AddOffer) Apply(ctx *ApplyContext) error {
	contract, err := ctx.Contract()
	if err != nil {
		return err
	}
	if op.Admin != contract.Admin {
		return ErrNotAdmin
	}

	classID, err := ctx.NextClassID("treelot/offer")
	if err != nil {
		return err
	}

	name := fmt.Sprintf("Lot Offer - %s %s", op.Location, op.Variety)
	metadata := map[string]string{
		MetaLocation: op.Location,
		MetaVariety:  op.Variety,
		MetaPrice:    op.Price,
	}
	if err := ctx.State.Book.CreateClass(classID, contract.Authority, 0, name, metadata, true); err != nil {
		return err
	}

	index, err := ctx.State.Offers.Push(registry.Offer{Class: classID})
	if err != nil {
		return err
	}

	op.Index = index
	op.Class = classID
	return nil
}
