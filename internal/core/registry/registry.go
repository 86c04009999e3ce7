// Package registry holds the two fixed-capacity lists the marketplace
// keeps on the ledger: the catalog of sellable offers and the in-flight
// lots. Both emulate the on-storage array-plus-tail-pointer layout with a
// bounded slice; the tail is the next free slot.
package registry

import (
	"errors"

	"github.com/treelot/treelotd/internal/core/types"
)

const (
	// OffersCapacity is the fixed size of the offer catalog.
	OffersCapacity = 300

	// LotsCapacity is the fixed size of the in-flight lot list.
	LotsCapacity = 10_000
)

var (
	// ErrOffersFull is returned when the offer catalog is at capacity.
	ErrOffersFull = errors.New("offers registry full")

	// ErrInvalidOfferIndex is returned for an index at or past the tail.
	ErrInvalidOfferIndex = errors.New("invalid offer index")

	// ErrOfferClassMismatch is returned when the registry's record at an
	// index does not reference the caller-supplied asset class.
	ErrOfferClassMismatch = errors.New("offer class not found at index")

	// ErrLotsFull is returned when the lot registry is at capacity.
	ErrLotsFull = errors.New("lots registry full")

	// ErrInvalidLotIndex is returned for an index at or past the tail.
	ErrInvalidLotIndex = errors.New("invalid lot index")
)

// Offer is one catalog entry: the asset class representing the offer.
// Descriptive metadata (location, variety, price) lives on the class.
type Offer struct {
	Class types.ClassID
}

// Lot is one in-flight unit of sale. OriginalPricePerTree is captured in
// cents at preparation time and never changes afterwards, protecting the
// buyer against later catalog price edits.
type Lot struct {
	Class                types.ClassID
	OriginalPricePerTree uint64
}

// Offers is the append-only offer catalog. Offers are permanent once
// listed; there is no removal operation.
type Offers struct {
	entries []Offer
}

// NewOffers creates an empty offer catalog.
func NewOffers() *Offers {
	return &Offers{}
}

// Push appends an offer and returns its index.
func (o *Offers) Push(offer Offer) (uint64, error) {
	if uint64(len(o.entries)) == OffersCapacity {
		return 0, ErrOffersFull
	}
	o.entries = append(o.entries, offer)
	return uint64(len(o.entries) - 1), nil
}

// Get returns the offer at index.
func (o *Offers) Get(index uint64) (Offer, error) {
	if index >= uint64(len(o.entries)) {
		return Offer{}, ErrInvalidOfferIndex
	}
	return o.entries[index], nil
}

// Verify confirms that index is within the tail and that the record there
// references class.
func (o *Offers) Verify(index uint64, class types.ClassID) error {
	entry, err := o.Get(index)
	if err != nil {
		return err
	}
	if entry.Class != class {
		return ErrOfferClassMismatch
	}
	return nil
}

// Tail returns the next free slot, which equals the number of offers.
func (o *Offers) Tail() uint64 {
	return uint64(len(o.entries))
}

// Entries returns a copy of the catalog in insertion order.
func (o *Offers) Entries() []Offer {
	out := make([]Offer, len(o.entries))
	copy(out, o.entries)
	return out
}

// Clone deep-copies the catalog.
func (o *Offers) Clone() *Offers {
	return &Offers{entries: o.Entries()}
}

// OffersFromEntries rebuilds a catalog from a snapshot.
func OffersFromEntries(entries []Offer) *Offers {
	out := make([]Offer, len(entries))
	copy(out, entries)
	return &Offers{entries: out}
}

// Lots is the in-flight lot list. Records are removed when an order is
// rejected; the freed slot is reused.
type Lots struct {
	entries []Lot
}

// NewLots creates an empty lot list.
func NewLots() *Lots {
	return &Lots{}
}

// Push appends a lot and returns its index.
func (l *Lots) Push(lot Lot) (uint64, error) {
	if uint64(len(l.entries)) == LotsCapacity {
		return 0, ErrLotsFull
	}
	l.entries = append(l.entries, lot)
	return uint64(len(l.entries) - 1), nil
}

// Get returns the lot at index.
func (l *Lots) Get(index uint64) (Lot, error) {
	if index >= uint64(len(l.entries)) {
		return Lot{}, ErrInvalidLotIndex
	}
	return l.entries[index], nil
}

// Remove deletes the record at index by swapping the tail record into its
// slot. O(1), but the moved record changes index: callers must not assume
// index stability across a removal.
func (l *Lots) Remove(index uint64) error {
	n := uint64(len(l.entries))
	if index >= n {
		return ErrInvalidLotIndex
	}
	l.entries[index] = l.entries[n-1]
	l.entries = l.entries[:n-1]
	return nil
}

// Tail returns the next free slot, which equals the number of lots.
func (l *Lots) Tail() uint64 {
	return uint64(len(l.entries))
}

// Entries returns a copy of the list.
func (l *Lots) Entries() []Lot {
	out := make([]Lot, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clone deep-copies the list.
func (l *Lots) Clone() *Lots {
	return &Lots{entries: l.Entries()}
}

// LotsFromEntries rebuilds a lot list from a snapshot.
func LotsFromEntries(entries []Lot) *Lots {
	out := make([]Lot, len(entries))
	copy(out, entries)
	return &Lots{entries: out}
}
