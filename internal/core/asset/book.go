// Package asset models the external asset custody service at its
// interface: named asset classes with a sole controlling authority,
// per-holder balances, and a transfer lock ("freeze") per holding.
//
// Representation classes are created with DefaultFrozen set, so every
// holding starts locked and only the controller can thaw it. The
// settlement asset is an ordinary unfrozen class.
package asset

import (
	"fmt"

	"github.com/treelot/treelotd/internal/core/types"
)

// Class describes one asset class held by the book.
type Class struct {
	ID types.ClassID

	// Authority is the sole controller: only it may mint, burn, freeze,
	// thaw, update metadata, or close the class.
	Authority types.AccountID

	// Decimals is the display precision. Representation tokens use 0,
	// the settlement asset uses 6.
	Decimals uint8

	// Supply is the total number of units in circulation.
	Supply uint64

	// Name is a human-readable label, e.g. "Lot Offer - Kirinyaga Coffee".
	Name string

	// Metadata holds descriptive key/value strings (location, variety,
	// price, manager, state).
	Metadata map[string]string

	// DefaultFrozen makes new holdings of this class start transfer-locked.
	DefaultFrozen bool

	// Closed marks a destroyed class. Closed classes reject all mutation.
	Closed bool
}

// Holding is one holder's position in a class.
type Holding struct {
	Balance uint64
	Frozen  bool
}

// Book is the in-memory custody ledger: all classes and all holdings.
// The book performs the controller and lock checks the external custody
// service would; callers must treat every returned error as fatal to the
// enclosing operation.
type Book struct {
	classes  map[types.ClassID]*Class
	holdings map[types.ClassID]map[types.AccountID]*Holding
}

// NewBook creates an empty custody book.
func NewBook() *Book {
	return &Book{
		classes:  make(map[types.ClassID]*Class),
		holdings: make(map[types.ClassID]map[types.AccountID]*Holding),
	}
}

// CreateClass registers a new asset class controlled by authority.
func (b *Book) CreateClass(id types.ClassID, authority types.AccountID, decimals uint8, name string, metadata map[string]string, defaultFrozen bool) error {
	if _, ok := b.classes[id]; ok {
		return fmt.Errorf("create class %s: %w", id, ErrClassExists)
	}
	md := make(map[string]string, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	b.classes[id] = &Class{
		ID:            id,
		Authority:     authority,
		Decimals:      decimals,
		Name:          name,
		Metadata:      md,
		DefaultFrozen: defaultFrozen,
	}
	b.holdings[id] = make(map[types.AccountID]*Holding)
	return nil
}

// class returns an open class or an error.
func (b *Book) class(id types.ClassID) (*Class, error) {
	c, ok := b.classes[id]
	if !ok {
		return nil, fmt.Errorf("class %s: %w", id, ErrClassNotFound)
	}
	if c.Closed {
		return nil, fmt.Errorf("class %s: %w", id, ErrClassClosed)
	}
	return c, nil
}

// controlled returns an open class after verifying the caller holds its
// controlling authority.
func (b *Book) controlled(controller types.AccountID, id types.ClassID) (*Class, error) {
	c, err := b.class(id)
	if err != nil {
		return nil, err
	}
	if c.Authority != controller {
		return nil, fmt.Errorf("class %s: %w", id, ErrNotController)
	}
	return c, nil
}

// holding returns the holder's position, creating it on first use.
// New holdings inherit the class's default lock state.
func (b *Book) holding(c *Class, holder types.AccountID) *Holding {
	h, ok := b.holdings[c.ID][holder]
	if !ok {
		h = &Holding{Frozen: c.DefaultFrozen}
		b.holdings[c.ID][holder] = h
	}
	return h
}

// Mint increases holder's balance by amount. The holding must be thawed.
func (b *Book) Mint(controller types.AccountID, id types.ClassID, holder types.AccountID, amount uint64) error {
	c, err := b.controlled(controller, id)
	if err != nil {
		return err
	}
	h := b.holding(c, holder)
	if h.Frozen {
		return fmt.Errorf("mint %d of %s: %w", amount, id, ErrHoldingFrozen)
	}
	h.Balance += amount
	c.Supply += amount
	return nil
}

// Burn decreases holder's balance by amount. The holding must be thawed.
func (b *Book) Burn(controller types.AccountID, id types.ClassID, holder types.AccountID, amount uint64) error {
	c, err := b.controlled(controller, id)
	if err != nil {
		return err
	}
	h, ok := b.holdings[id][holder]
	if !ok {
		return fmt.Errorf("burn from %s: %w", holder, ErrHoldingNotFound)
	}
	if h.Frozen {
		return fmt.Errorf("burn %d of %s: %w", amount, id, ErrHoldingFrozen)
	}
	if h.Balance < amount {
		return fmt.Errorf("burn %d of %s, balance %d: %w", amount, id, h.Balance, ErrInsufficientBalance)
	}
	h.Balance -= amount
	c.Supply -= amount
	return nil
}

// Freeze transfer-locks holder's position in the class.
func (b *Book) Freeze(controller types.AccountID, id types.ClassID, holder types.AccountID) error {
	c, err := b.controlled(controller, id)
	if err != nil {
		return err
	}
	b.holding(c, holder).Frozen = true
	return nil
}

// Thaw removes the transfer lock from holder's position in the class.
func (b *Book) Thaw(controller types.AccountID, id types.ClassID, holder types.AccountID) error {
	c, err := b.controlled(controller, id)
	if err != nil {
		return err
	}
	b.holding(c, holder).Frozen = false
	return nil
}

// Transfer moves amount between two holders. Both sides must be thawed.
// The from holder's authorization is verified by the execution environment
// before the operation ever reaches the book.
func (b *Book) Transfer(id types.ClassID, from, to types.AccountID, amount uint64) error {
	c, err := b.class(id)
	if err != nil {
		return err
	}
	src, ok := b.holdings[id][from]
	if !ok {
		return fmt.Errorf("transfer from %s: %w", from, ErrHoldingNotFound)
	}
	if src.Frozen {
		return fmt.Errorf("transfer from %s: %w", from, ErrHoldingFrozen)
	}
	if src.Balance < amount {
		return fmt.Errorf("transfer %d of %s, balance %d: %w", amount, id, src.Balance, ErrInsufficientBalance)
	}
	dst := b.holding(c, to)
	if dst.Frozen {
		return fmt.Errorf("transfer to %s: %w", to, ErrHoldingFrozen)
	}
	src.Balance -= amount
	dst.Balance += amount
	return nil
}

// SetMetadata updates one descriptive field on the class.
func (b *Book) SetMetadata(controller types.AccountID, id types.ClassID, key, value string) error {
	c, err := b.controlled(controller, id)
	if err != nil {
		return err
	}
	c.Metadata[key] = value
	return nil
}

// MetadataValue reads one descriptive field from the class.
func (b *Book) MetadataValue(id types.ClassID, key string) (string, error) {
	c, err := b.class(id)
	if err != nil {
		return "", err
	}
	v, ok := c.Metadata[key]
	if !ok {
		return "", fmt.Errorf("class %s key %q: %w", id, key, ErrMetadataKeyMissing)
	}
	return v, nil
}

// Close destroys a class. All units must have been burned first.
func (b *Book) Close(controller types.AccountID, id types.ClassID) error {
	c, err := b.controlled(controller, id)
	if err != nil {
		return err
	}
	if c.Supply != 0 {
		return fmt.Errorf("close %s, supply %d: %w", id, c.Supply, ErrSupplyOutstanding)
	}
	c.Closed = true
	return nil
}

// Balance returns holder's balance in the class, zero if uninitialized.
func (b *Book) Balance(id types.ClassID, holder types.AccountID) uint64 {
	h, ok := b.holdings[id][holder]
	if !ok {
		return 0
	}
	return h.Balance
}

// Frozen reports whether holder's position in the class is transfer-locked.
// An uninitialized holding reports the class default.
func (b *Book) Frozen(id types.ClassID, holder types.AccountID) bool {
	h, ok := b.holdings[id][holder]
	if ok {
		return h.Frozen
	}
	c, ok := b.classes[id]
	return ok && c.DefaultFrozen
}

// Supply returns the class's total circulating supply.
func (b *Book) Supply(id types.ClassID) uint64 {
	c, ok := b.classes[id]
	if !ok {
		return 0
	}
	return c.Supply
}

// HasClass reports whether the class exists and is open.
func (b *Book) HasClass(id types.ClassID) bool {
	c, ok := b.classes[id]
	return ok && !c.Closed
}
