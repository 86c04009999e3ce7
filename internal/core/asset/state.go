package asset

import "github.com/treelot/treelotd/internal/core/types"

// ClassState is the exported form of one asset class, used for snapshot
// persistence and for cloning the book inside an operation boundary.
type ClassState struct {
	ID            types.ClassID
	Authority     types.AccountID
	Decimals      uint8
	Supply        uint64
	Name          string
	Metadata      map[string]string
	DefaultFrozen bool
	Closed        bool
}

// HoldingState is the exported form of one holder's position.
type HoldingState struct {
	Class   types.ClassID
	Holder  types.AccountID
	Balance uint64
	Frozen  bool
}

// Export copies the book into its exported snapshot form.
func (b *Book) Export() ([]ClassState, []HoldingState) {
	classes := make([]ClassState, 0, len(b.classes))
	var holdings []HoldingState
	for id, c := range b.classes {
		md := make(map[string]string, len(c.Metadata))
		for k, v := range c.Metadata {
			md[k] = v
		}
		classes = append(classes, ClassState{
			ID:            id,
			Authority:     c.Authority,
			Decimals:      c.Decimals,
			Supply:        c.Supply,
			Name:          c.Name,
			Metadata:      md,
			DefaultFrozen: c.DefaultFrozen,
			Closed:        c.Closed,
		})
		for holder, h := range b.holdings[id] {
			holdings = append(holdings, HoldingState{
				Class:   id,
				Holder:  holder,
				Balance: h.Balance,
				Frozen:  h.Frozen,
			})
		}
	}
	return classes, holdings
}

// FromState rebuilds a book from its exported snapshot form.
func FromState(classes []ClassState, holdings []HoldingState) *Book {
	b := NewBook()
	for _, cs := range classes {
		md := make(map[string]string, len(cs.Metadata))
		for k, v := range cs.Metadata {
			md[k] = v
		}
		b.classes[cs.ID] = &Class{
			ID:            cs.ID,
			Authority:     cs.Authority,
			Decimals:      cs.Decimals,
			Supply:        cs.Supply,
			Name:          cs.Name,
			Metadata:      md,
			DefaultFrozen: cs.DefaultFrozen,
			Closed:        cs.Closed,
		}
		b.holdings[cs.ID] = make(map[types.AccountID]*Holding)
	}
	for _, hs := range holdings {
		if _, ok := b.holdings[hs.Class]; !ok {
			b.holdings[hs.Class] = make(map[types.AccountID]*Holding)
		}
		b.holdings[hs.Class][hs.Holder] = &Holding{Balance: hs.Balance, Frozen: hs.Frozen}
	}
	return b
}

// Clone deep-copies the book. Used by the engine to buffer an operation's
// mutations until it is known to succeed.
func (b *Book) Clone() *Book {
	classes, holdings := b.Export()
	return FromState(classes, holdings)
}
