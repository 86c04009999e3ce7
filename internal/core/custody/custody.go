// Package custody wraps the asset book's controller operations in the
// locking discipline the marketplace relies on: representation tokens are
// normally transfer-locked and only briefly unlocked by the controlling
// authority to mint or burn them.
package custody

import (
	"github.com/treelot/treelotd/internal/core/asset"
	"github.com/treelot/treelotd/internal/core/types"
)

// Adapter invokes custody operations under a fixed controlling authority.
// Custody errors (insufficient balance, wrong controller, uninitialized
// holder) are propagated unchanged and are fatal to the enclosing
// operation.
type Adapter struct {
	book      *asset.Book
	authority types.AccountID
}

// NewAdapter binds an adapter to a book and the contract authority.
func NewAdapter(book *asset.Book, authority types.AccountID) *Adapter {
	return &Adapter{book: book, authority: authority}
}

// Authority returns the adapter's controlling authority.
func (a *Adapter) Authority() types.AccountID {
	return a.authority
}

// WithUnlocked thaws holder's position in the class, runs body, and
// re-locks on every exit path. The holding is observably locked before and
// after the call even though it changes during it.
func (a *Adapter) WithUnlocked(class types.ClassID, holder types.AccountID, body func() error) error {
	if err := a.book.Thaw(a.authority, class, holder); err != nil {
		return err
	}
	bodyErr := body()
	if err := a.book.Freeze(a.authority, class, holder); err != nil {
		return err
	}
	return bodyErr
}

// MintAndLock increases holder's balance by amount, leaving the holding
// transfer-locked.
func (a *Adapter) MintAndLock(class types.ClassID, holder types.AccountID, amount uint64) error {
	return a.WithUnlocked(class, holder, func() error {
		return a.book.Mint(a.authority, class, holder, amount)
	})
}

// BurnAndLock decreases holder's balance by amount, leaving the holding
// transfer-locked.
func (a *Adapter) BurnAndLock(class types.ClassID, holder types.AccountID, amount uint64) error {
	return a.WithUnlocked(class, holder, func() error {
		return a.book.Burn(a.authority, class, holder, amount)
	})
}

// Unlock permanently thaws holder's position. This is the sole path that
// leaves a representation token transferable; it is used when a lot is
// confirmed.
func (a *Adapter) Unlock(class types.ClassID, holder types.AccountID) error {
	return a.book.Thaw(a.authority, class, holder)
}
