package market

import "errors"

var (
	// ErrContractNotInitialized is returned when an operation runs before
	// the contract singleton exists.
	ErrContractNotInitialized = errors.New("contract not initialized")

	// ErrContractExists is returned when initializing twice.
	ErrContractExists = errors.New("contract already initialized")

	// ErrNotAdmin is returned when an admin-only operation is signed by
	// anyone but the contract admin.
	ErrNotAdmin = errors.New("signer is not the contract admin")

	// ErrSettlementClassMissing is returned when the configured settlement
	// asset class does not exist in the custody book.
	ErrSettlementClassMissing = errors.New("settlement asset class missing")

	// ErrAdminCannotBeCertified is returned when the admin tries to
	// certify itself.
	ErrAdminCannotBeCertified = errors.New("admin cannot be certified")

	// ErrCertifyUndefined is returned when certifying to the undefined
	// tier.
	ErrCertifyUndefined = errors.New("cannot certify to the undefined tier")

	// ErrCertifyDecertified is returned when certifying directly to the
	// terminal decertified sentinel.
	ErrCertifyDecertified = errors.New("cannot certify above tier four")

	// ErrAlreadyDecertified is returned when acting on a manager already
	// at the terminal sentinel.
	ErrAlreadyDecertified = errors.New("manager already decertified")

	// ErrTierNotSequential is returned when a certification skips a tier.
	ErrTierNotSequential = errors.New("certification must increase by exactly one tier")

	// ErrManagerNotCertified is returned when an uncertified or
	// decertified manager tries to prepare lots.
	ErrManagerNotCertified = errors.New("manager is not certified")

	// ErrLotClassMismatch is returned when the registry's lot record does
	// not reference the caller-supplied lot class.
	ErrLotClassMismatch = errors.New("lot class mismatch")

	// ErrManagerMismatch is returned when the manager recorded on a lot
	// does not match the caller claim.
	ErrManagerMismatch = errors.New("manager does not match lot record")

	// ErrBuyerMismatch is returned when the buyer does not hold the lot
	// class's entire supply.
	ErrBuyerMismatch = errors.New("buyer does not hold the full lot supply")

	// ErrZeroQuantity is returned for operations with a zero quantity.
	ErrZeroQuantity = errors.New("quantity must be positive")

	// ErrZeroIdentity is returned when a required identity is the zero
	// account.
	ErrZeroIdentity = errors.New("identity must not be zero")

	// ErrMetadataIncomplete is returned when an offer is listed without
	// its descriptive fields.
	ErrMetadataIncomplete = errors.New("offer metadata incomplete")
)
