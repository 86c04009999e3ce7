package asset

import "errors"

var (
	// ErrClassExists is returned when creating a class whose ID is taken.
	ErrClassExists = errors.New("asset class already exists")

	// ErrClassNotFound is returned when a class ID is unknown.
	ErrClassNotFound = errors.New("asset class not found")

	// ErrClassClosed is returned when operating on a closed class.
	ErrClassClosed = errors.New("asset class is closed")

	// ErrNotController is returned when a caller other than the class's
	// sole controlling authority attempts a controller operation.
	ErrNotController = errors.New("caller is not the class controller")

	// ErrHoldingNotFound is returned when reading a holder that was never
	// initialized for the class.
	ErrHoldingNotFound = errors.New("holding not initialized")

	// ErrHoldingFrozen is returned when mutating a transfer-locked holding.
	ErrHoldingFrozen = errors.New("holding is frozen")

	// ErrInsufficientBalance is returned when a burn or transfer exceeds
	// the holder's balance.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrSupplyOutstanding is returned when closing a class that still has
	// units in circulation.
	ErrSupplyOutstanding = errors.New("class supply is not zero")

	// ErrMetadataKeyMissing is returned when an expected metadata key is
	// absent from a class.
	ErrMetadataKeyMissing = errors.New("metadata key missing")
)
