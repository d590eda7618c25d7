package ledger

import "errors"

// Transfer errors.
var (
	// ErrUnknownTransferType is returned when a transfer carries a type
	// outside the closed whitelist. This is a migration or configuration
	// bug, never a runtime business condition.
	ErrUnknownTransferType = errors.New("ledger: unknown transfer type")

	// ErrNegativeValue is returned when a transfer carries a negative value.
	ErrNegativeValue = errors.New("ledger: transfer value must be non-negative")

	ErrTransferNotFound = errors.New("ledger: transfer not found")
)

// Owner and account errors.
var (
	ErrOwnerNotFound   = errors.New("ledger: owner not found")
	ErrAccountNotFound = errors.New("ledger: account not found")
	ErrUnknownRole     = errors.New("ledger: owner has no account with that role")
)

// Plan and cooperation errors.
var (
	ErrPlanNotFound        = errors.New("ledger: plan not found")
	ErrCooperationNotFound = errors.New("ledger: cooperation not found")
)

// Generic errors.
var (
	ErrAlreadyExists = errors.New("ledger: entity already exists")
	ErrInvalidInput  = errors.New("ledger: invalid input")
	ErrStoreNotReady = errors.New("ledger: store not ready")
)

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrTransferNotFound) ||
		errors.Is(err, ErrOwnerNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrPlanNotFound) ||
		errors.Is(err, ErrCooperationNotFound)
}
