package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrInvalidAmount             = errors.Register(ModuleName, 1, "amount must be positive")
	ErrFeeTooHigh                = errors.Register(ModuleName, 2, "fee exceeds maximum")
	ErrPoolNotFound              = errors.Register(ModuleName, 3, "pool not found")
	ErrNotEligible               = errors.Register(ModuleName, 4, "asset is not eligible for pooling")
	ErrAlreadyPooled             = errors.Register(ModuleName, 5, "asset is already attached to a pool")
	ErrUnauthorized              = errors.Register(ModuleName, 6, "unauthorized")
	ErrPoolInactive              = errors.Register(ModuleName, 7, "pool is not active")
	ErrInsufficientShares        = errors.Register(ModuleName, 8, "insufficient shares")
	ErrDivisionByZero            = errors.Register(ModuleName, 9, "scope has no shares outstanding")
	ErrReentrancyBlocked         = errors.Register(ModuleName, 10, "operation already in flight for this scope")
	ErrCounterpartyPaymentFailed = errors.Register(ModuleName, 11, "counterparty payment transfer failed")
	ErrTranchesAlreadyAttached   = errors.Register(ModuleName, 12, "pool already has tranches")
	ErrTrancheNotInPool          = errors.Register(ModuleName, 13, "tranche does not belong to pool")
	ErrListingNotFound           = errors.Register(ModuleName, 14, "listing not found")
	ErrListingNotOpen            = errors.Register(ModuleName, 15, "listing is not open")
	ErrInvalidPrice              = errors.Register(ModuleName, 16, "price per share must be positive")
	ErrSelfTrade                 = errors.Register(ModuleName, 17, "cannot trade shares with yourself")
)
