package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrNothingToDistribute = errors.Register(ModuleName, 1, "no recorded payment awaiting distribution")
	ErrNotMatured          = errors.Register(ModuleName, 2, "pool has undistributed payments")
	ErrUnauthorized        = errors.Register(ModuleName, 3, "unauthorized")
	ErrAlreadyMatured      = errors.Register(ModuleName, 4, "pool is already matured")
	ErrInvalidAmount       = errors.Register(ModuleName, 5, "amount must be positive")
)
