package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrTrancheNotFound = errors.Register(ModuleName, 1, "tranche not found")
	ErrInvalidSplit    = errors.Register(ModuleName, 2, "tranche splits must sum to exactly 10000 bps")
	ErrInvalidClass    = errors.Register(ModuleName, 3, "unknown tranche class")
	ErrUnauthorized    = errors.Register(ModuleName, 4, "unauthorized")
	ErrTrancheInactive = errors.Register(ModuleName, 5, "tranche is not active")
	ErrInvalidYield    = errors.Register(ModuleName, 6, "expected yield must be non-negative")
)
