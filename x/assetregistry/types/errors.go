package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrAssetNotFound     = errors.Register(ModuleName, 1, "asset not found")
	ErrUnauthorized      = errors.Register(ModuleName, 2, "unauthorized")
	ErrInvalidTransition = errors.Register(ModuleName, 3, "invalid asset status transition")
	ErrInvalidValue      = errors.Register(ModuleName, 4, "asset value estimate must be positive")
	ErrInvalidCategory   = errors.Register(ModuleName, 5, "unknown asset category")
)
