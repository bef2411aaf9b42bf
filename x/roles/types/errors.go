package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrUnauthorized = errors.Register(ModuleName, 1, "unauthorized")
	ErrUnknownRole  = errors.Register(ModuleName, 2, "unknown role")
	ErrGrantExists  = errors.Register(ModuleName, 3, "role already granted")
	ErrGrantMissing = errors.Register(ModuleName, 4, "role not granted")
)
