package types

import (
	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "settlement"
	StoreKey   = ModuleName
)

// Settlement tracks the payment and distribution watermarks for one pool.
// PaymentEpoch increments on every recorded payment; DistributedEpoch
// trails it and catches up on distribution, which is what makes
// distribution idempotent per recorded payment.
type Settlement struct {
	PoolID           string   `json:"pool_id"`
	PendingAmount    math.Int `json:"pending_amount"`
	PaymentEpoch     int64    `json:"payment_epoch"`
	DistributedEpoch int64    `json:"distributed_epoch"`
	TotalRecorded    math.Int `json:"total_recorded"`
	TotalDistributed math.Int `json:"total_distributed"`
	UpdatedAt        int64    `json:"updated_at"`
}

// NewSettlement creates a zeroed settlement record for a pool
func NewSettlement(poolID string) *Settlement {
	return &Settlement{
		PoolID:           poolID,
		PendingAmount:    math.ZeroInt(),
		TotalRecorded:    math.ZeroInt(),
		TotalDistributed: math.ZeroInt(),
	}
}

// HasPending reports whether an undistributed payment exists
func (s *Settlement) HasPending() bool {
	return s.PaymentEpoch > s.DistributedEpoch && s.PendingAmount.IsPositive()
}
