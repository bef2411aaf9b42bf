package types

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "assetpool"
	StoreKey   = ModuleName
)

// Pool lifecycle phases
const (
	PoolPhaseFunding = "funding"
	PoolPhaseActive  = "active"
	PoolPhaseMatured = "matured"
)

// Fee caps in basis points
const (
	MaxManagementFeeBps  = int64(500)  // 5%
	MaxPerformanceFeeBps = int64(2000) // 20%
	BpsDenominator       = int64(10000)
)

// Listing status
const (
	ListingStatusOpen      = "open"
	ListingStatusFilled    = "filled"
	ListingStatusCancelled = "cancelled"
)

// Pool represents an investment pool over one or more verified assets.
// A pool is either tranched (investors enter a specific tranche) or
// untranched (investors hold direct pool shares).
type Pool struct {
	PoolID      string `json:"pool_id"`
	Creator     string `json:"creator"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phase       string `json:"phase"`
	Active      bool   `json:"active"`

	// Fees in basis points
	ManagementFeeBps  int64 `json:"management_fee_bps"`
	PerformanceFeeBps int64 `json:"performance_fee_bps"`

	// Aggregate ledger totals
	TotalValue  math.Int `json:"total_value"`
	TotalShares math.Int `json:"total_shares"`

	HasTranches bool     `json:"has_tranches"`
	TrancheIDs  []string `json:"tranche_ids,omitempty"`
	AssetIDs    []string `json:"asset_ids,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewPool creates a pool in the FUNDING phase
func NewPool(creator, name, description string, managementFeeBps, performanceFeeBps int64) *Pool {
	now := time.Now().Unix()
	return &Pool{
		PoolID:            generateID("pool"),
		Creator:           creator,
		Name:              name,
		Description:       description,
		Phase:             PoolPhaseFunding,
		Active:            true,
		ManagementFeeBps:  managementFeeBps,
		PerformanceFeeBps: performanceFeeBps,
		TotalValue:        math.ZeroInt(),
		TotalShares:       math.ZeroInt(),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ValidateFees checks the fee caps
func ValidateFees(managementFeeBps, performanceFeeBps int64) error {
	if managementFeeBps < 0 || managementFeeBps > MaxManagementFeeBps {
		return ErrFeeTooHigh
	}
	if performanceFeeBps < 0 || performanceFeeBps > MaxPerformanceFeeBps {
		return ErrFeeTooHigh
	}
	return nil
}

// HasTranche reports whether the tranche belongs to this pool
func (p *Pool) HasTranche(trancheID string) bool {
	for _, id := range p.TrancheIDs {
		if id == trancheID {
			return true
		}
	}
	return false
}

// HasAsset reports whether the asset is attached to this pool
func (p *Pool) HasAsset(assetID string) bool {
	for _, id := range p.AssetIDs {
		if id == assetID {
			return true
		}
	}
	return false
}

// Position is one investor's holding in a scope. A scope is a pool ID for
// untranched pools or a tranche ID for tranched pools. Invested tracks
// cumulative principal and is used only to prorate partial redemptions;
// redemption value always comes from the share ledger.
type Position struct {
	Scope     string   `json:"scope"`
	Investor  string   `json:"investor"`
	Shares    math.Int `json:"shares"`
	Invested  math.Int `json:"invested"`
	UpdatedAt int64    `json:"updated_at"`
}

// NewPosition creates an empty position for a scope
func NewPosition(scope, investor string) *Position {
	return &Position{
		Scope:    scope,
		Investor: investor,
		Shares:   math.ZeroInt(),
		Invested: math.ZeroInt(),
	}
}

// DeductInvested reduces the cumulative-invested figure in proportion to
// the shares being redeemed, flooring. Never goes negative.
func (p *Position) DeductInvested(redeemedShares, priorShares math.Int) {
	if priorShares.IsZero() {
		return
	}
	deduction := p.Invested.Mul(redeemedShares).Quo(priorShares)
	if deduction.GT(p.Invested) {
		deduction = p.Invested
	}
	p.Invested = p.Invested.Sub(deduction)
}

// Listing is an open offer to sell shares in a scope at a fixed price per
// share, settled in the payment token.
type Listing struct {
	ListingID     string   `json:"listing_id"`
	PoolID        string   `json:"pool_id"`
	Scope         string   `json:"scope"`
	Seller        string   `json:"seller"`
	Shares        math.Int `json:"shares"`
	PricePerShare math.Int `json:"price_per_share"`
	Status        string   `json:"status"`
	CreatedAt     int64    `json:"created_at"`
	UpdatedAt     int64    `json:"updated_at"`
}

// NewListing creates an open listing
func NewListing(poolID, scope, seller string, shares, pricePerShare math.Int) *Listing {
	now := time.Now().Unix()
	return &Listing{
		ListingID:     generateID("lst"),
		PoolID:        poolID,
		Scope:         scope,
		Seller:        seller,
		Shares:        shares,
		PricePerShare: pricePerShare,
		Status:        ListingStatusOpen,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// generateID generates a unique ID with a prefix
func generateID(prefix string) string {
	b := make([]byte, 8)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}
