package types

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "assetregistry"
	StoreKey   = ModuleName
)

// Asset verification status. Only a MANAGED asset is eligible for pooling.
const (
	AssetStatusPending  = "pending"
	AssetStatusVerified = "verified"
	AssetStatusManaged  = "managed"
	AssetStatusRejected = "rejected"
)

// Asset categories
const (
	AssetCategoryRealEstate = "real_estate"
	AssetCategoryReceivable = "receivable"
	AssetCategoryCommodity  = "commodity"
	AssetCategoryOther      = "other"
)

// ValidCategory reports whether the category is known.
func ValidCategory(category string) bool {
	switch category {
	case AssetCategoryRealEstate, AssetCategoryReceivable, AssetCategoryCommodity, AssetCategoryOther:
		return true
	}
	return false
}

// Asset represents a registered real-world asset or trade receivable.
type Asset struct {
	AssetID       string   `json:"asset_id"`
	Custodian     string   `json:"custodian"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	ValueEstimate math.Int `json:"value_estimate"`
	Status        string   `json:"status"`
	VerifiedBy    string   `json:"verified_by,omitempty"`
	RegisteredAt  int64    `json:"registered_at"`
	UpdatedAt     int64    `json:"updated_at"`
}

// NewAsset creates a pending asset record.
func NewAsset(custodian, name, description, category string, valueEstimate math.Int) *Asset {
	now := time.Now().Unix()
	return &Asset{
		AssetID:       generateID("ast"),
		Custodian:     custodian,
		Name:          name,
		Description:   description,
		Category:      category,
		ValueEstimate: valueEstimate,
		Status:        AssetStatusPending,
		RegisteredAt:  now,
		UpdatedAt:     now,
	}
}

// IsPoolable reports whether the asset may be attached to a pool.
func (a *Asset) IsPoolable() bool {
	return a.Status == AssetStatusManaged
}

// CanTransitionTo reports whether the status machine allows moving the
// asset to the target status.
func (a *Asset) CanTransitionTo(status string) bool {
	switch a.Status {
	case AssetStatusPending:
		return status == AssetStatusVerified || status == AssetStatusRejected
	case AssetStatusVerified:
		return status == AssetStatusManaged || status == AssetStatusRejected
	default:
		return false
	}
}

// generateID generates a unique ID with a prefix
func generateID(prefix string) string {
	b := make([]byte, 8)
	rand.Read(b)
	return prefix + "-" + hex.EncodeToString(b)
}
