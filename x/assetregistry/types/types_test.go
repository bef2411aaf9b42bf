package types

import (
	"testing"

	"cosmossdk.io/math"
)

func TestAssetStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"pending to verified", AssetStatusPending, AssetStatusVerified, true},
		{"pending to rejected", AssetStatusPending, AssetStatusRejected, true},
		{"pending to managed skips verification", AssetStatusPending, AssetStatusManaged, false},
		{"verified to managed", AssetStatusVerified, AssetStatusManaged, true},
		{"verified to rejected", AssetStatusVerified, AssetStatusRejected, true},
		{"verified back to pending", AssetStatusVerified, AssetStatusPending, false},
		{"managed is terminal", AssetStatusManaged, AssetStatusRejected, false},
		{"rejected is terminal", AssetStatusRejected, AssetStatusVerified, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &Asset{Status: tt.from}
			if got := asset.CanTransitionTo(tt.to); got != tt.allowed {
				t.Errorf("CanTransitionTo(%s) from %s = %v, want %v", tt.to, tt.from, got, tt.allowed)
			}
		})
	}
}

func TestIsPoolable(t *testing.T) {
	for _, status := range []string{AssetStatusPending, AssetStatusVerified, AssetStatusRejected} {
		asset := &Asset{Status: status}
		if asset.IsPoolable() {
			t.Errorf("asset in status %s should not be poolable", status)
		}
	}

	managed := &Asset{Status: AssetStatusManaged}
	if !managed.IsPoolable() {
		t.Error("managed asset should be poolable")
	}
}

func TestNewAsset(t *testing.T) {
	asset := NewAsset("cosmos1custodian", "Invoice batch 42", "Q3 receivables", AssetCategoryReceivable, math.NewInt(500000))

	if asset.Status != AssetStatusPending {
		t.Errorf("new asset status = %s, want %s", asset.Status, AssetStatusPending)
	}
	if asset.AssetID == "" {
		t.Error("new asset must have an ID")
	}
	if asset.Custodian != "cosmos1custodian" {
		t.Errorf("custodian = %s", asset.Custodian)
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range []string{AssetCategoryRealEstate, AssetCategoryReceivable, AssetCategoryCommodity, AssetCategoryOther} {
		if !ValidCategory(c) {
			t.Errorf("category %s should be valid", c)
		}
	}
	if ValidCategory("equity") {
		t.Error("unknown category accepted")
	}
}
