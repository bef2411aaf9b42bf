package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetregistry/types"
	rolestypes "github.com/openrwa/rwa-chain/x/roles/types"
)

var (
	custodianAddr = sdk.AccAddress([]byte("custodian___________")).String()
	managerAddr   = sdk.AccAddress([]byte("manager_____________")).String()
	strangerAddr  = sdk.AccAddress([]byte("stranger____________")).String()
)

type mockRoles struct{}

func (mockRoles) HasRole(ctx sdk.Context, addr, role string) bool {
	switch role {
	case rolestypes.RoleAssetCustodian:
		return addr == custodianAddr
	case rolestypes.RoleManager:
		return addr == managerAddr
	}
	return false
}

func setupKeeper(t *testing.T) (sdk.Context, *Keeper) {
	t.Helper()
	key := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := testutil.DefaultContext(key, storetypes.NewTransientStoreKey("transient_test"))
	k := NewKeeper(nil, key, mockRoles{}, log.NewNopLogger())
	return ctx, k
}

func registerAsset(t *testing.T, ctx sdk.Context, k *Keeper) *types.Asset {
	t.Helper()
	asset, err := k.RegisterAsset(ctx, custodianAddr, "Invoice batch 42", "Q3 receivables", types.AssetCategoryReceivable, math.NewInt(500000))
	if err != nil {
		t.Fatalf("RegisterAsset: %v", err)
	}
	return asset
}

func TestRegisterAssetGated(t *testing.T) {
	ctx, k := setupKeeper(t)

	asset := registerAsset(t, ctx, k)
	if asset.Status != types.AssetStatusPending {
		t.Errorf("status = %s, want pending", asset.Status)
	}

	if _, err := k.RegisterAsset(ctx, strangerAddr, "X", "", types.AssetCategoryOther, math.NewInt(1)); err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
	if _, err := k.RegisterAsset(ctx, custodianAddr, "X", "", "equity", math.NewInt(1)); err != types.ErrInvalidCategory {
		t.Errorf("error = %v, want ErrInvalidCategory", err)
	}
	if _, err := k.RegisterAsset(ctx, custodianAddr, "X", "", types.AssetCategoryOther, math.ZeroInt()); err != types.ErrInvalidValue {
		t.Errorf("error = %v, want ErrInvalidValue", err)
	}
}

func TestVerificationLifecycle(t *testing.T) {
	ctx, k := setupKeeper(t)
	asset := registerAsset(t, ctx, k)

	// Custodian cannot mark managed before verification
	if _, err := k.SetAssetManaged(ctx, custodianAddr, asset.AssetID); err != types.ErrInvalidTransition {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}

	verified, err := k.VerifyAsset(ctx, managerAddr, asset.AssetID)
	if err != nil {
		t.Fatalf("VerifyAsset: %v", err)
	}
	if verified.Status != types.AssetStatusVerified || verified.VerifiedBy != managerAddr {
		t.Errorf("verified = %s by %s", verified.Status, verified.VerifiedBy)
	}

	// Only the custodian may mark managed
	if _, err := k.SetAssetManaged(ctx, managerAddr, asset.AssetID); err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}

	managed, err := k.SetAssetManaged(ctx, custodianAddr, asset.AssetID)
	if err != nil {
		t.Fatalf("SetAssetManaged: %v", err)
	}
	if managed.Status != types.AssetStatusManaged {
		t.Errorf("status = %s, want managed", managed.Status)
	}

	poolable, err := k.IsPoolable(ctx, asset.AssetID)
	if err != nil {
		t.Fatalf("IsPoolable: %v", err)
	}
	if !poolable {
		t.Error("managed asset should be poolable")
	}

	// Managed is terminal
	if _, err := k.RejectAsset(ctx, managerAddr, asset.AssetID, "late"); err != types.ErrInvalidTransition {
		t.Errorf("error = %v, want ErrInvalidTransition", err)
	}
}

func TestRejectAsset(t *testing.T) {
	ctx, k := setupKeeper(t)
	asset := registerAsset(t, ctx, k)

	if _, err := k.RejectAsset(ctx, strangerAddr, asset.AssetID, "nope"); err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}

	rejected, err := k.RejectAsset(ctx, managerAddr, asset.AssetID, "insufficient evidence")
	if err != nil {
		t.Fatalf("RejectAsset: %v", err)
	}
	if rejected.Status != types.AssetStatusRejected {
		t.Errorf("status = %s, want rejected", rejected.Status)
	}

	poolable, err := k.IsPoolable(ctx, asset.AssetID)
	if err != nil {
		t.Fatalf("IsPoolable: %v", err)
	}
	if poolable {
		t.Error("rejected asset must not be poolable")
	}
}

func TestGetAssetNotFound(t *testing.T) {
	ctx, k := setupKeeper(t)

	if _, err := k.GetAsset(ctx, "ast-missing"); err != types.ErrAssetNotFound {
		t.Errorf("error = %v, want ErrAssetNotFound", err)
	}
	if _, err := k.IsPoolable(ctx, "ast-missing"); err != types.ErrAssetNotFound {
		t.Errorf("error = %v, want ErrAssetNotFound", err)
	}
}
