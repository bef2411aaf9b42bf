package keeper

import (
	"testing"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/roles/types"
)

var (
	authorityAddr = sdk.AccAddress([]byte("authority___________")).String()
	aliceAddr     = sdk.AccAddress([]byte("alice_______________")).String()
	bobAddr       = sdk.AccAddress([]byte("bob_________________")).String()
)

func setupKeeper(t *testing.T) (sdk.Context, *Keeper) {
	t.Helper()
	key := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := testutil.DefaultContext(key, storetypes.NewTransientStoreKey("transient_test"))
	k := NewKeeper(nil, key, authorityAddr, log.NewNopLogger())
	return ctx, k
}

func TestAuthorityHoldsEveryRole(t *testing.T) {
	ctx, k := setupKeeper(t)

	for _, role := range []string{types.RoleAdmin, types.RoleManager, types.RoleAssetCustodian} {
		if !k.HasRole(ctx, authorityAddr, role) {
			t.Errorf("authority should hold %s implicitly", role)
		}
	}
	if k.HasRole(ctx, aliceAddr, types.RoleAdmin) {
		t.Error("ungrant address should hold no roles")
	}
}

func TestGrantAndRevokeRole(t *testing.T) {
	ctx, k := setupKeeper(t)

	grant, err := k.GrantRole(ctx, authorityAddr, aliceAddr, types.RoleManager)
	if err != nil {
		t.Fatalf("GrantRole: %v", err)
	}
	if grant.GrantedBy != authorityAddr {
		t.Errorf("granted_by = %s, want authority", grant.GrantedBy)
	}
	if !k.HasRole(ctx, aliceAddr, types.RoleManager) {
		t.Error("grant not effective")
	}

	// Duplicate grants are rejected
	if _, err := k.GrantRole(ctx, authorityAddr, aliceAddr, types.RoleManager); err != types.ErrGrantExists {
		t.Errorf("error = %v, want ErrGrantExists", err)
	}

	if err := k.RevokeRole(ctx, authorityAddr, aliceAddr, types.RoleManager); err != nil {
		t.Fatalf("RevokeRole: %v", err)
	}
	if k.HasRole(ctx, aliceAddr, types.RoleManager) {
		t.Error("revoke not effective")
	}
	if err := k.RevokeRole(ctx, authorityAddr, aliceAddr, types.RoleManager); err != types.ErrGrantMissing {
		t.Errorf("error = %v, want ErrGrantMissing", err)
	}
}

func TestGrantRequiresAdmin(t *testing.T) {
	ctx, k := setupKeeper(t)

	if _, err := k.GrantRole(ctx, aliceAddr, bobAddr, types.RoleManager); err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}

	// A granted ADMIN may grant onward
	if _, err := k.GrantRole(ctx, authorityAddr, aliceAddr, types.RoleAdmin); err != nil {
		t.Fatalf("GrantRole: %v", err)
	}
	if _, err := k.GrantRole(ctx, aliceAddr, bobAddr, types.RoleManager); err != nil {
		t.Errorf("admin grant failed: %v", err)
	}
}

func TestGrantUnknownRole(t *testing.T) {
	ctx, k := setupKeeper(t)

	if _, err := k.GrantRole(ctx, authorityAddr, aliceAddr, "SUPERUSER"); err != types.ErrUnknownRole {
		t.Errorf("error = %v, want ErrUnknownRole", err)
	}
}

func TestGetGrants(t *testing.T) {
	ctx, k := setupKeeper(t)

	if _, err := k.GrantRole(ctx, authorityAddr, aliceAddr, types.RoleManager); err != nil {
		t.Fatalf("GrantRole: %v", err)
	}
	if _, err := k.GrantRole(ctx, authorityAddr, aliceAddr, types.RoleAssetCustodian); err != nil {
		t.Fatalf("GrantRole: %v", err)
	}

	grants := k.GetGrants(ctx, aliceAddr)
	if len(grants) != 2 {
		t.Errorf("grants = %d, want 2", len(grants))
	}
}
