package keeper

import (
	"context"
	"fmt"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pooltypes "github.com/openrwa/rwa-chain/x/assetpool/types"
	tranchekeeper "github.com/openrwa/rwa-chain/x/tranche/keeper"
	tranchetypes "github.com/openrwa/rwa-chain/x/tranche/types"
)

// Test addresses
var (
	managerAddr  = sdk.AccAddress([]byte("manager_____________")).String()
	investorAddr = sdk.AccAddress([]byte("investor_a__________")).String()
	investorB    = sdk.AccAddress([]byte("investor_b__________")).String()
)

// mockBank is an in-memory payment-token collaborator that can be told to
// fail, for verifying transfer-failure atomicity.
type mockBank struct {
	failSend bool
	failMint bool
	failBurn bool

	sendsToModule   int
	sendsFromModule int
	transfers       int
	minted          map[string]math.Int
	burned          map[string]math.Int
}

func newMockBank() *mockBank {
	return &mockBank{
		minted: make(map[string]math.Int),
		burned: make(map[string]math.Int),
	}
}

func (m *mockBank) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	if m.failSend {
		return fmt.Errorf("transfer rejected")
	}
	m.sendsToModule++
	return nil
}

func (m *mockBank) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	if m.failSend {
		return fmt.Errorf("transfer rejected")
	}
	m.sendsFromModule++
	return nil
}

func (m *mockBank) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	if m.failSend {
		return fmt.Errorf("transfer rejected")
	}
	m.transfers++
	return nil
}

func (m *mockBank) MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	if m.failMint {
		return fmt.Errorf("mint rejected")
	}
	for _, coin := range amt {
		prev, ok := m.minted[coin.Denom]
		if !ok {
			prev = math.ZeroInt()
		}
		m.minted[coin.Denom] = prev.Add(coin.Amount)
	}
	return nil
}

func (m *mockBank) BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	if m.failBurn {
		return fmt.Errorf("burn rejected")
	}
	for _, coin := range amt {
		prev, ok := m.burned[coin.Denom]
		if !ok {
			prev = math.ZeroInt()
		}
		m.burned[coin.Denom] = prev.Add(coin.Amount)
	}
	return nil
}

// mockRoles grants roles from a fixed table
type mockRoles struct {
	grants map[string]bool
}

func newMockRoles() *mockRoles {
	return &mockRoles{grants: make(map[string]bool)}
}

func (m *mockRoles) grant(addr, role string) {
	m.grants[addr+":"+role] = true
}

func (m *mockRoles) HasRole(ctx sdk.Context, addr, role string) bool {
	return m.grants[addr+":"+role]
}

// mockAssets reports eligibility from a fixed table
type mockAssets struct {
	poolable map[string]bool
}

func newMockAssets() *mockAssets {
	return &mockAssets{poolable: make(map[string]bool)}
}

func (m *mockAssets) IsPoolable(ctx sdk.Context, assetID string) (bool, error) {
	status, ok := m.poolable[assetID]
	if !ok {
		return false, fmt.Errorf("asset %s not found", assetID)
	}
	return status, nil
}

type testEnv struct {
	ctx     sdk.Context
	keeper  *Keeper
	tranche *tranchekeeper.Keeper
	bank    *mockBank
	roles   *mockRoles
	assets  *mockAssets
}

func setupKeeper(t *testing.T) *testEnv {
	t.Helper()

	keys := storetypes.NewKVStoreKeys(pooltypes.StoreKey, tranchetypes.StoreKey)
	ctx := testutil.DefaultContextWithKeys(keys, nil, nil)

	bank := newMockBank()
	roles := newMockRoles()
	assets := newMockAssets()
	roles.grant(managerAddr, "MANAGER")

	trancheKeeper := tranchekeeper.NewKeeper(nil, keys[tranchetypes.StoreKey], bank, roles, log.NewNopLogger())
	k := NewKeeper(nil, keys[pooltypes.StoreKey], bank, roles, assets, trancheKeeper, log.NewNopLogger())

	return &testEnv{
		ctx:     ctx,
		keeper:  k,
		tranche: trancheKeeper,
		bank:    bank,
		roles:   roles,
		assets:  assets,
	}
}

func (e *testEnv) createPool(t *testing.T) *pooltypes.Pool {
	t.Helper()
	pool, err := e.keeper.CreatePool(e.ctx, managerAddr, "Receivables Pool", "Q3 trade receivables", 100, 1000)
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}
	return pool
}
