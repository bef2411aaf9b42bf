package keeper

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/testutil"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolkeeper "github.com/openrwa/rwa-chain/x/assetpool/keeper"
	pooltypes "github.com/openrwa/rwa-chain/x/assetpool/types"
	rolestypes "github.com/openrwa/rwa-chain/x/roles/types"
	"github.com/openrwa/rwa-chain/x/settlement/types"
	tranchekeeper "github.com/openrwa/rwa-chain/x/tranche/keeper"
	tranchetypes "github.com/openrwa/rwa-chain/x/tranche/types"
)

var (
	managerAddr = sdk.AccAddress([]byte("manager_____________")).String()
	investorA   = sdk.AccAddress([]byte("investor_a__________")).String()
	investorB   = sdk.AccAddress([]byte("investor_b__________")).String()
)

// mockBank accepts every transfer
type mockBank struct{}

func (mockBank) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return nil
}

func (mockBank) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return nil
}

func (mockBank) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	return nil
}

func (mockBank) MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	return nil
}

func (mockBank) BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error {
	return nil
}

type mockRoles struct{}

func (mockRoles) HasRole(ctx sdk.Context, addr, role string) bool {
	return addr == managerAddr && role == rolestypes.RoleManager
}

type mockAssets struct{}

func (mockAssets) IsPoolable(ctx sdk.Context, assetID string) (bool, error) {
	return true, nil
}

type testEnv struct {
	ctx     sdk.Context
	keeper  *Keeper
	pools   *poolkeeper.Keeper
	tranche *tranchekeeper.Keeper
}

func setupKeeper(t *testing.T) *testEnv {
	t.Helper()

	keys := storetypes.NewKVStoreKeys(pooltypes.StoreKey, tranchetypes.StoreKey, types.StoreKey)
	ctx := testutil.DefaultContextWithKeys(keys, nil, nil)

	bank := mockBank{}
	roles := mockRoles{}

	trancheKeeper := tranchekeeper.NewKeeper(nil, keys[tranchetypes.StoreKey], bank, roles, log.NewNopLogger())
	poolKeeper := poolkeeper.NewKeeper(nil, keys[pooltypes.StoreKey], bank, roles, mockAssets{}, trancheKeeper, log.NewNopLogger())
	k := NewKeeper(nil, keys[types.StoreKey], bank, roles, poolKeeper, trancheKeeper, log.NewNopLogger())

	return &testEnv{ctx: ctx, keeper: k, pools: poolKeeper, tranche: trancheKeeper}
}

// tranchedPool builds the reference scenario: senior 70% at 8%, junior
// 30% at 15%, investor A with 7000 in senior, investor B with 3000 in
// junior.
func tranchedPool(t *testing.T, env *testEnv) (poolID, seniorID, juniorID string) {
	t.Helper()

	pool, err := env.pools.CreatePool(env.ctx, managerAddr, "Receivables", "", 100, 1000)
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}
	seniorID, juniorID, err = env.pools.AttachTranches(env.ctx, managerAddr, pool.PoolID, 7000, 800, 1500, "SNR", "JNR")
	if err != nil {
		t.Fatalf("AttachTranches: %v", err)
	}
	if _, err := env.pools.Invest(env.ctx, investorA, pool.PoolID, seniorID, math.NewInt(7000)); err != nil {
		t.Fatalf("senior invest: %v", err)
	}
	if _, err := env.pools.Invest(env.ctx, investorB, pool.PoolID, juniorID, math.NewInt(3000)); err != nil {
		t.Fatalf("junior invest: %v", err)
	}
	return pool.PoolID, seniorID, juniorID
}

// TestWaterfallReferenceScenario: a 10300 payment against 7000 senior at
// 8% and 3000 junior at 15% leaves the senior redeemable at exactly 7560
// and the junior at the 2740 remainder.
func TestWaterfallReferenceScenario(t *testing.T) {
	env := setupKeeper(t)
	poolID, seniorID, juniorID := tranchedPool(t, env)

	if _, err := env.keeper.RecordPayment(env.ctx, managerAddr, poolID, math.NewInt(10300)); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	distributed, _, err := env.keeper.DistributeYield(env.ctx, managerAddr, poolID)
	if err != nil {
		t.Fatalf("DistributeYield: %v", err)
	}
	if !distributed.Equal(math.NewInt(10300)) {
		t.Errorf("distributed = %s, want 10300", distributed)
	}

	senior, _ := env.tranche.GetTranche(env.ctx, seniorID)
	junior, _ := env.tranche.GetTranche(env.ctx, juniorID)
	if !senior.TotalValue.Equal(math.NewInt(7560)) {
		t.Errorf("senior value = %s, want 7560", senior.TotalValue)
	}
	if !junior.TotalValue.Equal(math.NewInt(2740)) {
		t.Errorf("junior value = %s, want 2740", junior.TotalValue)
	}

	pool, _ := env.pools.GetPool(env.ctx, poolID)
	if !pool.TotalValue.Equal(math.NewInt(10300)) {
		t.Errorf("pool value = %s, want 10300", pool.TotalValue)
	}
}

// TestWaterfallSeniorityExhaustion: a payment smaller than the senior
// entitlement is consumed entirely by the senior tranche.
func TestWaterfallSeniorityExhaustion(t *testing.T) {
	env := setupKeeper(t)
	poolID, seniorID, juniorID := tranchedPool(t, env)

	if _, err := env.keeper.RecordPayment(env.ctx, managerAddr, poolID, math.NewInt(5000)); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if _, _, err := env.keeper.DistributeYield(env.ctx, managerAddr, poolID); err != nil {
		t.Fatalf("DistributeYield: %v", err)
	}

	senior, _ := env.tranche.GetTranche(env.ctx, seniorID)
	junior, _ := env.tranche.GetTranche(env.ctx, juniorID)
	if !senior.TotalValue.Equal(math.NewInt(5000)) {
		t.Errorf("senior value = %s, want 5000", senior.TotalValue)
	}
	if !junior.TotalValue.IsZero() {
		t.Errorf("junior value = %s, want 0", junior.TotalValue)
	}
}

// TestDistributeIdempotentPerEpoch: a second distribution with no new
// recorded payment changes nothing.
func TestDistributeIdempotentPerEpoch(t *testing.T) {
	env := setupKeeper(t)
	poolID, seniorID, _ := tranchedPool(t, env)

	if _, err := env.keeper.RecordPayment(env.ctx, managerAddr, poolID, math.NewInt(10300)); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if _, _, err := env.keeper.DistributeYield(env.ctx, managerAddr, poolID); err != nil {
		t.Fatalf("DistributeYield: %v", err)
	}

	if _, _, err := env.keeper.DistributeYield(env.ctx, managerAddr, poolID); err != types.ErrNothingToDistribute {
		t.Errorf("second distribute error = %v, want ErrNothingToDistribute", err)
	}

	senior, _ := env.tranche.GetTranche(env.ctx, seniorID)
	if !senior.TotalValue.Equal(math.NewInt(7560)) {
		t.Errorf("senior value moved on idempotent call: %s", senior.TotalValue)
	}

	// A new payment reopens distribution
	if _, err := env.keeper.RecordPayment(env.ctx, managerAddr, poolID, math.NewInt(100)); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if _, _, err := env.keeper.DistributeYield(env.ctx, managerAddr, poolID); err != nil {
		t.Errorf("distribute after new payment: %v", err)
	}
}

// TestUntranchedDistributionCreditsPool: distribution on a pool without
// tranches raises every holder's redeemable value proportionally.
func TestUntranchedDistributionCreditsPool(t *testing.T) {
	env := setupKeeper(t)

	pool, err := env.pools.CreatePool(env.ctx, managerAddr, "Direct", "", 0, 0)
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}
	if _, err := env.pools.Invest(env.ctx, investorA, pool.PoolID, "", math.NewInt(10000)); err != nil {
		t.Fatalf("Invest: %v", err)
	}

	if _, err := env.keeper.RecordPayment(env.ctx, managerAddr, pool.PoolID, math.NewInt(500)); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}
	if _, _, err := env.keeper.DistributeYield(env.ctx, managerAddr, pool.PoolID); err != nil {
		t.Fatalf("DistributeYield: %v", err)
	}

	stored, _ := env.pools.GetPool(env.ctx, pool.PoolID)
	if !stored.TotalValue.Equal(math.NewInt(10500)) {
		t.Errorf("pool value = %s, want 10500", stored.TotalValue)
	}
	if !stored.TotalShares.Equal(math.NewInt(10000)) {
		t.Errorf("pool shares = %s, want 10000", stored.TotalShares)
	}

	// The holder's full redemption now pays out the credited value
	payout, err := env.pools.Redeem(env.ctx, investorA, pool.PoolID, "", math.NewInt(10000))
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if !payout.Equal(math.NewInt(10500)) {
		t.Errorf("payout = %s, want 10500", payout)
	}
}

func TestRecordPaymentActivatesFundingPool(t *testing.T) {
	env := setupKeeper(t)

	pool, err := env.pools.CreatePool(env.ctx, managerAddr, "Direct", "", 0, 0)
	if err != nil {
		t.Fatalf("CreatePool: %v", err)
	}
	if pool.Phase != pooltypes.PoolPhaseFunding {
		t.Fatalf("new pool phase = %s, want funding", pool.Phase)
	}

	if _, err := env.keeper.RecordPayment(env.ctx, managerAddr, pool.PoolID, math.NewInt(100)); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	stored, _ := env.pools.GetPool(env.ctx, pool.PoolID)
	if stored.Phase != pooltypes.PoolPhaseActive {
		t.Errorf("phase = %s, want active", stored.Phase)
	}
}

func TestMaturePoolRequiresDistribution(t *testing.T) {
	env := setupKeeper(t)
	poolID, _, _ := tranchedPool(t, env)

	if _, err := env.keeper.RecordPayment(env.ctx, managerAddr, poolID, math.NewInt(1000)); err != nil {
		t.Fatalf("RecordPayment: %v", err)
	}

	if err := env.keeper.MaturePool(env.ctx, managerAddr, poolID); err != types.ErrNotMatured {
		t.Errorf("error = %v, want ErrNotMatured", err)
	}

	if _, _, err := env.keeper.DistributeYield(env.ctx, managerAddr, poolID); err != nil {
		t.Fatalf("DistributeYield: %v", err)
	}
	if err := env.keeper.MaturePool(env.ctx, managerAddr, poolID); err != nil {
		t.Fatalf("MaturePool: %v", err)
	}

	pool, _ := env.pools.GetPool(env.ctx, poolID)
	if pool.Phase != pooltypes.PoolPhaseMatured {
		t.Errorf("phase = %s, want matured", pool.Phase)
	}

	// Matured pools reject further payments and maturity calls
	if _, err := env.keeper.RecordPayment(env.ctx, managerAddr, poolID, math.NewInt(1)); err != types.ErrAlreadyMatured {
		t.Errorf("error = %v, want ErrAlreadyMatured", err)
	}
	if err := env.keeper.MaturePool(env.ctx, managerAddr, poolID); err != types.ErrAlreadyMatured {
		t.Errorf("error = %v, want ErrAlreadyMatured", err)
	}
}

func TestDistributeRequiresManagerRole(t *testing.T) {
	env := setupKeeper(t)
	poolID, _, _ := tranchedPool(t, env)

	if _, _, err := env.keeper.DistributeYield(env.ctx, investorA, poolID); err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}
