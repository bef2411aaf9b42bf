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

	rolestypes "github.com/openrwa/rwa-chain/x/roles/types"
	"github.com/openrwa/rwa-chain/x/tranche/types"
)

var (
	managerAddr  = sdk.AccAddress([]byte("manager_____________")).String()
	investorAddr = sdk.AccAddress([]byte("investor____________")).String()
)

type mockBank struct {
	failMint bool
	failBurn bool
	minted   map[string]math.Int
	burned   map[string]math.Int
}

func newMockBank() *mockBank {
	return &mockBank{minted: make(map[string]math.Int), burned: make(map[string]math.Int)}
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

func (m *mockBank) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return nil
}

func (m *mockBank) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return nil
}

type mockRoles struct{}

func (mockRoles) HasRole(ctx sdk.Context, addr, role string) bool {
	return addr == managerAddr && role == rolestypes.RoleManager
}

func setupKeeper(t *testing.T) (sdk.Context, *Keeper, *mockBank) {
	t.Helper()
	key := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := testutil.DefaultContext(key, storetypes.NewTransientStoreKey("transient_test"))
	bank := newMockBank()
	k := NewKeeper(nil, key, bank, mockRoles{}, log.NewNopLogger())
	return ctx, k, bank
}

func TestCreateTrancheSplitInvariant(t *testing.T) {
	ctx, k, _ := setupKeeper(t)

	if _, err := k.CreateTranche(ctx, managerAddr, "pool-1", types.TrancheClassSenior, 7000, 800, "SNR"); err != nil {
		t.Fatalf("senior: %v", err)
	}

	// Over-allocating the remainder fails
	if _, err := k.CreateTranche(ctx, managerAddr, "pool-1", types.TrancheClassJunior, 3001, 1500, "JNR"); err != types.ErrInvalidSplit {
		t.Errorf("error = %v, want ErrInvalidSplit", err)
	}

	// Exact remainder completes the split
	if _, err := k.CreateTranche(ctx, managerAddr, "pool-1", types.TrancheClassJunior, 3000, 1500, "JNR"); err != nil {
		t.Fatalf("junior: %v", err)
	}
	if sum := k.SplitSum(ctx, "pool-1"); sum != types.BpsDenominator {
		t.Errorf("split sum = %d, want 10000", sum)
	}

	// A sealed pool rejects further tranches
	if _, err := k.CreateTranche(ctx, managerAddr, "pool-1", types.TrancheClassJunior, 1, 0, "X"); err != types.ErrInvalidSplit {
		t.Errorf("error = %v, want ErrInvalidSplit", err)
	}
}

func TestCreateTrancheRequiresManagerRole(t *testing.T) {
	ctx, k, _ := setupKeeper(t)

	if _, err := k.CreateTranche(ctx, investorAddr, "pool-1", types.TrancheClassSenior, 7000, 800, "SNR"); err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestRecordInvestmentMintsShareTokens(t *testing.T) {
	ctx, k, bank := setupKeeper(t)

	tranche, err := k.CreateTranche(ctx, managerAddr, "pool-1", types.TrancheClassSenior, 7000, 800, "SNR")
	if err != nil {
		t.Fatalf("CreateTranche: %v", err)
	}

	shares, err := k.RecordInvestment(ctx, tranche.TrancheID, investorAddr, math.NewInt(7000))
	if err != nil {
		t.Fatalf("RecordInvestment: %v", err)
	}
	if !shares.Equal(math.NewInt(7000)) {
		t.Errorf("bootstrap shares = %s, want 7000", shares)
	}
	if minted := bank.minted[tranche.TokenDenom]; !minted.Equal(math.NewInt(7000)) {
		t.Errorf("minted = %s, want 7000", minted)
	}

	stored, _ := k.GetTranche(ctx, tranche.TrancheID)
	if !stored.TotalInvested.Equal(math.NewInt(7000)) || !stored.TotalValue.Equal(math.NewInt(7000)) || !stored.TotalShares.Equal(math.NewInt(7000)) {
		t.Errorf("totals = %s/%s/%s, want 7000 each", stored.TotalInvested, stored.TotalValue, stored.TotalShares)
	}
}

func TestRecordInvestmentMintFailureAborts(t *testing.T) {
	ctx, k, bank := setupKeeper(t)

	tranche, err := k.CreateTranche(ctx, managerAddr, "pool-1", types.TrancheClassSenior, 10000, 800, "SNR")
	if err != nil {
		t.Fatalf("CreateTranche: %v", err)
	}

	bank.failMint = true
	if _, err := k.RecordInvestment(ctx, tranche.TrancheID, investorAddr, math.NewInt(1000)); err == nil {
		t.Fatal("expected mint failure to abort the operation")
	}
}

func TestRecordRedemptionBurnsAndDeducts(t *testing.T) {
	ctx, k, bank := setupKeeper(t)

	tranche, err := k.CreateTranche(ctx, managerAddr, "pool-1", types.TrancheClassSenior, 10000, 800, "SNR")
	if err != nil {
		t.Fatalf("CreateTranche: %v", err)
	}
	if _, err := k.RecordInvestment(ctx, tranche.TrancheID, investorAddr, math.NewInt(10000)); err != nil {
		t.Fatalf("RecordInvestment: %v", err)
	}

	payout, err := k.RecordRedemption(ctx, tranche.TrancheID, investorAddr, math.NewInt(4000))
	if err != nil {
		t.Fatalf("RecordRedemption: %v", err)
	}
	if !payout.Equal(math.NewInt(4000)) {
		t.Errorf("payout = %s, want 4000", payout)
	}
	if burned := bank.burned[tranche.TokenDenom]; !burned.Equal(math.NewInt(4000)) {
		t.Errorf("burned = %s, want 4000", burned)
	}

	stored, _ := k.GetTranche(ctx, tranche.TrancheID)
	if !stored.TotalShares.Equal(math.NewInt(6000)) || !stored.TotalValue.Equal(math.NewInt(6000)) {
		t.Errorf("totals = %s/%s, want 6000/6000", stored.TotalValue, stored.TotalShares)
	}
	if !stored.TotalInvested.Equal(math.NewInt(6000)) {
		t.Errorf("invested = %s, want 6000", stored.TotalInvested)
	}
}

func TestRecordRedemptionEmptyTranche(t *testing.T) {
	ctx, k, _ := setupKeeper(t)

	tranche, err := k.CreateTranche(ctx, managerAddr, "pool-1", types.TrancheClassSenior, 10000, 800, "SNR")
	if err != nil {
		t.Fatalf("CreateTranche: %v", err)
	}

	if _, err := k.RecordRedemption(ctx, tranche.TrancheID, investorAddr, math.NewInt(1)); err == nil {
		t.Fatal("expected redemption from empty tranche to fail")
	}
}

func TestExpectedReturn(t *testing.T) {
	tranche := &types.Tranche{
		TotalInvested:    math.NewInt(7000),
		ExpectedYieldBps: 800,
	}
	if got := tranche.ExpectedReturn(); !got.Equal(math.NewInt(7560)) {
		t.Errorf("expected return = %s, want 7560", got)
	}
}
