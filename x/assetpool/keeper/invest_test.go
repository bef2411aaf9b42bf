package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

func TestInvestBootstrapIssuesOneToOne(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	shares, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(7000))
	if err != nil {
		t.Fatalf("Invest: %v", err)
	}
	if !shares.Equal(math.NewInt(7000)) {
		t.Errorf("bootstrap shares = %s, want 7000", shares)
	}

	stored, err := env.keeper.GetPool(env.ctx, pool.PoolID)
	if err != nil {
		t.Fatalf("GetPool: %v", err)
	}
	if !stored.TotalValue.Equal(math.NewInt(7000)) || !stored.TotalShares.Equal(math.NewInt(7000)) {
		t.Errorf("pool totals = %s/%s, want 7000/7000", stored.TotalValue, stored.TotalShares)
	}

	position := env.keeper.GetPosition(env.ctx, pool.PoolID, investorAddr)
	if !position.Shares.Equal(math.NewInt(7000)) {
		t.Errorf("position shares = %s, want 7000", position.Shares)
	}
	if env.bank.sendsToModule != 1 {
		t.Errorf("expected one inbound transfer, got %d", env.bank.sendsToModule)
	}
}

// TestInvestTransferFailureLeavesNoState verifies the payment transfer is
// the first effect: a failed pull changes no position or totals.
func TestInvestTransferFailureLeavesNoState(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	env.bank.failSend = true
	_, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(5000))
	if err == nil {
		t.Fatal("expected transfer failure")
	}

	stored, _ := env.keeper.GetPool(env.ctx, pool.PoolID)
	if !stored.TotalValue.IsZero() || !stored.TotalShares.IsZero() {
		t.Errorf("pool mutated on failed transfer: %s/%s", stored.TotalValue, stored.TotalShares)
	}
	position := env.keeper.GetPosition(env.ctx, pool.PoolID, investorAddr)
	if !position.Shares.IsZero() {
		t.Errorf("position mutated on failed transfer: %s", position.Shares)
	}
}

func TestInvestRejectsInactivePool(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	if err := env.keeper.SetPoolActive(env.ctx, managerAddr, pool.PoolID, false); err != nil {
		t.Fatalf("SetPoolActive: %v", err)
	}

	_, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(100))
	if err != types.ErrPoolInactive {
		t.Errorf("error = %v, want ErrPoolInactive", err)
	}
}

func TestInvestRejectsZeroAmount(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	_, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.ZeroInt())
	if err != types.ErrInvalidAmount {
		t.Errorf("error = %v, want ErrInvalidAmount", err)
	}
}

func TestInvestUnknownTrancheFails(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	_, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "trn-missing", math.NewInt(100))
	if err != types.ErrTrancheNotInPool {
		t.Errorf("error = %v, want ErrTrancheNotInPool", err)
	}
}

func TestRedeemRoundTrip(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	if _, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(10000)); err != nil {
		t.Fatalf("Invest: %v", err)
	}

	payout, err := env.keeper.Redeem(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(4000))
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if !payout.Equal(math.NewInt(4000)) {
		t.Errorf("payout = %s, want 4000", payout)
	}

	stored, _ := env.keeper.GetPool(env.ctx, pool.PoolID)
	if !stored.TotalValue.Equal(math.NewInt(6000)) || !stored.TotalShares.Equal(math.NewInt(6000)) {
		t.Errorf("pool totals = %s/%s, want 6000/6000", stored.TotalValue, stored.TotalShares)
	}
	if env.bank.sendsFromModule != 1 {
		t.Errorf("expected one outbound transfer, got %d", env.bank.sendsFromModule)
	}
}

func TestRedeemInsufficientShares(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	if _, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(1000)); err != nil {
		t.Fatalf("Invest: %v", err)
	}

	_, err := env.keeper.Redeem(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(1001))
	if err != types.ErrInsufficientShares {
		t.Errorf("error = %v, want ErrInsufficientShares", err)
	}
}

func TestRedeemFromEmptyScope(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	_, err := env.keeper.Redeem(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(1))
	if err != types.ErrInsufficientShares {
		t.Errorf("error = %v, want ErrInsufficientShares", err)
	}
}

// TestConservation: after any sequence of invests and redemptions the sum
// of position shares equals the pool total.
func TestConservation(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	steps := []struct {
		investor string
		invest   int64
		redeem   int64
	}{
		{investorAddr, 5000, 0},
		{investorB, 3000, 0},
		{investorAddr, 0, 1234},
		{investorB, 700, 0},
		{investorAddr, 0, 2766},
		{investorB, 0, 999},
	}

	for i, step := range steps {
		var err error
		if step.invest > 0 {
			_, err = env.keeper.Invest(env.ctx, step.investor, pool.PoolID, "", math.NewInt(step.invest))
		} else {
			_, err = env.keeper.Redeem(env.ctx, step.investor, pool.PoolID, "", math.NewInt(step.redeem))
		}
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}

		stored, _ := env.keeper.GetPool(env.ctx, pool.PoolID)
		sum := math.ZeroInt()
		for _, position := range env.keeper.GetPositionsByScope(env.ctx, pool.PoolID) {
			sum = sum.Add(position.Shares)
		}
		if !sum.Equal(stored.TotalShares) {
			t.Fatalf("step %d: position sum %s != pool total %s", i, sum, stored.TotalShares)
		}
		if stored.TotalValue.IsNegative() {
			t.Fatalf("step %d: pool value went negative: %s", i, stored.TotalValue)
		}
	}
}

func TestTranchedInvestRoutesToTranche(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	seniorID, juniorID, err := env.keeper.AttachTranches(env.ctx, managerAddr, pool.PoolID, 7000, 800, 1500, "SNR", "JNR")
	if err != nil {
		t.Fatalf("AttachTranches: %v", err)
	}

	shares, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, seniorID, math.NewInt(7000))
	if err != nil {
		t.Fatalf("Invest: %v", err)
	}
	if !shares.Equal(math.NewInt(7000)) {
		t.Errorf("senior bootstrap shares = %s, want 7000", shares)
	}

	senior, err := env.tranche.GetTranche(env.ctx, seniorID)
	if err != nil {
		t.Fatalf("GetTranche: %v", err)
	}
	if !senior.TotalInvested.Equal(math.NewInt(7000)) || !senior.TotalShares.Equal(math.NewInt(7000)) {
		t.Errorf("senior totals = %s/%s, want 7000/7000", senior.TotalInvested, senior.TotalShares)
	}

	// Share tokens were minted for the tranche denom
	if minted, ok := env.bank.minted[senior.TokenDenom]; !ok || !minted.Equal(math.NewInt(7000)) {
		t.Errorf("minted %v for %s, want 7000", minted, senior.TokenDenom)
	}

	junior, err := env.tranche.GetTranche(env.ctx, juniorID)
	if err != nil {
		t.Fatalf("GetTranche: %v", err)
	}
	if !junior.TotalShares.IsZero() {
		t.Errorf("junior should be untouched, has %s shares", junior.TotalShares)
	}

	// Direct pool investment into a tranched pool must name a tranche
	if _, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(100)); err != types.ErrTrancheNotInPool {
		t.Errorf("error = %v, want ErrTrancheNotInPool", err)
	}
}

func TestGuardBlocksReentrantScope(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	if err := env.keeper.guard.Enter(pool.PoolID); err != nil {
		t.Fatalf("Enter: %v", err)
	}

	_, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(100))
	if err != types.ErrReentrancyBlocked {
		t.Errorf("error = %v, want ErrReentrancyBlocked", err)
	}

	env.keeper.guard.Exit(pool.PoolID)
	if _, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(100)); err != nil {
		t.Errorf("invest after guard release: %v", err)
	}
}
