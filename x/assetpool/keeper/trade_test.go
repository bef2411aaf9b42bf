package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

func TestTradeSharesMovesBothLegs(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	if _, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(5000)); err != nil {
		t.Fatalf("Invest: %v", err)
	}

	payment, err := env.keeper.TradeShares(env.ctx, investorAddr, investorB, pool.PoolID, "", math.NewInt(2000), math.NewInt(3))
	if err != nil {
		t.Fatalf("TradeShares: %v", err)
	}
	if !payment.Equal(math.NewInt(6000)) {
		t.Errorf("payment = %s, want 6000", payment)
	}

	seller := env.keeper.GetPosition(env.ctx, pool.PoolID, investorAddr)
	buyer := env.keeper.GetPosition(env.ctx, pool.PoolID, investorB)
	if !seller.Shares.Equal(math.NewInt(3000)) {
		t.Errorf("seller shares = %s, want 3000", seller.Shares)
	}
	if !buyer.Shares.Equal(math.NewInt(2000)) {
		t.Errorf("buyer shares = %s, want 2000", buyer.Shares)
	}
	if env.bank.transfers != 1 {
		t.Errorf("expected one payment transfer, got %d", env.bank.transfers)
	}

	// Pool totals are untouched by a secondary trade
	stored, _ := env.keeper.GetPool(env.ctx, pool.PoolID)
	if !stored.TotalShares.Equal(math.NewInt(5000)) || !stored.TotalValue.Equal(math.NewInt(5000)) {
		t.Errorf("pool totals changed: %s/%s", stored.TotalValue, stored.TotalShares)
	}
}

func TestTradeSharesTrancheScopeMovesTokens(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	seniorID, _, err := env.keeper.AttachTranches(env.ctx, managerAddr, pool.PoolID, 7000, 800, 1500, "SNR", "JNR")
	if err != nil {
		t.Fatalf("AttachTranches: %v", err)
	}
	if _, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, seniorID, math.NewInt(7000)); err != nil {
		t.Fatalf("Invest: %v", err)
	}

	payment, err := env.keeper.TradeShares(env.ctx, investorAddr, investorB, pool.PoolID, seniorID, math.NewInt(2000), math.NewInt(3))
	if err != nil {
		t.Fatalf("TradeShares: %v", err)
	}
	if !payment.Equal(math.NewInt(6000)) {
		t.Errorf("payment = %s, want 6000", payment)
	}

	seller := env.keeper.GetPosition(env.ctx, seniorID, investorAddr)
	buyer := env.keeper.GetPosition(env.ctx, seniorID, investorB)
	if !seller.Shares.Equal(math.NewInt(5000)) {
		t.Errorf("seller shares = %s, want 5000", seller.Shares)
	}
	if !buyer.Shares.Equal(math.NewInt(2000)) {
		t.Errorf("buyer shares = %s, want 2000", buyer.Shares)
	}

	// Token leg plus payment leg
	if env.bank.transfers != 2 {
		t.Errorf("expected two transfers, got %d", env.bank.transfers)
	}

	// The buyer's later redemption works against their own token balance
	payout, err := env.keeper.Redeem(env.ctx, investorB, pool.PoolID, seniorID, math.NewInt(2000))
	if err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if !payout.Equal(math.NewInt(2000)) {
		t.Errorf("payout = %s, want 2000", payout)
	}
}

func TestTradeSharesRejectsSelfTrade(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	_, err := env.keeper.TradeShares(env.ctx, investorAddr, investorAddr, pool.PoolID, "", math.NewInt(1), math.NewInt(1))
	if err != types.ErrSelfTrade {
		t.Errorf("error = %v, want ErrSelfTrade", err)
	}
}

func TestTradeSharesInsufficient(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	if _, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(100)); err != nil {
		t.Fatalf("Invest: %v", err)
	}

	_, err := env.keeper.TradeShares(env.ctx, investorAddr, investorB, pool.PoolID, "", math.NewInt(200), math.NewInt(1))
	if err != types.ErrInsufficientShares {
		t.Errorf("error = %v, want ErrInsufficientShares", err)
	}
}

func TestListBuyCancelFlow(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	if _, err := env.keeper.Invest(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(5000)); err != nil {
		t.Fatalf("Invest: %v", err)
	}

	listing, err := env.keeper.ListShares(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(1000), math.NewInt(2))
	if err != nil {
		t.Fatalf("ListShares: %v", err)
	}
	if got := env.keeper.Book().Cheapest(pool.PoolID); got == nil || got.ListingID != listing.ListingID {
		t.Error("listing not indexed in book")
	}

	filled, payment, err := env.keeper.BuyListing(env.ctx, investorB, listing.ListingID)
	if err != nil {
		t.Fatalf("BuyListing: %v", err)
	}
	if !payment.Equal(math.NewInt(2000)) {
		t.Errorf("payment = %s, want 2000", payment)
	}
	if filled.Status != types.ListingStatusFilled {
		t.Errorf("listing status = %s, want filled", filled.Status)
	}
	if env.keeper.Book().Cheapest(pool.PoolID) != nil {
		t.Error("filled listing still in book")
	}

	buyer := env.keeper.GetPosition(env.ctx, pool.PoolID, investorB)
	if !buyer.Shares.Equal(math.NewInt(1000)) {
		t.Errorf("buyer shares = %s, want 1000", buyer.Shares)
	}

	// A filled listing cannot be bought again
	if _, _, err := env.keeper.BuyListing(env.ctx, investorB, listing.ListingID); err != types.ErrListingNotOpen {
		t.Errorf("error = %v, want ErrListingNotOpen", err)
	}

	// Cancel path
	second, err := env.keeper.ListShares(env.ctx, investorAddr, pool.PoolID, "", math.NewInt(500), math.NewInt(4))
	if err != nil {
		t.Fatalf("ListShares: %v", err)
	}
	if err := env.keeper.CancelListing(env.ctx, investorB, second.ListingID); err != types.ErrUnauthorized {
		t.Errorf("foreign cancel error = %v, want ErrUnauthorized", err)
	}
	if err := env.keeper.CancelListing(env.ctx, investorAddr, second.ListingID); err != nil {
		t.Fatalf("CancelListing: %v", err)
	}
	if env.keeper.Book().Cheapest(pool.PoolID) != nil {
		t.Error("cancelled listing still in book")
	}
}
