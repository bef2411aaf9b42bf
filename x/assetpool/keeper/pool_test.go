package keeper

import (
	"testing"

	tranchetypes "github.com/openrwa/rwa-chain/x/tranche/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

func TestCreatePoolFeeCaps(t *testing.T) {
	env := setupKeeper(t)

	tests := []struct {
		name    string
		mgmt    int64
		perf    int64
		wantErr error
	}{
		{"at caps", 500, 2000, nil},
		{"zero fees", 0, 0, nil},
		{"management over cap", 501, 0, types.ErrFeeTooHigh},
		{"performance over cap", 0, 2001, types.ErrFeeTooHigh},
		{"negative management", -1, 0, types.ErrFeeTooHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.keeper.CreatePool(env.ctx, managerAddr, "Pool", "", tt.mgmt, tt.perf)
			if err != tt.wantErr {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreatePoolRequiresManagerRole(t *testing.T) {
	env := setupKeeper(t)

	_, err := env.keeper.CreatePool(env.ctx, investorAddr, "Pool", "", 0, 0)
	if err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestAttachAssetEligibility(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)
	env.assets.poolable["ast-managed"] = true
	env.assets.poolable["ast-pending"] = false

	if err := env.keeper.AttachAsset(env.ctx, managerAddr, pool.PoolID, "ast-managed"); err != nil {
		t.Fatalf("AttachAsset: %v", err)
	}

	stored, _ := env.keeper.GetPool(env.ctx, pool.PoolID)
	if !stored.HasAsset("ast-managed") {
		t.Error("asset not recorded on pool")
	}

	if err := env.keeper.AttachAsset(env.ctx, managerAddr, pool.PoolID, "ast-pending"); err != types.ErrNotEligible {
		t.Errorf("unverified asset error = %v, want ErrNotEligible", err)
	}
}

func TestAttachAssetAlreadyPooled(t *testing.T) {
	env := setupKeeper(t)
	first := env.createPool(t)
	second := env.createPool(t)
	env.assets.poolable["ast-1"] = true

	if err := env.keeper.AttachAsset(env.ctx, managerAddr, first.PoolID, "ast-1"); err != nil {
		t.Fatalf("AttachAsset: %v", err)
	}
	if err := env.keeper.AttachAsset(env.ctx, managerAddr, second.PoolID, "ast-1"); err != types.ErrAlreadyPooled {
		t.Errorf("error = %v, want ErrAlreadyPooled", err)
	}
}

func TestAttachAssetOnlyCreator(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)
	env.assets.poolable["ast-1"] = true

	if err := env.keeper.AttachAsset(env.ctx, investorAddr, pool.PoolID, "ast-1"); err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestAttachTranchesBuildsSealedPair(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	seniorID, juniorID, err := env.keeper.AttachTranches(env.ctx, managerAddr, pool.PoolID, 7000, 800, 1500, "SNR", "JNR")
	if err != nil {
		t.Fatalf("AttachTranches: %v", err)
	}

	senior, _ := env.tranche.GetTranche(env.ctx, seniorID)
	junior, _ := env.tranche.GetTranche(env.ctx, juniorID)
	if senior.PercentageBps+junior.PercentageBps != tranchetypes.BpsDenominator {
		t.Errorf("splits sum to %d, want 10000", senior.PercentageBps+junior.PercentageBps)
	}
	if senior.SeniorityRank >= junior.SeniorityRank {
		t.Error("senior must rank before junior")
	}

	// The split is sealed at 10000: further tranches are rejected
	_, err = env.tranche.CreateTranche(env.ctx, managerAddr, pool.PoolID, tranchetypes.TrancheClassJunior, 1, 0, "EXTRA")
	if err != tranchetypes.ErrInvalidSplit {
		t.Errorf("error = %v, want ErrInvalidSplit", err)
	}

	// A second attach on the pool is rejected outright
	if _, _, err := env.keeper.AttachTranches(env.ctx, managerAddr, pool.PoolID, 5000, 500, 900, "S2", "J2"); err != types.ErrTranchesAlreadyAttached {
		t.Errorf("error = %v, want ErrTranchesAlreadyAttached", err)
	}
}

func TestSetPoolActiveOnlyCreator(t *testing.T) {
	env := setupKeeper(t)
	pool := env.createPool(t)

	if err := env.keeper.SetPoolActive(env.ctx, investorAddr, pool.PoolID, false); err != types.ErrUnauthorized {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}
