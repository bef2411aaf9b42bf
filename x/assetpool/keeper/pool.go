package keeper

import (
	"strconv"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
	rolestypes "github.com/openrwa/rwa-chain/x/roles/types"
	tranchetypes "github.com/openrwa/rwa-chain/x/tranche/types"
)

// CreatePool creates a new pool in the FUNDING phase. The creator must
// hold the MANAGER role and becomes the pool's manager.
func (k *Keeper) CreatePool(ctx sdk.Context, creator, name, description string, managementFeeBps, performanceFeeBps int64) (*types.Pool, error) {
	if !k.roleKeeper.HasRole(ctx, creator, rolestypes.RoleManager) {
		return nil, types.ErrUnauthorized
	}
	if err := types.ValidateFees(managementFeeBps, performanceFeeBps); err != nil {
		return nil, err
	}

	pool := types.NewPool(creator, name, description, managementFeeBps, performanceFeeBps)
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_created",
			sdk.NewAttribute("pool_id", pool.PoolID),
			sdk.NewAttribute("creator", creator),
			sdk.NewAttribute("name", name),
		),
	)

	k.logger.Info("Pool created", "pool_id", pool.PoolID, "creator", creator, "name", name)
	return pool, nil
}

// SetPoolActive pauses or unpauses a pool. Only the pool's creator may
// toggle it. While paused, invest/redeem/trade are rejected; distribution
// and reads remain allowed.
func (k *Keeper) SetPoolActive(ctx sdk.Context, creator, poolID string, active bool) error {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if pool.Creator != creator {
		return types.ErrUnauthorized
	}

	pool.Active = active
	pool.UpdatedAt = time.Now().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_active_set",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("active", strconv.FormatBool(active)),
		),
	)

	k.logger.Info("Pool active flag set", "pool_id", poolID, "active", active)
	return nil
}

// SetPoolPhase advances a pool's lifecycle phase. Used by the settlement
// engine.
func (k *Keeper) SetPoolPhase(ctx sdk.Context, poolID, phase string) error {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	prior := pool.Phase
	pool.Phase = phase
	pool.UpdatedAt = time.Now().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_phase_changed",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("prior_phase", prior),
			sdk.NewAttribute("new_phase", phase),
		),
	)
	return nil
}

// AttachAsset links an eligible asset to a pool. One asset maps to at
// most one pool and the mapping is permanent once set.
func (k *Keeper) AttachAsset(ctx sdk.Context, creator, poolID, assetID string) error {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if pool.Creator != creator {
		return types.ErrUnauthorized
	}

	poolable, err := k.assetKeeper.IsPoolable(ctx, assetID)
	if err != nil {
		return err
	}
	if !poolable {
		return types.ErrNotEligible
	}
	if _, attached := k.GetAssetPool(ctx, assetID); attached {
		return types.ErrAlreadyPooled
	}

	k.GetStore(ctx).Set(assetPoolKey(assetID), []byte(poolID))
	pool.AssetIDs = append(pool.AssetIDs, assetID)
	pool.UpdatedAt = time.Now().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_asset_attached",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("asset_id", assetID),
		),
	)

	k.logger.Info("Asset attached to pool", "pool_id", poolID, "asset_id", assetID)
	return nil
}

// AttachTranches builds a senior/junior tranche pair whose splits sum to
// 100%. Only the pool's creator may attach, and only once.
func (k *Keeper) AttachTranches(ctx sdk.Context, creator, poolID string, seniorSplitBps, seniorYieldBps, juniorYieldBps int64, seniorSymbol, juniorSymbol string) (string, string, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return "", "", err
	}
	if pool.Creator != creator {
		return "", "", types.ErrUnauthorized
	}
	if pool.HasTranches {
		return "", "", types.ErrTranchesAlreadyAttached
	}
	if seniorSplitBps <= 0 || seniorSplitBps >= types.BpsDenominator {
		return "", "", tranchetypes.ErrInvalidSplit
	}

	senior, err := k.trancheKeeper.CreateTranche(ctx, creator, poolID, tranchetypes.TrancheClassSenior, seniorSplitBps, seniorYieldBps, seniorSymbol)
	if err != nil {
		return "", "", err
	}
	junior, err := k.trancheKeeper.CreateTranche(ctx, creator, poolID, tranchetypes.TrancheClassJunior, types.BpsDenominator-seniorSplitBps, juniorYieldBps, juniorSymbol)
	if err != nil {
		return "", "", err
	}
	seniorID, juniorID := senior.TrancheID, junior.TrancheID

	pool.HasTranches = true
	pool.TrancheIDs = []string{seniorID, juniorID}
	pool.UpdatedAt = time.Now().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_tranches_attached",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("senior_tranche_id", seniorID),
			sdk.NewAttribute("junior_tranche_id", juniorID),
		),
	)

	k.logger.Info("Tranches attached to pool",
		"pool_id", poolID,
		"senior_tranche_id", seniorID,
		"junior_tranche_id", juniorID,
	)

	return seniorID, juniorID, nil
}
