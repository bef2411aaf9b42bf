package keeper

import (
	"strconv"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pooltypes "github.com/openrwa/rwa-chain/x/assetpool/types"
	rolestypes "github.com/openrwa/rwa-chain/x/roles/types"
	"github.com/openrwa/rwa-chain/x/settlement/types"
)

// RecordPayment deposits an external payment (recovered principal plus
// yield) into pool custody and advances the payment epoch. The caller
// must hold the MANAGER role.
func (k *Keeper) RecordPayment(ctx sdk.Context, manager, poolID string, amount math.Int) (*types.Settlement, error) {
	if !k.roleKeeper.HasRole(ctx, manager, rolestypes.RoleManager) {
		return nil, types.ErrUnauthorized
	}
	if !amount.IsPositive() {
		return nil, types.ErrInvalidAmount
	}

	pool, err := k.poolKeeper.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if pool.Phase == pooltypes.PoolPhaseMatured {
		return nil, types.ErrAlreadyMatured
	}

	managerAddr, err := sdk.AccAddressFromBech32(manager)
	if err != nil {
		return nil, err
	}
	coins := sdk.NewCoins(sdk.NewCoin(k.poolKeeper.PaymentDenom(), amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, managerAddr, pooltypes.ModuleName, coins); err != nil {
		return nil, err
	}

	settlement := k.GetSettlement(ctx, poolID)
	settlement.PendingAmount = settlement.PendingAmount.Add(amount)
	settlement.PaymentEpoch++
	settlement.TotalRecorded = settlement.TotalRecorded.Add(amount)
	settlement.UpdatedAt = time.Now().Unix()
	k.SetSettlement(ctx, settlement)

	if pool.Phase == pooltypes.PoolPhaseFunding {
		if err := k.poolKeeper.SetPoolPhase(ctx, poolID, pooltypes.PoolPhaseActive); err != nil {
			return nil, err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"settlement_payment_recorded",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("manager", manager),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("pending_amount", settlement.PendingAmount.String()),
			sdk.NewAttribute("payment_epoch", strconv.FormatInt(settlement.PaymentEpoch, 10)),
		),
	)

	k.logger.Info("Payment recorded",
		"pool_id", poolID,
		"manager", manager,
		"amount", amount.String(),
		"payment_epoch", settlement.PaymentEpoch,
	)

	return settlement, nil
}

// DistributeYield allocates the pending payment across a pool. Tranched
// pools settle in strict seniority order: each tranche above the most
// junior receives up to its expected return (principal plus expected
// yield), and the most junior takes whatever remains. Each tranche's
// redeemable value is re-marked to its allocation. Untranched pools
// credit the whole payment to the pool's total value, raising every
// holder's redeemable value proportionally.
//
// Distribution is idempotent per payment epoch: the watermark catches up
// to the payment epoch, so a second call with no new recorded payment
// fails with ErrNothingToDistribute.
func (k *Keeper) DistributeYield(ctx sdk.Context, manager, poolID string) (math.Int, *types.Settlement, error) {
	if !k.roleKeeper.HasRole(ctx, manager, rolestypes.RoleManager) {
		return math.ZeroInt(), nil, types.ErrUnauthorized
	}

	pool, err := k.poolKeeper.GetPool(ctx, poolID)
	if err != nil {
		return math.ZeroInt(), nil, err
	}

	settlement := k.GetSettlement(ctx, poolID)
	if !settlement.HasPending() {
		return math.ZeroInt(), nil, types.ErrNothingToDistribute
	}
	amount := settlement.PendingAmount

	event := sdk.NewEvent(
		"settlement_yield_distributed",
		sdk.NewAttribute("pool_id", poolID),
		sdk.NewAttribute("amount", amount.String()),
		sdk.NewAttribute("payment_epoch", strconv.FormatInt(settlement.PaymentEpoch, 10)),
	)

	if pool.HasTranches {
		remaining := amount
		tranches := k.trancheKeeper.GetTranchesByPool(ctx, poolID)
		for i, tranche := range tranches {
			var allocation math.Int
			if i == len(tranches)-1 {
				// Most junior takes the remainder.
				allocation = remaining
			} else {
				allocation = tranche.ExpectedReturn()
				if allocation.GT(remaining) {
					allocation = remaining
				}
			}
			remaining = remaining.Sub(allocation)

			if err := k.trancheKeeper.SetTrancheValue(ctx, tranche.TrancheID, allocation); err != nil {
				return math.ZeroInt(), nil, err
			}
			event = event.AppendAttributes(
				sdk.NewAttribute("tranche_"+tranche.Class, tranche.TrancheID),
				sdk.NewAttribute("allocation_"+tranche.Class, allocation.String()),
			)
		}
		// The pool's aggregate redeemable value is the sum of the
		// tranche allocations.
		pool.TotalValue = amount
	} else {
		pool.TotalValue = pool.TotalValue.Add(amount)
	}
	pool.UpdatedAt = time.Now().Unix()
	k.poolKeeper.SetPool(ctx, pool)

	settlement.PendingAmount = math.ZeroInt()
	settlement.DistributedEpoch = settlement.PaymentEpoch
	settlement.TotalDistributed = settlement.TotalDistributed.Add(amount)
	settlement.UpdatedAt = time.Now().Unix()
	k.SetSettlement(ctx, settlement)

	ctx.EventManager().EmitEvent(event)

	k.logger.Info("Yield distributed",
		"pool_id", poolID,
		"amount", amount.String(),
		"distributed_epoch", settlement.DistributedEpoch,
	)

	return amount, settlement, nil
}

// MaturePool closes out a pool's lifecycle. All recorded payments must be
// distributed first.
func (k *Keeper) MaturePool(ctx sdk.Context, manager, poolID string) error {
	if !k.roleKeeper.HasRole(ctx, manager, rolestypes.RoleManager) {
		return types.ErrUnauthorized
	}

	pool, err := k.poolKeeper.GetPool(ctx, poolID)
	if err != nil {
		return err
	}
	if pool.Phase == pooltypes.PoolPhaseMatured {
		return types.ErrAlreadyMatured
	}

	settlement := k.GetSettlement(ctx, poolID)
	if settlement.HasPending() {
		return types.ErrNotMatured
	}

	if err := k.poolKeeper.SetPoolPhase(ctx, poolID, pooltypes.PoolPhaseMatured); err != nil {
		return err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"settlement_pool_matured",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("total_recorded", settlement.TotalRecorded.String()),
			sdk.NewAttribute("total_distributed", settlement.TotalDistributed.String()),
		),
	)

	k.logger.Info("Pool matured", "pool_id", poolID)
	return nil
}
