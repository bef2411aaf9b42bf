package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// Redeem burns shares and pays out the investor's proportional value.
// Ledger state is mutated before the outward transfer; a failed transfer
// aborts the whole operation so the mutation never survives alone.
func (k *Keeper) Redeem(ctx sdk.Context, investor, poolID, trancheID string, shares math.Int) (math.Int, error) {
	if err := k.guard.Enter(poolID); err != nil {
		return math.ZeroInt(), err
	}
	defer k.guard.Exit(poolID)

	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !pool.Active {
		return math.ZeroInt(), types.ErrPoolInactive
	}
	if !shares.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}

	scope := poolID
	if pool.HasTranches {
		if trancheID == "" || !pool.HasTranche(trancheID) {
			return math.ZeroInt(), types.ErrTrancheNotInPool
		}
		scope = trancheID
	} else if trancheID != "" {
		return math.ZeroInt(), types.ErrTrancheNotInPool
	}

	position := k.GetPosition(ctx, scope, investor)
	if position.Shares.LT(shares) {
		return math.ZeroInt(), types.ErrInsufficientShares
	}

	priorValue := pool.TotalValue
	priorShares := pool.TotalShares
	priorPositionShares := position.Shares

	var payout math.Int
	if pool.HasTranches {
		payout, err = k.trancheKeeper.RecordRedemption(ctx, trancheID, investor, shares)
	} else {
		payout, err = types.PayoutForShares(shares, pool.TotalValue, pool.TotalShares)
	}
	if err != nil {
		return math.ZeroInt(), err
	}

	position.Shares = position.Shares.Sub(shares)
	position.DeductInvested(shares, priorPositionShares)
	position.UpdatedAt = time.Now().Unix()
	k.SetPosition(ctx, position)

	pool.TotalValue = pool.TotalValue.Sub(payout)
	pool.TotalShares = pool.TotalShares.Sub(shares)
	pool.UpdatedAt = time.Now().Unix()
	k.SetPool(ctx, pool)

	// Outward transfer last. An error here unwinds the whole tx.
	investorAddr, err := sdk.AccAddressFromBech32(investor)
	if err != nil {
		return math.ZeroInt(), err
	}
	coins := sdk.NewCoins(sdk.NewCoin(k.paymentDenom, payout))
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, investorAddr, coins); err != nil {
		return math.ZeroInt(), types.ErrCounterpartyPaymentFailed.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_shares_redeemed",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("scope", scope),
			sdk.NewAttribute("investor", investor),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("payout", payout.String()),
			sdk.NewAttribute("prior_value", priorValue.String()),
			sdk.NewAttribute("prior_shares", priorShares.String()),
			sdk.NewAttribute("total_value", pool.TotalValue.String()),
			sdk.NewAttribute("total_shares", pool.TotalShares.String()),
		),
	)

	k.logger.Info("Redemption processed",
		"pool_id", poolID,
		"scope", scope,
		"investor", investor,
		"shares", shares.String(),
		"payout", payout.String(),
	)

	return payout, nil
}
