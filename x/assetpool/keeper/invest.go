package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// Invest deposits payment tokens into a pool or a specific tranche and
// issues shares. The payment transfer happens before any ledger mutation,
// so a failed transfer leaves no partial state.
func (k *Keeper) Invest(ctx sdk.Context, investor, poolID, trancheID string, amount math.Int) (math.Int, error) {
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
	if !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}

	scope := poolID
	if pool.HasTranches {
		if trancheID == "" || !pool.HasTranche(trancheID) {
			return math.ZeroInt(), types.ErrTrancheNotInPool
		}
		if !k.trancheKeeper.HasTranche(ctx, trancheID) {
			return math.ZeroInt(), types.ErrTrancheNotInPool
		}
		scope = trancheID
	} else if trancheID != "" {
		return math.ZeroInt(), types.ErrTrancheNotInPool
	}

	// Pull the payment into pool custody before touching the ledger.
	investorAddr, err := sdk.AccAddressFromBech32(investor)
	if err != nil {
		return math.ZeroInt(), err
	}
	coins := sdk.NewCoins(sdk.NewCoin(k.paymentDenom, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, investorAddr, types.ModuleName, coins); err != nil {
		return math.ZeroInt(), types.ErrCounterpartyPaymentFailed.Wrap(err.Error())
	}

	var shares math.Int
	if pool.HasTranches {
		shares, err = k.trancheKeeper.RecordInvestment(ctx, trancheID, investor, amount)
	} else {
		shares, err = types.SharesForDeposit(amount, pool.TotalValue, pool.TotalShares)
	}
	if err != nil {
		return math.ZeroInt(), err
	}

	priorValue := pool.TotalValue
	priorShares := pool.TotalShares

	position := k.GetPosition(ctx, scope, investor)
	position.Shares = position.Shares.Add(shares)
	position.Invested = position.Invested.Add(amount)
	position.UpdatedAt = time.Now().Unix()
	k.SetPosition(ctx, position)

	pool.TotalValue = pool.TotalValue.Add(amount)
	pool.TotalShares = pool.TotalShares.Add(shares)
	pool.UpdatedAt = time.Now().Unix()
	k.SetPool(ctx, pool)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_shares_issued",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("scope", scope),
			sdk.NewAttribute("investor", investor),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("prior_value", priorValue.String()),
			sdk.NewAttribute("prior_shares", priorShares.String()),
			sdk.NewAttribute("total_value", pool.TotalValue.String()),
			sdk.NewAttribute("total_shares", pool.TotalShares.String()),
		),
	)

	k.logger.Info("Investment processed",
		"pool_id", poolID,
		"scope", scope,
		"investor", investor,
		"amount", amount.String(),
		"shares", shares.String(),
	)

	return shares, nil
}
