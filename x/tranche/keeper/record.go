package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	pooltypes "github.com/openrwa/rwa-chain/x/assetpool/types"
	"github.com/openrwa/rwa-chain/x/tranche/types"
)

// RecordInvestment converts a deposit into tranche shares, mutates the
// running totals, and mints the tranche share token to the investor. A
// mint failure aborts the whole operation so ledger state and token
// supply never diverge.
func (k *Keeper) RecordInvestment(ctx sdk.Context, trancheID, investor string, amount math.Int) (math.Int, error) {
	tranche, err := k.GetTranche(ctx, trancheID)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !tranche.Active {
		return math.ZeroInt(), types.ErrTrancheInactive
	}

	shares, err := pooltypes.SharesForDeposit(amount, tranche.TotalValue, tranche.TotalShares)
	if err != nil {
		return math.ZeroInt(), err
	}

	priorInvested := tranche.TotalInvested
	priorShares := tranche.TotalShares

	tranche.TotalInvested = tranche.TotalInvested.Add(amount)
	tranche.TotalValue = tranche.TotalValue.Add(amount)
	tranche.TotalShares = tranche.TotalShares.Add(shares)
	tranche.UpdatedAt = time.Now().Unix()
	k.SetTranche(ctx, tranche)

	investorAddr, err := sdk.AccAddressFromBech32(investor)
	if err != nil {
		return math.ZeroInt(), err
	}
	coins := sdk.NewCoins(sdk.NewCoin(tranche.TokenDenom, shares))
	if err := k.bankKeeper.MintCoins(ctx, types.ModuleName, coins); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, investorAddr, coins); err != nil {
		return math.ZeroInt(), err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"tranche_shares_issued",
			sdk.NewAttribute("tranche_id", trancheID),
			sdk.NewAttribute("investor", investor),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("prior_invested", priorInvested.String()),
			sdk.NewAttribute("prior_shares", priorShares.String()),
			sdk.NewAttribute("total_invested", tranche.TotalInvested.String()),
			sdk.NewAttribute("total_shares", tranche.TotalShares.String()),
		),
	)

	k.logger.Info("Tranche investment recorded",
		"tranche_id", trancheID,
		"investor", investor,
		"amount", amount.String(),
		"shares", shares.String(),
	)

	return shares, nil
}

// RecordRedemption converts tranche shares into a payout, mutates the
// running totals, and burns the investor's tranche share tokens. A burn
// failure aborts the whole operation.
func (k *Keeper) RecordRedemption(ctx sdk.Context, trancheID, investor string, shares math.Int) (math.Int, error) {
	tranche, err := k.GetTranche(ctx, trancheID)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !tranche.Active {
		return math.ZeroInt(), types.ErrTrancheInactive
	}

	payout, err := pooltypes.PayoutForShares(shares, tranche.TotalValue, tranche.TotalShares)
	if err != nil {
		return math.ZeroInt(), err
	}

	priorValue := tranche.TotalValue
	priorShares := tranche.TotalShares

	// Principal tracking shrinks in proportion to the shares leaving.
	deduction := tranche.TotalInvested.Mul(shares).Quo(priorShares)
	if deduction.GT(tranche.TotalInvested) {
		deduction = tranche.TotalInvested
	}
	tranche.TotalInvested = tranche.TotalInvested.Sub(deduction)
	tranche.TotalValue = tranche.TotalValue.Sub(payout)
	tranche.TotalShares = tranche.TotalShares.Sub(shares)
	tranche.UpdatedAt = time.Now().Unix()
	k.SetTranche(ctx, tranche)

	investorAddr, err := sdk.AccAddressFromBech32(investor)
	if err != nil {
		return math.ZeroInt(), err
	}
	coins := sdk.NewCoins(sdk.NewCoin(tranche.TokenDenom, shares))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, investorAddr, types.ModuleName, coins); err != nil {
		return math.ZeroInt(), err
	}
	if err := k.bankKeeper.BurnCoins(ctx, types.ModuleName, coins); err != nil {
		return math.ZeroInt(), err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"tranche_shares_redeemed",
			sdk.NewAttribute("tranche_id", trancheID),
			sdk.NewAttribute("investor", investor),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("payout", payout.String()),
			sdk.NewAttribute("prior_value", priorValue.String()),
			sdk.NewAttribute("prior_shares", priorShares.String()),
			sdk.NewAttribute("total_value", tranche.TotalValue.String()),
			sdk.NewAttribute("total_shares", tranche.TotalShares.String()),
		),
	)

	k.logger.Info("Tranche redemption recorded",
		"tranche_id", trancheID,
		"investor", investor,
		"shares", shares.String(),
		"payout", payout.String(),
	)

	return payout, nil
}
