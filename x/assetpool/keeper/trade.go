package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// TradeShares moves shares between two positions and settles the payment
// leg in one unit: buyer pays shares * pricePerShare to the seller, the
// seller's shares move to the buyer. A failed payment aborts the share
// transfer too.
func (k *Keeper) TradeShares(ctx sdk.Context, seller, buyer, poolID, trancheID string, shares, pricePerShare math.Int) (math.Int, error) {
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
	if seller == buyer {
		return math.ZeroInt(), types.ErrSelfTrade
	}
	if !shares.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidAmount
	}
	if !pricePerShare.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidPrice
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

	sellerPosition := k.GetPosition(ctx, scope, seller)
	if sellerPosition.Shares.LT(shares) {
		return math.ZeroInt(), types.ErrInsufficientShares
	}

	payment := shares.Mul(pricePerShare)

	// Move the shares first, then settle payment. Either leg failing
	// unwinds the whole tx.
	priorSellerShares := sellerPosition.Shares
	sellerPosition.Shares = sellerPosition.Shares.Sub(shares)
	sellerPosition.DeductInvested(shares, priorSellerShares)
	sellerPosition.UpdatedAt = time.Now().Unix()
	k.SetPosition(ctx, sellerPosition)

	buyerPosition := k.GetPosition(ctx, scope, buyer)
	buyerPosition.Shares = buyerPosition.Shares.Add(shares)
	buyerPosition.Invested = buyerPosition.Invested.Add(payment)
	buyerPosition.UpdatedAt = time.Now().Unix()
	k.SetPosition(ctx, buyerPosition)

	sellerAddr, err := sdk.AccAddressFromBech32(seller)
	if err != nil {
		return math.ZeroInt(), err
	}
	buyerAddr, err := sdk.AccAddressFromBech32(buyer)
	if err != nil {
		return math.ZeroInt(), err
	}
	// Tranche-scoped trades also move the seller's share tokens so bank
	// balances keep tracking positions; a buyer's later redemption burns
	// from their own balance.
	if pool.HasTranches {
		denom, err := k.trancheKeeper.TokenDenom(ctx, trancheID)
		if err != nil {
			return math.ZeroInt(), err
		}
		tokens := sdk.NewCoins(sdk.NewCoin(denom, shares))
		if err := k.bankKeeper.SendCoins(ctx, sellerAddr, buyerAddr, tokens); err != nil {
			return math.ZeroInt(), types.ErrCounterpartyPaymentFailed.Wrap(err.Error())
		}
	}

	coins := sdk.NewCoins(sdk.NewCoin(k.paymentDenom, payment))
	if err := k.bankKeeper.SendCoins(ctx, buyerAddr, sellerAddr, coins); err != nil {
		return math.ZeroInt(), types.ErrCounterpartyPaymentFailed.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_shares_traded",
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("scope", scope),
			sdk.NewAttribute("seller", seller),
			sdk.NewAttribute("buyer", buyer),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("price_per_share", pricePerShare.String()),
			sdk.NewAttribute("payment", payment.String()),
		),
	)

	k.logger.Info("Share trade settled",
		"pool_id", poolID,
		"scope", scope,
		"seller", seller,
		"buyer", buyer,
		"shares", shares.String(),
		"payment", payment.String(),
	)

	return payment, nil
}
