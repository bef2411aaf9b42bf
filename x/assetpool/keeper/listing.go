package keeper

import (
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// ListShares posts an open offer to sell shares at a fixed price per
// share. The shares stay in the seller's position until a buyer fills the
// listing; the position balance is checked again at fill time.
func (k *Keeper) ListShares(ctx sdk.Context, seller, poolID, trancheID string, shares, pricePerShare math.Int) (*types.Listing, error) {
	pool, err := k.GetPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !pool.Active {
		return nil, types.ErrPoolInactive
	}
	if !shares.IsPositive() {
		return nil, types.ErrInvalidAmount
	}
	if !pricePerShare.IsPositive() {
		return nil, types.ErrInvalidPrice
	}

	scope := poolID
	if pool.HasTranches {
		if trancheID == "" || !pool.HasTranche(trancheID) {
			return nil, types.ErrTrancheNotInPool
		}
		scope = trancheID
	} else if trancheID != "" {
		return nil, types.ErrTrancheNotInPool
	}

	position := k.GetPosition(ctx, scope, seller)
	if position.Shares.LT(shares) {
		return nil, types.ErrInsufficientShares
	}

	listing := types.NewListing(poolID, scope, seller, shares, pricePerShare)
	k.SetListing(ctx, listing)
	k.book.Add(listing)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_shares_listed",
			sdk.NewAttribute("listing_id", listing.ListingID),
			sdk.NewAttribute("pool_id", poolID),
			sdk.NewAttribute("scope", scope),
			sdk.NewAttribute("seller", seller),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("price_per_share", pricePerShare.String()),
		),
	)

	k.logger.Info("Shares listed",
		"listing_id", listing.ListingID,
		"scope", scope,
		"seller", seller,
		"shares", shares.String(),
	)

	return listing, nil
}

// BuyListing fills an open listing completely: the buyer pays
// shares * pricePerShare and receives the listed shares.
func (k *Keeper) BuyListing(ctx sdk.Context, buyer, listingID string) (*types.Listing, math.Int, error) {
	listing, err := k.GetListing(ctx, listingID)
	if err != nil {
		return nil, math.ZeroInt(), err
	}
	if listing.Status != types.ListingStatusOpen {
		return nil, math.ZeroInt(), types.ErrListingNotOpen
	}

	payment, err := k.TradeShares(ctx, listing.Seller, buyer, listing.PoolID, trancheScope(listing), listing.Shares, listing.PricePerShare)
	if err != nil {
		return nil, math.ZeroInt(), err
	}

	listing.Status = types.ListingStatusFilled
	listing.UpdatedAt = time.Now().Unix()
	k.SetListing(ctx, listing)
	k.book.Remove(listing)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_listing_filled",
			sdk.NewAttribute("listing_id", listingID),
			sdk.NewAttribute("buyer", buyer),
			sdk.NewAttribute("seller", listing.Seller),
			sdk.NewAttribute("shares", listing.Shares.String()),
			sdk.NewAttribute("payment", payment.String()),
		),
	)

	k.logger.Info("Listing filled",
		"listing_id", listingID,
		"buyer", buyer,
		"payment", payment.String(),
	)

	return listing, payment, nil
}

// CancelListing withdraws an open listing. Only the seller may cancel.
func (k *Keeper) CancelListing(ctx sdk.Context, seller, listingID string) error {
	listing, err := k.GetListing(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.Seller != seller {
		return types.ErrUnauthorized
	}
	if listing.Status != types.ListingStatusOpen {
		return types.ErrListingNotOpen
	}

	listing.Status = types.ListingStatusCancelled
	listing.UpdatedAt = time.Now().Unix()
	k.SetListing(ctx, listing)
	k.book.Remove(listing)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"pool_listing_cancelled",
			sdk.NewAttribute("listing_id", listingID),
			sdk.NewAttribute("seller", seller),
		),
	)

	k.logger.Info("Listing cancelled", "listing_id", listingID, "seller", seller)
	return nil
}

// trancheScope returns the tranche ID for a tranched listing, empty for a
// direct pool listing
func trancheScope(listing *types.Listing) string {
	if listing.Scope == listing.PoolID {
		return ""
	}
	return listing.Scope
}
