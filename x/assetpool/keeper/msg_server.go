package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// MsgServer defines the assetpool MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.ZeroInt(), types.ErrInvalidAmount
	}
	return amount, nil
}

// CreatePool handles MsgCreatePool
func (m *MsgServer) CreatePool(ctx context.Context, msg *types.MsgCreatePool) (*types.MsgCreatePoolResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	pool, err := m.keeper.CreatePool(sdkCtx, msg.Creator, msg.Name, msg.Description, msg.ManagementFeeBps, msg.PerformanceFeeBps)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreatePoolResponse{PoolID: pool.PoolID}, nil
}

// SetPoolActive handles MsgSetPoolActive
func (m *MsgServer) SetPoolActive(ctx context.Context, msg *types.MsgSetPoolActive) (*types.MsgSetPoolActiveResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.SetPoolActive(sdkCtx, msg.Creator, msg.PoolID, msg.Active); err != nil {
		return nil, err
	}

	return &types.MsgSetPoolActiveResponse{}, nil
}

// AttachAsset handles MsgAttachAsset
func (m *MsgServer) AttachAsset(ctx context.Context, msg *types.MsgAttachAsset) (*types.MsgAttachAssetResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.AttachAsset(sdkCtx, msg.Creator, msg.PoolID, msg.AssetID); err != nil {
		return nil, err
	}

	return &types.MsgAttachAssetResponse{}, nil
}

// AttachTranches handles MsgAttachTranches
func (m *MsgServer) AttachTranches(ctx context.Context, msg *types.MsgAttachTranches) (*types.MsgAttachTranchesResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	seniorID, juniorID, err := m.keeper.AttachTranches(sdkCtx, msg.Creator, msg.PoolID, msg.SeniorSplitBps, msg.SeniorYieldBps, msg.JuniorYieldBps, msg.SeniorSymbol, msg.JuniorSymbol)
	if err != nil {
		return nil, err
	}

	return &types.MsgAttachTranchesResponse{
		SeniorTrancheID: seniorID,
		JuniorTrancheID: juniorID,
	}, nil
}

// Invest handles MsgInvest
func (m *MsgServer) Invest(ctx context.Context, msg *types.MsgInvest) (*types.MsgInvestResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, err := parseAmount(msg.Amount)
	if err != nil {
		return nil, err
	}

	shares, err := m.keeper.Invest(sdkCtx, msg.Investor, msg.PoolID, msg.TrancheID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgInvestResponse{SharesIssued: shares.String()}, nil
}

// Redeem handles MsgRedeem
func (m *MsgServer) Redeem(ctx context.Context, msg *types.MsgRedeem) (*types.MsgRedeemResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	shares, err := parseAmount(msg.Shares)
	if err != nil {
		return nil, err
	}

	payout, err := m.keeper.Redeem(sdkCtx, msg.Investor, msg.PoolID, msg.TrancheID, shares)
	if err != nil {
		return nil, err
	}

	return &types.MsgRedeemResponse{Payout: payout.String()}, nil
}

// TradeShares handles MsgTradeShares
func (m *MsgServer) TradeShares(ctx context.Context, msg *types.MsgTradeShares) (*types.MsgTradeSharesResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	shares, err := parseAmount(msg.Shares)
	if err != nil {
		return nil, err
	}
	price, err := parseAmount(msg.PricePerShare)
	if err != nil {
		return nil, err
	}

	payment, err := m.keeper.TradeShares(sdkCtx, msg.Seller, msg.Buyer, msg.PoolID, msg.TrancheID, shares, price)
	if err != nil {
		return nil, err
	}

	return &types.MsgTradeSharesResponse{Payment: payment.String()}, nil
}

// ListShares handles MsgListShares
func (m *MsgServer) ListShares(ctx context.Context, msg *types.MsgListShares) (*types.MsgListSharesResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	shares, err := parseAmount(msg.Shares)
	if err != nil {
		return nil, err
	}
	price, err := parseAmount(msg.PricePerShare)
	if err != nil {
		return nil, err
	}

	listing, err := m.keeper.ListShares(sdkCtx, msg.Seller, msg.PoolID, msg.TrancheID, shares, price)
	if err != nil {
		return nil, err
	}

	return &types.MsgListSharesResponse{ListingID: listing.ListingID}, nil
}

// BuyListing handles MsgBuyListing
func (m *MsgServer) BuyListing(ctx context.Context, msg *types.MsgBuyListing) (*types.MsgBuyListingResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	listing, payment, err := m.keeper.BuyListing(sdkCtx, msg.Buyer, msg.ListingID)
	if err != nil {
		return nil, err
	}

	return &types.MsgBuyListingResponse{
		Shares:  listing.Shares.String(),
		Payment: payment.String(),
	}, nil
}

// CancelListing handles MsgCancelListing
func (m *MsgServer) CancelListing(ctx context.Context, msg *types.MsgCancelListing) (*types.MsgCancelListingResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.CancelListing(sdkCtx, msg.Seller, msg.ListingID); err != nil {
		return nil, err
	}

	return &types.MsgCancelListingResponse{}, nil
}
