package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/assetregistry/types"
)

// MsgServer defines the assetregistry MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// RegisterAsset handles MsgRegisterAsset
func (m *MsgServer) RegisterAsset(ctx context.Context, msg *types.MsgRegisterAsset) (*types.MsgRegisterAssetResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	value, ok := math.NewIntFromString(msg.ValueEstimate)
	if !ok {
		return nil, types.ErrInvalidValue
	}

	asset, err := m.keeper.RegisterAsset(sdkCtx, msg.Custodian, msg.Name, msg.Description, msg.Category, value)
	if err != nil {
		return nil, err
	}

	return &types.MsgRegisterAssetResponse{
		AssetID: asset.AssetID,
		Status:  asset.Status,
	}, nil
}

// VerifyAsset handles MsgVerifyAsset
func (m *MsgServer) VerifyAsset(ctx context.Context, msg *types.MsgVerifyAsset) (*types.MsgVerifyAssetResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	asset, err := m.keeper.VerifyAsset(sdkCtx, msg.Verifier, msg.AssetID)
	if err != nil {
		return nil, err
	}

	return &types.MsgVerifyAssetResponse{Status: asset.Status}, nil
}

// SetAssetManaged handles MsgSetAssetManaged
func (m *MsgServer) SetAssetManaged(ctx context.Context, msg *types.MsgSetAssetManaged) (*types.MsgSetAssetManagedResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	asset, err := m.keeper.SetAssetManaged(sdkCtx, msg.Custodian, msg.AssetID)
	if err != nil {
		return nil, err
	}

	return &types.MsgSetAssetManagedResponse{Status: asset.Status}, nil
}

// RejectAsset handles MsgRejectAsset
func (m *MsgServer) RejectAsset(ctx context.Context, msg *types.MsgRejectAsset) (*types.MsgRejectAssetResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	asset, err := m.keeper.RejectAsset(sdkCtx, msg.Verifier, msg.AssetID, msg.Reason)
	if err != nil {
		return nil, err
	}

	return &types.MsgRejectAssetResponse{Status: asset.Status}, nil
}
