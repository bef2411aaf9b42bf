package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/tranche/types"
)

// MsgServer defines the tranche MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// CreateTranche handles MsgCreateTranche
func (m *MsgServer) CreateTranche(ctx context.Context, msg *types.MsgCreateTranche) (*types.MsgCreateTrancheResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	tranche, err := m.keeper.CreateTranche(sdkCtx, msg.Creator, msg.PoolID, msg.Class, msg.PercentageBps, msg.ExpectedYieldBps, msg.TokenSymbol)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateTrancheResponse{
		TrancheID:  tranche.TrancheID,
		TokenDenom: tranche.TokenDenom,
	}, nil
}
