package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/roles/types"
)

// MsgServer defines the roles MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// GrantRole handles MsgGrantRole
func (m *MsgServer) GrantRole(ctx context.Context, msg *types.MsgGrantRole) (*types.MsgGrantRoleResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	grant, err := m.keeper.GrantRole(sdkCtx, msg.Authority, msg.Address, msg.Role)
	if err != nil {
		return nil, err
	}

	return &types.MsgGrantRoleResponse{
		Address: grant.Address,
		Role:    grant.Role,
	}, nil
}

// RevokeRole handles MsgRevokeRole
func (m *MsgServer) RevokeRole(ctx context.Context, msg *types.MsgRevokeRole) (*types.MsgRevokeRoleResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.RevokeRole(sdkCtx, msg.Authority, msg.Address, msg.Role); err != nil {
		return nil, err
	}

	return &types.MsgRevokeRoleResponse{}, nil
}
