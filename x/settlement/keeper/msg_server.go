package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openrwa/rwa-chain/x/settlement/types"
)

// MsgServer defines the settlement MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

// RecordPayment handles MsgRecordPayment
func (m *MsgServer) RecordPayment(ctx context.Context, msg *types.MsgRecordPayment) (*types.MsgRecordPaymentResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	amount, ok := math.NewIntFromString(msg.Amount)
	if !ok {
		return nil, types.ErrInvalidAmount
	}

	settlement, err := m.keeper.RecordPayment(sdkCtx, msg.Manager, msg.PoolID, amount)
	if err != nil {
		return nil, err
	}

	return &types.MsgRecordPaymentResponse{PaymentEpoch: settlement.PaymentEpoch}, nil
}

// DistributeYield handles MsgDistributeYield
func (m *MsgServer) DistributeYield(ctx context.Context, msg *types.MsgDistributeYield) (*types.MsgDistributeYieldResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	distributed, settlement, err := m.keeper.DistributeYield(sdkCtx, msg.Manager, msg.PoolID)
	if err != nil {
		return nil, err
	}

	return &types.MsgDistributeYieldResponse{
		Distributed:      distributed.String(),
		DistributedEpoch: settlement.DistributedEpoch,
	}, nil
}

// MaturePool handles MsgMaturePool
func (m *MsgServer) MaturePool(ctx context.Context, msg *types.MsgMaturePool) (*types.MsgMaturePoolResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	if err := m.keeper.MaturePool(sdkCtx, msg.Manager, msg.PoolID); err != nil {
		return nil, err
	}

	return &types.MsgMaturePoolResponse{}, nil
}
