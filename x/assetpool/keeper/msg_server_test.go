package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

// TestMsgServerInvestLifecycle drives a pool from creation through a
// tranched investment and a secondary-market sale, entirely through the
// message server.
func TestMsgServerInvestLifecycle(t *testing.T) {
	env := setupKeeper(t)
	server := NewMsgServerImpl(env.keeper)

	created, err := server.CreatePool(env.ctx, &types.MsgCreatePool{
		Creator:           managerAddr,
		Name:              "Receivables Pool",
		Description:       "Q3 trade receivables",
		ManagementFeeBps:  100,
		PerformanceFeeBps: 1000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.PoolID)

	attached, err := server.AttachTranches(env.ctx, &types.MsgAttachTranches{
		Creator:        managerAddr,
		PoolID:         created.PoolID,
		SeniorSplitBps: 7000,
		SeniorYieldBps: 800,
		JuniorYieldBps: 1500,
		SeniorSymbol:   "SNR",
		JuniorSymbol:   "JNR",
	})
	require.NoError(t, err)
	require.NotEmpty(t, attached.SeniorTrancheID)
	require.NotEmpty(t, attached.JuniorTrancheID)

	invested, err := server.Invest(env.ctx, &types.MsgInvest{
		Investor:  investorAddr,
		PoolID:    created.PoolID,
		TrancheID: attached.SeniorTrancheID,
		Amount:    "7000",
	})
	require.NoError(t, err)
	require.Equal(t, "7000", invested.SharesIssued)

	listed, err := server.ListShares(env.ctx, &types.MsgListShares{
		Seller:        investorAddr,
		PoolID:        created.PoolID,
		TrancheID:     attached.SeniorTrancheID,
		Shares:        "2000",
		PricePerShare: "1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, listed.ListingID)

	bought, err := server.BuyListing(env.ctx, &types.MsgBuyListing{
		Buyer:     investorB,
		ListingID: listed.ListingID,
	})
	require.NoError(t, err)
	require.Equal(t, "2000", bought.Shares)
	require.Equal(t, "2000", bought.Payment)

	// Shares changed hands, the tranche total is unchanged
	senior, err := env.tranche.GetTranche(env.ctx, attached.SeniorTrancheID)
	require.NoError(t, err)
	require.True(t, senior.TotalShares.Equal(math.NewInt(7000)))

	buyerPosition := env.keeper.GetPosition(env.ctx, attached.SeniorTrancheID, investorB)
	require.True(t, buyerPosition.Shares.Equal(math.NewInt(2000)))
}

func TestMsgServerRejectsMalformedAmounts(t *testing.T) {
	env := setupKeeper(t)
	server := NewMsgServerImpl(env.keeper)

	pool := env.createPool(t)

	_, err := server.Invest(env.ctx, &types.MsgInvest{
		Investor: investorAddr,
		PoolID:   pool.PoolID,
		Amount:   "seven thousand",
	})
	require.ErrorIs(t, err, types.ErrInvalidAmount)

	_, err = server.Redeem(env.ctx, &types.MsgRedeem{
		Investor: investorAddr,
		PoolID:   pool.PoolID,
		Shares:   "-1x",
	})
	require.ErrorIs(t, err, types.ErrInvalidAmount)
}

func TestMsgServerSetPoolActiveGating(t *testing.T) {
	env := setupKeeper(t)
	server := NewMsgServerImpl(env.keeper)

	pool := env.createPool(t)

	_, err := server.SetPoolActive(env.ctx, &types.MsgSetPoolActive{
		Creator: managerAddr,
		PoolID:  pool.PoolID,
		Active:  false,
	})
	require.NoError(t, err)

	_, err = server.Invest(env.ctx, &types.MsgInvest{
		Investor: investorAddr,
		PoolID:   pool.PoolID,
		Amount:   "100",
	})
	require.ErrorIs(t, err, types.ErrPoolInactive)
}
