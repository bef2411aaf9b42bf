package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openrwa/rwa-chain/x/assetpool/types"
)

const flagTranche = "tranche"

// GetTxCmd returns the transaction commands for the assetpool module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "assetpool",
		Short:                      "Asset pool module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdCreatePool(),
		CmdSetPoolActive(),
		CmdAttachAsset(),
		CmdAttachTranches(),
		CmdInvest(),
		CmdRedeem(),
		CmdListShares(),
		CmdBuyListing(),
		CmdCancelListing(),
	)

	return cmd
}

// CmdCreatePool returns the command to create a pool
func CmdCreatePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-pool [name] [description] [management-fee-bps] [performance-fee-bps]",
		Short: "Create a new asset pool",
		Long: `Create a new asset pool. Fees are expressed in basis points.

Example:
  rwad tx assetpool create-pool "Trade Receivables Q3" "invoice pool" 100 1000 --from manager`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			mgmtFee, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid management fee: %v", err)
			}
			perfFee, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid performance fee: %v", err)
			}

			msg := &types.MsgCreatePool{
				Creator:           clientCtx.GetFromAddress().String(),
				Name:              args[0],
				Description:       args[1],
				ManagementFeeBps:  mgmtFee,
				PerformanceFeeBps: perfFee,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetPoolActive returns the command to open or close a pool
func CmdSetPoolActive() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-active [pool-id] [true|false]",
		Short: "Open or close a pool for investment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			active, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid active flag: %v", err)
			}

			msg := &types.MsgSetPoolActive{
				Creator: clientCtx.GetFromAddress().String(),
				PoolID:  args[0],
				Active:  active,
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAttachAsset returns the command to attach a managed asset to a pool
func CmdAttachAsset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach-asset [pool-id] [asset-id]",
		Short: "Attach a managed asset to a pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgAttachAsset{
				Creator: clientCtx.GetFromAddress().String(),
				PoolID:  args[0],
				AssetID: args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdAttachTranches returns the command to attach a senior/junior tranche pair
func CmdAttachTranches() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach-tranches [pool-id] [senior-split-bps] [senior-yield-bps] [junior-yield-bps] [senior-symbol] [junior-symbol]",
		Short: "Attach a senior/junior tranche pair to a pool",
		Long: `Attach a senior/junior tranche pair to a pool. The junior tranche
takes the remainder of the split.

Example:
  rwad tx assetpool attach-tranches pool-1 7000 800 1500 SNR JNR --from manager`,
		Args: cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			seniorSplit, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid senior split: %v", err)
			}
			seniorYield, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid senior yield: %v", err)
			}
			juniorYield, err := strconv.ParseInt(args[3], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid junior yield: %v", err)
			}

			msg := &types.MsgAttachTranches{
				Creator:        clientCtx.GetFromAddress().String(),
				PoolID:         args[0],
				SeniorSplitBps: seniorSplit,
				SeniorYieldBps: seniorYield,
				JuniorYieldBps: juniorYield,
				SeniorSymbol:   args[4],
				JuniorSymbol:   args[5],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdInvest returns the command to invest into a pool or tranche
func CmdInvest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invest [pool-id] [amount]",
		Short: "Invest into a pool, or into a tranche with --tranche",
		Long: `Invest payment tokens into a pool in exchange for shares.

Examples:
  rwad tx assetpool invest pool-1 10000 --from alice
  rwad tx assetpool invest pool-1 7000 --tranche trn-abc --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			trancheID, err := cmd.Flags().GetString(flagTranche)
			if err != nil {
				return err
			}

			msg := &types.MsgInvest{
				Investor:  clientCtx.GetFromAddress().String(),
				PoolID:    args[0],
				TrancheID: trancheID,
				Amount:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagTranche, "", "Tranche to invest into (tranched pools only)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRedeem returns the command to redeem shares
func CmdRedeem() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redeem [pool-id] [shares]",
		Short: "Redeem shares for payment tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			trancheID, err := cmd.Flags().GetString(flagTranche)
			if err != nil {
				return err
			}

			msg := &types.MsgRedeem{
				Investor:  clientCtx.GetFromAddress().String(),
				PoolID:    args[0],
				TrancheID: trancheID,
				Shares:    args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagTranche, "", "Tranche to redeem from (tranched pools only)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdListShares returns the command to list shares for sale
func CmdListShares() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list-shares [pool-id] [shares] [price-per-share]",
		Short: "List shares for sale on the secondary market",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			trancheID, err := cmd.Flags().GetString(flagTranche)
			if err != nil {
				return err
			}

			msg := &types.MsgListShares{
				Seller:        clientCtx.GetFromAddress().String(),
				PoolID:        args[0],
				TrancheID:     trancheID,
				Shares:        args[1],
				PricePerShare: args[2],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	cmd.Flags().String(flagTranche, "", "Tranche the shares belong to (tranched pools only)")
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdBuyListing returns the command to buy a listing
func CmdBuyListing() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy-listing [listing-id]",
		Short: "Buy a share listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgBuyListing{
				Buyer:     clientCtx.GetFromAddress().String(),
				ListingID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCancelListing returns the command to cancel a listing
func CmdCancelListing() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel-listing [listing-id]",
		Short: "Cancel an open share listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgCancelListing{
				Seller:    clientCtx.GetFromAddress().String(),
				ListingID: args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
