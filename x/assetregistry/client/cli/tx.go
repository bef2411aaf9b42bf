package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openrwa/rwa-chain/x/assetregistry/types"
)

// GetTxCmd returns the transaction commands for the assetregistry module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "assetregistry",
		Short:                      "Asset registry module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdRegisterAsset(),
		CmdVerifyAsset(),
		CmdSetAssetManaged(),
		CmdRejectAsset(),
	)

	return cmd
}

// CmdRegisterAsset returns the command to register an asset
func CmdRegisterAsset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register [name] [description] [category] [value-estimate]",
		Short: "Register a real-world asset",
		Long: `Register a real-world asset for verification. Categories:
receivable, invoice, real_estate, commodity, other.

Example:
  rwad tx assetregistry register "Invoice batch 42" "Q3 receivables" receivable 500000 --from custodian`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRegisterAsset{
				Custodian:     clientCtx.GetFromAddress().String(),
				Name:          args[0],
				Description:   args[1],
				Category:      args[2],
				ValueEstimate: args[3],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdVerifyAsset returns the command to verify a pending asset
func CmdVerifyAsset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [asset-id]",
		Short: "Verify a pending asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgVerifyAsset{
				Verifier: clientCtx.GetFromAddress().String(),
				AssetID:  args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdSetAssetManaged returns the command to mark a verified asset managed
func CmdSetAssetManaged() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-managed [asset-id]",
		Short: "Mark a verified asset as under management",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgSetAssetManaged{
				Custodian: clientCtx.GetFromAddress().String(),
				AssetID:   args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRejectAsset returns the command to reject an asset
func CmdRejectAsset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reject [asset-id] [reason]",
		Short: "Reject a pending or verified asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRejectAsset{
				Verifier: clientCtx.GetFromAddress().String(),
				AssetID:  args[0],
				Reason:   args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
