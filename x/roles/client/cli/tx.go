package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openrwa/rwa-chain/x/roles/types"
)

// GetTxCmd returns the transaction commands for the roles module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "roles",
		Short:                      "Roles module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdGrantRole(),
		CmdRevokeRole(),
	)

	return cmd
}

// CmdGrantRole returns the command to grant a role
func CmdGrantRole() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grant [address] [role]",
		Short: "Grant a role to an address",
		Long: `Grant a role to an address. Roles: ADMIN, MANAGER, ASSET_CUSTODIAN.

Example:
  rwad tx roles grant cosmos1... MANAGER --from admin`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgGrantRole{
				Authority: clientCtx.GetFromAddress().String(),
				Address:   args[0],
				Role:      args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdRevokeRole returns the command to revoke a role
func CmdRevokeRole() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke [address] [role]",
		Short: "Revoke a role from an address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRevokeRole{
				Authority: clientCtx.GetFromAddress().String(),
				Address:   args[0],
				Role:      args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
