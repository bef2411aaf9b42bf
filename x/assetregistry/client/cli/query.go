package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the assetregistry module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "assetregistry",
		Short:                      "Querying commands for the assetregistry module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryAsset(),
	)

	return cmd
}

// CmdQueryAsset returns the command to query an asset
func CmdQueryAsset() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset [asset-id]",
		Short: "Query an asset by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Asset query for ID: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
