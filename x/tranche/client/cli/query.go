package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the tranche module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "tranche",
		Short:                      "Querying commands for the tranche module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryTranche(),
		CmdQueryTranches(),
	)

	return cmd
}

// CmdQueryTranche returns the command to query a tranche
func CmdQueryTranche() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tranche [tranche-id]",
		Short: "Query a tranche by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Tranche query for ID: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryTranches returns the command to query the tranches of a pool
func CmdQueryTranches() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tranches [pool-id]",
		Short: "Query the tranches of a pool, most senior first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Tranches query for pool: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
