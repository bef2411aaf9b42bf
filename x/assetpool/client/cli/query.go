package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
)

// GetQueryCmd returns the cli query commands for the assetpool module
func GetQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "assetpool",
		Short:                      "Querying commands for the assetpool module",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdQueryPool(),
		CmdQueryPosition(),
		CmdQueryListings(),
	)

	return cmd
}

// CmdQueryPool returns the command to query a pool
func CmdQueryPool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool [pool-id]",
		Short: "Query a pool by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Pool query for ID: %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryPosition returns the command to query an investor position
func CmdQueryPosition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position [pool-or-tranche-id] [investor]",
		Short: "Query an investor position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Position query for %s in %s requires running node connection\n", args[1], args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}

// CmdQueryListings returns the command to query open listings
func CmdQueryListings() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listings [pool-or-tranche-id]",
		Short: "Query open share listings, cheapest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("Listings query for %s requires running node connection\n", args[0])
			return nil
		},
	}

	flags.AddQueryFlagsToCmd(cmd)
	return cmd
}
