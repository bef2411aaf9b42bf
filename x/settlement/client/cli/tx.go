package cli

import (
	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"

	"github.com/openrwa/rwa-chain/x/settlement/types"
)

// GetTxCmd returns the transaction commands for the settlement module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        "settlement",
		Short:                      "Settlement module transaction commands",
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(
		CmdRecordPayment(),
		CmdDistributeYield(),
		CmdMaturePool(),
	)

	return cmd
}

// CmdRecordPayment returns the command to record an obligor payment
func CmdRecordPayment() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record-payment [pool-id] [amount]",
		Short: "Record an obligor payment into pool custody",
		Long: `Record an obligor payment. The amount is pulled from the manager
account into pool custody and held until distribution.

Example:
  rwad tx settlement record-payment pool-1 10300 --from manager`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgRecordPayment{
				Manager: clientCtx.GetFromAddress().String(),
				PoolID:  args[0],
				Amount:  args[1],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdDistributeYield returns the command to distribute pending yield
func CmdDistributeYield() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute-yield [pool-id]",
		Short: "Distribute the pending payment through the tranche waterfall",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgDistributeYield{
				Manager: clientCtx.GetFromAddress().String(),
				PoolID:  args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdMaturePool returns the command to mature a pool
func CmdMaturePool() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mature-pool [pool-id]",
		Short: "Mature a pool after all payments are distributed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			msg := &types.MsgMaturePool{
				Manager: clientCtx.GetFromAddress().String(),
				PoolID:  args[0],
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), msg)
		},
	}

	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
