package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tasiov/mantis-raydium/app"
)

var addLiquidityFlags struct {
	poolID    string
	inputMint string
	amount    float64
	slippage  float64
	skipClose bool
}

var addLiquidityCmd = &cobra.Command{
	Use:   "add-liquidity",
	Short: "Deposit into a pool, fixing one side and deriving the other",
	Long: `Deposit into a constant-product pool. The amount fixes the side given
by --input-mint; the paired amount is derived from the pool's current
reserves, floored by the slippage tolerance.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		flow, err := buildFlow(cfg)
		if err != nil {
			return err
		}
		result, err := flow.AddLiquidity(context.Background(), app.AddLiquidityParams{
			PoolID:           addLiquidityFlags.poolID,
			InputMint:        addLiquidityFlags.inputMint,
			InputAmount:      addLiquidityFlags.amount,
			SlippagePct:      addLiquidityFlags.slippage,
			SkipCloseAccount: addLiquidityFlags.skipClose,
		})
		if err != nil {
			return err
		}
		if result.Sent {
			cmd.Printf("signature: %s\n", result.Signature)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addLiquidityCmd)
	addLiquidityCmd.Flags().StringVar(&addLiquidityFlags.poolID, "pool-id", "", "pool account address")
	addLiquidityCmd.Flags().StringVar(&addLiquidityFlags.inputMint, "input-mint", "", "mint of the fixed deposit side")
	addLiquidityCmd.Flags().Float64Var(&addLiquidityFlags.amount, "amount", 0, "fixed-side deposit amount in display units")
	addLiquidityCmd.Flags().Float64Var(&addLiquidityFlags.slippage, "slippage", 1, "slippage tolerance in percent")
	addLiquidityCmd.Flags().BoolVar(&addLiquidityFlags.skipClose, "skip-close-account", false, "keep a wrapped SOL account open afterwards")
	_ = addLiquidityCmd.MarkFlagRequired("pool-id")
	_ = addLiquidityCmd.MarkFlagRequired("input-mint")
	_ = addLiquidityCmd.MarkFlagRequired("amount")
}
