package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tasiov/mantis-raydium/app"
)

var removeLiquidityFlags struct {
	poolID    string
	lpAmount  float64
	baseMin   float64
	quoteMin  float64
	slippage  float64
	skipClose bool
}

var removeLiquidityCmd = &cobra.Command{
	Use:   "remove-liquidity",
	Short: "Burn LP tokens and withdraw both pool sides",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		flow, err := buildFlow(cfg)
		if err != nil {
			return err
		}
		result, err := flow.RemoveLiquidity(context.Background(), app.RemoveLiquidityParams{
			PoolID:           removeLiquidityFlags.poolID,
			LpAmount:         removeLiquidityFlags.lpAmount,
			BaseAmountMin:    removeLiquidityFlags.baseMin,
			QuoteAmountMin:   removeLiquidityFlags.quoteMin,
			SlippagePct:      removeLiquidityFlags.slippage,
			SkipCloseAccount: removeLiquidityFlags.skipClose,
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
	rootCmd.AddCommand(removeLiquidityCmd)
	removeLiquidityCmd.Flags().StringVar(&removeLiquidityFlags.poolID, "pool-id", "", "pool account address")
	removeLiquidityCmd.Flags().Float64Var(&removeLiquidityFlags.lpAmount, "lp-amount", 0, "LP amount to burn in display units")
	removeLiquidityCmd.Flags().Float64Var(&removeLiquidityFlags.baseMin, "base-min", 0, "minimum base side withdrawal in display units")
	removeLiquidityCmd.Flags().Float64Var(&removeLiquidityFlags.quoteMin, "quote-min", 0, "minimum quote side withdrawal in display units")
	removeLiquidityCmd.Flags().Float64Var(&removeLiquidityFlags.slippage, "slippage", 1, "slippage tolerance in percent")
	removeLiquidityCmd.Flags().BoolVar(&removeLiquidityFlags.skipClose, "skip-close-account", false, "keep a wrapped SOL account open afterwards")
	_ = removeLiquidityCmd.MarkFlagRequired("pool-id")
	_ = removeLiquidityCmd.MarkFlagRequired("lp-amount")
}
