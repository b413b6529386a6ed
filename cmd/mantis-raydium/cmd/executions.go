package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tasiov/mantis-raydium/errs"
	"github.com/tasiov/mantis-raydium/store"
)

var executionsFlags struct {
	poolID string
}

var executionsCmd = &cobra.Command{
	Use:   "executions",
	Short: "List recorded liquidity executions for a pool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DB.URL == "" {
			return errors.Wrap(errs.ErrConfig, "no execution store configured")
		}
		dao, err := store.NewDao(cfg.DB.URL, cfg.DB.Scheme, cfg.DB.User, cfg.DB.Password)
		if err != nil {
			return err
		}
		executions, err := dao.SelectExecutions(executionsFlags.poolID)
		if err != nil {
			return err
		}
		return printJSON(cmd, executions)
	},
}

func init() {
	rootCmd.AddCommand(executionsCmd)
	executionsCmd.Flags().StringVar(&executionsFlags.poolID, "pool-id", "", "pool account address")
	_ = executionsCmd.MarkFlagRequired("pool-id")
}
