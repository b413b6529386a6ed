package cmd

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tasiov/mantis-raydium/api"
)

var poolID string

var fetchPoolCmd = &cobra.Command{
	Use:   "fetch-pool",
	Short: "Print the pool economics snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		info, err := api.NewClient(cfg.APIBaseURL, log).FetchPoolInfo(context.Background(), poolID)
		if err != nil {
			return err
		}
		return printJSON(cmd, info)
	},
}

var fetchPoolKeysCmd = &cobra.Command{
	Use:   "fetch-pool-keys",
	Short: "Print the pool's on-chain address set",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		keys, err := api.NewClient(cfg.APIBaseURL, log).FetchPoolKeys(context.Background(), poolID)
		if err != nil {
			return err
		}
		return printJSON(cmd, keys)
	},
}

func printJSON(cmd *cobra.Command, value interface{}) error {
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	cmd.Println(string(out))
	return nil
}

func init() {
	rootCmd.AddCommand(fetchPoolCmd)
	rootCmd.AddCommand(fetchPoolKeysCmd)
	for _, c := range []*cobra.Command{fetchPoolCmd, fetchPoolKeysCmd} {
		c.Flags().StringVar(&poolID, "pool-id", "", "pool account address")
		_ = c.MarkFlagRequired("pool-id")
	}
}
