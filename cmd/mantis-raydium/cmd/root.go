package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tasiov/mantis-raydium/api"
	"github.com/tasiov/mantis-raydium/app"
	"github.com/tasiov/mantis-raydium/backend"
	"github.com/tasiov/mantis-raydium/config"
	"github.com/tasiov/mantis-raydium/spltoken"
	"github.com/tasiov/mantis-raydium/store"
)

var (
	cfgFile string
	debug   bool
	log     *logrus.Entry
)

var rootCmd = &cobra.Command{
	Use:   "mantis-raydium",
	Short: "Manage liquidity positions on Raydium AMM v4 pools",
	Long: `mantis-raydium builds and submits liquidity transactions against
Raydium AMM v4 constant-product pools: deposits sized from current
reserves, withdrawals by LP amount, with an interactive confirmation
before anything is signed.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLog)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

func initLog() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	log = logrus.NewEntry(logger)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if !debug {
		if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
			log.Logger.SetLevel(level)
		}
	}
	return cfg, nil
}

// confirmOnStdin prints the pending operation and proceeds only on an
// explicit "Y".
func confirmOnStdin(message string) bool {
	fmt.Printf("%s\nProceed? [Y/n] ", message)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.TrimSpace(line)
	return strings.EqualFold(answer, "y")
}

// buildFlow assembles the full pipeline behind one RPC endpoint and one
// signing key.
func buildFlow(cfg *config.Config) (*app.Flow, error) {
	payer, err := backend.LoadKeypair(cfg.KeypairPath)
	if err != nil {
		return nil, err
	}

	endpoint := backend.SelectEndpoint(cfg.RPCEndpoints, log)
	log.WithField("endpoint", endpoint).Debug("selected rpc endpoint")
	client := backend.NewClient(endpoint, payer, cfg.MaxSendRetries, log)

	var executions app.ExecutionStore
	if cfg.DB.URL != "" {
		dao, err := store.NewDao(cfg.DB.URL, cfg.DB.Scheme, cfg.DB.User, cfg.DB.Password)
		if err != nil {
			return nil, err
		}
		executions = dao
	}

	return app.NewFlow(app.FlowParams{
		Config:    cfg,
		Fetcher:   api.NewClient(cfg.APIBaseURL, log),
		Resolver:  spltoken.NewResolver(client, payer.PublicKey(), log),
		Submitter: client,
		Balances:  client,
		Confirm:   confirmOnStdin,
		Store:     executions,
		Owner:     payer.PublicKey(),
		Log:       log,
	}), nil
}
