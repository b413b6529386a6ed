// Package config carries every tunable of the liquidity client in one
// explicit struct, loaded once per invocation and passed to components.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/tasiov/mantis-raydium/errs"
)

type Config struct {
	// RPCEndpoints lists candidate chain RPC nodes; the lowest-latency
	// reachable one is used.
	RPCEndpoints []string `mapstructure:"rpc_endpoints"`
	// KeypairPath points at the primary signing key file.
	KeypairPath string `mapstructure:"keypair_path"`
	// APIBaseURL is the pool index service.
	APIBaseURL string `mapstructure:"api_base_url"`
	// MaxSendRetries bounds send-level retries inside the RPC node.
	MaxSendRetries uint          `mapstructure:"max_send_retries"`
	ComputeBudget  ComputeBudget `mapstructure:"compute_budget"`
	DB             DB            `mapstructure:"db"`
	Log            Log           `mapstructure:"log"`
}

// ComputeBudget holds the optional compute-budget directives prepended to
// every transaction. A zero value drops the corresponding instruction.
type ComputeBudget struct {
	MicroLamports uint64 `mapstructure:"micro_lamports"`
	Units         uint32 `mapstructure:"units"`
}

// DB configures the optional execution record; empty URL disables it.
type DB struct {
	URL      string `mapstructure:"url"`
	Scheme   string `mapstructure:"scheme"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

func Default() *Config {
	return &Config{
		RPCEndpoints:   []string{"https://api.mainnet-beta.solana.com"},
		KeypairPath:    "./keypair.json",
		APIBaseURL:     "https://api-v3.raydium.io",
		MaxSendRetries: 3,
		ComputeBudget: ComputeBudget{
			MicroLamports: 1_000_000,
			Units:         1_000_000,
		},
		Log: Log{Level: "info"},
	}
}

// Load reads the configuration file (when given) and the MANTIS_* environment
// on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MANTIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errs.ErrConfig, "read config %s: %s", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrapf(errs.ErrConfig, "invalid config format: %s", err)
	}
	if len(cfg.RPCEndpoints) == 0 {
		return nil, errors.Wrap(errs.ErrConfig, "no rpc endpoints configured")
	}
	return cfg, nil
}
