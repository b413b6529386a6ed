package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasiov/mantis-raydium/errs"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"https://api.mainnet-beta.solana.com"}, cfg.RPCEndpoints)
	assert.Equal(t, "https://api-v3.raydium.io", cfg.APIBaseURL)
	assert.Equal(t, "./keypair.json", cfg.KeypairPath)
	assert.Equal(t, uint64(1_000_000), cfg.ComputeBudget.MicroLamports)
	assert.Equal(t, uint32(1_000_000), cfg.ComputeBudget.Units)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().APIBaseURL, cfg.APIBaseURL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
rpc_endpoints:
  - https://rpc.example.com
keypair_path: /tmp/id.json
max_send_retries: 7
compute_budget:
  micro_lamports: 5000
  units: 400000
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://rpc.example.com"}, cfg.RPCEndpoints)
	assert.Equal(t, "/tmp/id.json", cfg.KeypairPath)
	assert.Equal(t, uint(7), cfg.MaxSendRetries)
	assert.Equal(t, uint64(5000), cfg.ComputeBudget.MicroLamports)
	assert.Equal(t, uint32(400000), cfg.ComputeBudget.Units)
	// Untouched fields keep their defaults.
	assert.Equal(t, Default().APIBaseURL, cfg.APIBaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/definitely/not/here.yaml")
	assert.True(t, errors.Is(err, errs.ErrConfig))
}
