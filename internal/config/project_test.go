package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProject = `
default_network = "goerli"
deployments = "config"

[networks.goerli]
rpc_url = "https://eth-goerli.g.alchemy.com/v2/${ZTL_TEST_ALCHEMY_KEY}"
chain_id = 5
explorer_url = "https://goerli.etherscan.io"
explorer_api_url = "https://api-goerli.etherscan.io/api"

[networks.mainnet]
rpc_url = "https://eth.example.org"
chain_id = 1
private_key = "0xabc123"

[etherscan]
api_key = "${ZTL_TEST_ETHERSCAN}"

[verify]
command = ["npx", "hardhat", "verify"]
`

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFile), []byte(content), 0644))
	return dir
}

func TestLoadProject(t *testing.T) {
	t.Run("parses and expands env", func(t *testing.T) {
		t.Setenv("ZTL_TEST_ALCHEMY_KEY", "k123")
		t.Setenv("ZTL_TEST_ETHERSCAN", "scan")
		dir := writeProject(t, sampleProject)

		cfg, err := LoadProject(dir)
		require.NoError(t, err)

		assert.Equal(t, "goerli", cfg.DefaultNetwork)
		assert.Equal(t, "config", cfg.Deployments)
		assert.Equal(t, "artifacts", cfg.Artifacts)
		assert.Equal(t, uint64(1), cfg.Confirmations)
		assert.Equal(t, "ERC1967Proxy", cfg.Proxy.Artifact)
		assert.Equal(t, "https://eth-goerli.g.alchemy.com/v2/k123", cfg.Networks["goerli"].RPCURL)
		assert.Equal(t, uint64(5), cfg.Networks["goerli"].ChainID)
		assert.Equal(t, "scan", cfg.Etherscan.APIKey)
		assert.Equal(t, []string{"npx", "hardhat", "verify"}, cfg.Verify.Command)
	})

	t.Run("loads .env before expansion", func(t *testing.T) {
		dir := writeProject(t, `
[networks.sepolia]
rpc_url = "${ZTL_TEST_DOTENV_RPC}"
`)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ZTL_TEST_DOTENV_RPC=http://from-dotenv:8545\n"), 0644))
		t.Cleanup(func() { os.Unsetenv("ZTL_TEST_DOTENV_RPC") })

		cfg, err := LoadProject(dir)
		require.NoError(t, err)
		assert.Equal(t, "http://from-dotenv:8545", cfg.Networks["sepolia"].RPCURL)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := LoadProject(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "deployments", cfg.Deployments)
		assert.NotNil(t, cfg.Networks)
	})

	t.Run("invalid toml", func(t *testing.T) {
		dir := writeProject(t, "networks = [")
		_, err := LoadProject(dir)
		assert.Error(t, err)
	})
}

func TestResolveNetwork(t *testing.T) {
	t.Setenv("ZTL_TEST_ALCHEMY_KEY", "k")
	t.Setenv("ZTL_TEST_ETHERSCAN", "scan")
	t.Setenv("PRIVATE_KEY", "0xfeed")
	cfg, err := LoadProject(writeProject(t, sampleProject))
	require.NoError(t, err)

	t.Run("configured network", func(t *testing.T) {
		network, err := ResolveNetwork(cfg, "goerli")
		require.NoError(t, err)
		assert.Equal(t, "goerli", network.Name)
		assert.Equal(t, uint64(5), network.ChainID)
		assert.Equal(t, "https://api-goerli.etherscan.io/api", network.ExplorerAPIURL)
		assert.Equal(t, "scan", network.ExplorerAPIKey)
		assert.Equal(t, "feed", network.PrivateKey)
		assert.False(t, network.IsLocal())
	})

	t.Run("network key wins over PRIVATE_KEY", func(t *testing.T) {
		network, err := ResolveNetwork(cfg, "mainnet")
		require.NoError(t, err)
		assert.Equal(t, "abc123", network.PrivateKey)
		assert.Equal(t, defaultEtherscanAPI, network.ExplorerAPIURL)
	})

	t.Run("builtin hardhat", func(t *testing.T) {
		network, err := ResolveNetwork(cfg, "hardhat")
		require.NoError(t, err)
		assert.Equal(t, uint64(31337), network.ChainID)
		assert.True(t, network.IsLocal())
	})

	t.Run("unknown network", func(t *testing.T) {
		_, err := ResolveNetwork(cfg, "polygon")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("names include builtins", func(t *testing.T) {
		assert.Equal(t, []string{"goerli", "hardhat", "localhost", "mainnet"}, NetworkNames(cfg))
	})
}
