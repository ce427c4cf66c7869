package config

// ProjectConfig represents the ztl.toml project file
type ProjectConfig struct {
	DefaultNetwork string                   `toml:"default_network"`
	Artifacts      string                   `toml:"artifacts"`
	Deployments    string                   `toml:"deployments"`
	Confirmations  uint64                   `toml:"confirmations"`
	Networks       map[string]NetworkConfig `toml:"networks"`
	Etherscan      EtherscanConfig          `toml:"etherscan"`
	Verify         VerifyConfig             `toml:"verify"`
	Proxy          ProxyConfig              `toml:"proxy"`
}

// NetworkConfig is a [networks.<name>] table
type NetworkConfig struct {
	RPCURL         string `toml:"rpc_url"`
	ChainID        uint64 `toml:"chain_id,omitempty"`
	PrivateKey     string `toml:"private_key,omitempty"`
	ExplorerURL    string `toml:"explorer_url,omitempty"`
	ExplorerAPIURL string `toml:"explorer_api_url,omitempty"`
}

// EtherscanConfig holds explorer API credentials shared by all networks
type EtherscanConfig struct {
	APIKey string `toml:"api_key,omitempty"`
	APIURL string `toml:"api_url,omitempty"`
}

// VerifyConfig configures the external verification command
type VerifyConfig struct {
	Command []string `toml:"command,omitempty"`
}

// ProxyConfig selects the proxy artifact used for upgradeable contracts
type ProxyConfig struct {
	Artifact string `toml:"artifact,omitempty"`
}
