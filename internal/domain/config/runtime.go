package config

import (
	"time"
)

// Chain IDs of development nodes (hardhat, anvil, ganache)
var localChainIDs = map[uint64]bool{
	31337: true,
	1337:  true,
}

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string

	// Network is nil when no network could be resolved
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool
	DryRun         bool
	Timeout        time.Duration
	Confirmations  uint64

	// Resolved configurations
	Project *ProjectConfig

	// DeploymentPath is the per-network deployment config file
	DeploymentPath string
}

// NetworkName returns the selected network name or an empty string
func (c *RuntimeConfig) NetworkName() string {
	if c.Network == nil {
		return ""
	}
	return c.Network.Name
}

// Network represents network configuration
type Network struct {
	Name           string `json:"name"`
	RPCURL         string `json:"rpcUrl"`
	ChainID        uint64 `json:"chainId,omitempty"`
	ExplorerURL    string `json:"explorerUrl,omitempty"`
	ExplorerAPIURL string `json:"explorerApiUrl,omitempty"`
	ExplorerAPIKey string `json:"-"`
	PrivateKey     string `json:"-"`
}

// IsLocal reports whether the network is a development node
func (n *Network) IsLocal() bool {
	if n == nil {
		return false
	}
	if localChainIDs[n.ChainID] {
		return true
	}
	switch n.Name {
	case "hardhat", "localhost", "anvil":
		return true
	}
	return false
}
