package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// ProjectFile is the name of the project configuration file
const ProjectFile = "ztl.toml"

const (
	defaultArtifactsDir   = "artifacts"
	defaultDeploymentsDir = "deployments"
	defaultProxyArtifact  = "ERC1967Proxy"
	defaultEtherscanAPI   = "https://api.etherscan.io/api"
)

// Built-in development networks, usable without a [networks] entry
var builtinNetworks = map[string]config.NetworkConfig{
	"hardhat":   {RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
	"localhost": {RPCURL: "http://127.0.0.1:8545", ChainID: 31337},
}

// loadEnvFiles loads .env and .env.local from the project root.
// Variables already present in the environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadProject loads ztl.toml from the project root. A missing file yields
// the defaults.
func LoadProject(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	cfg := &config.ProjectConfig{}
	path := filepath.Join(projectRoot, ProjectFile)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat %s: %w", ProjectFile, err)
	}

	expandProject(cfg)
	applyProjectDefaults(cfg)
	return cfg, nil
}

func expandProject(cfg *config.ProjectConfig) {
	cfg.DefaultNetwork = os.ExpandEnv(cfg.DefaultNetwork)
	cfg.Artifacts = os.ExpandEnv(cfg.Artifacts)
	cfg.Deployments = os.ExpandEnv(cfg.Deployments)
	cfg.Etherscan.APIKey = os.ExpandEnv(cfg.Etherscan.APIKey)
	cfg.Etherscan.APIURL = os.ExpandEnv(cfg.Etherscan.APIURL)
	cfg.Proxy.Artifact = os.ExpandEnv(cfg.Proxy.Artifact)

	for i, arg := range cfg.Verify.Command {
		cfg.Verify.Command[i] = os.ExpandEnv(arg)
	}

	for name, network := range cfg.Networks {
		network.RPCURL = os.ExpandEnv(network.RPCURL)
		network.PrivateKey = os.ExpandEnv(network.PrivateKey)
		network.ExplorerURL = os.ExpandEnv(network.ExplorerURL)
		network.ExplorerAPIURL = os.ExpandEnv(network.ExplorerAPIURL)
		cfg.Networks[name] = network
	}
}

func applyProjectDefaults(cfg *config.ProjectConfig) {
	if cfg.Artifacts == "" {
		cfg.Artifacts = defaultArtifactsDir
	}
	if cfg.Deployments == "" {
		cfg.Deployments = defaultDeploymentsDir
	}
	if cfg.Confirmations == 0 {
		cfg.Confirmations = 1
	}
	if cfg.Proxy.Artifact == "" {
		cfg.Proxy.Artifact = defaultProxyArtifact
	}
	if cfg.Etherscan.APIKey == "" {
		cfg.Etherscan.APIKey = os.Getenv("ETHERSCAN_KEY")
	}
	if cfg.Etherscan.APIURL == "" {
		cfg.Etherscan.APIURL = defaultEtherscanAPI
	}
	if cfg.Networks == nil {
		cfg.Networks = make(map[string]config.NetworkConfig)
	}
}

// NetworkNames returns configured and built-in network names in lexical order.
func NetworkNames(cfg *config.ProjectConfig) []string {
	seen := make(map[string]bool)
	var names []string
	for name := range cfg.Networks {
		seen[name] = true
		names = append(names, name)
	}
	for name := range builtinNetworks {
		if !seen[name] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// ResolveNetwork builds the runtime network for name. The signing key falls
// back to PRIVATE_KEY when the network entry has none.
func ResolveNetwork(cfg *config.ProjectConfig, name string) (*config.Network, error) {
	entry, ok := cfg.Networks[name]
	if !ok {
		entry, ok = builtinNetworks[name]
	}
	if !ok {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]", name, ProjectFile)
	}
	if entry.RPCURL == "" {
		return nil, fmt.Errorf("network '%s' has no rpc_url", name)
	}

	network := &config.Network{
		Name:           name,
		RPCURL:         entry.RPCURL,
		ChainID:        entry.ChainID,
		ExplorerURL:    entry.ExplorerURL,
		ExplorerAPIURL: entry.ExplorerAPIURL,
		ExplorerAPIKey: cfg.Etherscan.APIKey,
		PrivateKey:     entry.PrivateKey,
	}
	if network.ExplorerAPIURL == "" {
		network.ExplorerAPIURL = cfg.Etherscan.APIURL
	}
	if network.PrivateKey == "" {
		network.PrivateKey = os.Getenv("PRIVATE_KEY")
	}
	network.PrivateKey = strings.TrimPrefix(network.PrivateKey, "0x")

	return network, nil
}
