package config

import (
	"context"

	"github.com/zeitls/ztl-cli/internal/config"
	domainconfig "github.com/zeitls/ztl-cli/internal/domain/config"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// NetworkResolverAdapter resolves networks from ztl.toml
type NetworkResolverAdapter struct {
	project *domainconfig.ProjectConfig
}

// NewNetworkResolverAdapter creates a resolver over the loaded project config
func NewNetworkResolverAdapter(cfg *domainconfig.RuntimeConfig) *NetworkResolverAdapter {
	project := cfg.Project
	if project == nil {
		project = &domainconfig.ProjectConfig{}
	}
	return &NetworkResolverAdapter{project: project}
}

// GetNetworks returns configured and built-in network names
func (n *NetworkResolverAdapter) GetNetworks(ctx context.Context) []string {
	return config.NetworkNames(n.project)
}

// ResolveNetwork resolves a network name to its runtime configuration
func (n *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, name string) (*domainconfig.Network, error) {
	return config.ResolveNetwork(n.project, name)
}

// Ensure the adapter implements the interface
var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
