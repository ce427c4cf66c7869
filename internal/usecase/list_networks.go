package usecase

import (
	"context"
	"net/url"

	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// NetworkStatus represents the status of a network
type NetworkStatus struct {
	Name        string
	ChainID     uint64
	RPCHost     string
	Local       bool
	Current     bool
	StateExists bool
	Contracts   int
	Error       error
}

// ListNetworksResult contains the result of listing networks
type ListNetworksResult struct {
	Networks []NetworkStatus
}

// ListNetworks is a use case for listing available networks
type ListNetworks struct {
	resolver NetworkResolver
	catalog  StateCatalog
	current  string
}

// NewListNetworks creates a new ListNetworks use case
func NewListNetworks(resolver NetworkResolver, catalog StateCatalog, cfg *config.RuntimeConfig) *ListNetworks {
	return &ListNetworks{
		resolver: resolver,
		catalog:  catalog,
		current:  cfg.NetworkName(),
	}
}

// Run executes the use case
func (uc *ListNetworks) Run(ctx context.Context) (*ListNetworksResult, error) {
	networkNames := uc.resolver.GetNetworks(ctx)

	networks := make([]NetworkStatus, 0, len(networkNames))
	for _, name := range networkNames {
		status := NetworkStatus{
			Name:    name,
			Current: name == uc.current,
		}

		info, err := uc.resolver.ResolveNetwork(ctx, name)
		if err != nil {
			status.Error = err
			networks = append(networks, status)
			continue
		}
		status.ChainID = info.ChainID
		status.Local = info.IsLocal()
		status.RPCHost = redactedHost(info.RPCURL)

		status.Contracts, status.StateExists, status.Error = uc.catalog.Count(ctx, name)
		networks = append(networks, status)
	}

	return &ListNetworksResult{
		Networks: networks,
	}, nil
}

// redactedHost keeps only the host of an RPC URL; paths and query strings
// of hosted providers usually carry API keys.
func redactedHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "invalid url"
	}
	return u.Scheme + "://" + u.Host
}
