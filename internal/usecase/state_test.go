package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

func TestShowState_Run(t *testing.T) {
	uc := NewShowState(testRuntimeConfig("goerli", 5), newMemStateStore("goerli", deployedState()))

	result, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "goerli", result.Network)
	assert.Equal(t, "/project/state.goerli.json", result.Path)
	require.Len(t, result.Entries, 4)
	assert.Equal(t, domain.ContractToken, result.Entries[0].Name)
	assert.Equal(t, domain.ContractWhitelist, result.Entries[3].Name)
}

func TestCheckState_Run(t *testing.T) {
	entries := deployedState()
	client := new(mockClient)
	client.On("CodeExists", mock.Anything, tokenAddr).Return(true, nil)
	client.On("CodeExists", mock.Anything, whitelistAddr).Return(false, nil)
	client.On("CodeExists", mock.Anything, houseAddr).Return(true, nil)
	client.On("CodeExists", mock.Anything, houseImplAddr).Return(true, nil)
	client.On("CodeExists", mock.Anything, treasuryAddr).Return(true, nil)
	client.On("CodeExists", mock.Anything, newImplAddr).Return(true, nil)
	client.On("ImplementationAddress", mock.Anything, houseAddr).Return(houseImplAddr, nil)
	client.On("ImplementationAddress", mock.Anything, treasuryAddr).Return(newImplAddr, nil)

	uc := NewCheckState(testRuntimeConfig("goerli", 5), newMemStateStore("goerli", entries), client, NopProgress{})
	result, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Healthy())

	byName := map[string]*StateCheck{}
	for _, c := range result.Checks {
		byName[c.Name] = c
	}
	assert.True(t, byName[domain.ContractToken].OK())
	assert.True(t, byName[domain.ContractAuctionHouse].OK())
	assert.Equal(t, []string{"no code at address"}, byName[domain.ContractWhitelist].Issues)
	assert.Equal(t, []string{"implementation is " + newImplAddr + " on chain"}, byName[domain.ContractTreasury].Issues)
}

func TestCheckState_RPCError(t *testing.T) {
	client := new(mockClient)
	client.On("CodeExists", mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))

	uc := NewCheckState(testRuntimeConfig("goerli", 5), newMemStateStore("goerli", deployedState()), client, NopProgress{})
	_, err := uc.Run(context.Background())
	assert.EqualError(t, err, "connection refused")
}

func TestRemoveStateEntry_Run(t *testing.T) {
	t.Run("removes after confirmation", func(t *testing.T) {
		state := newMemStateStore("goerli", deployedState())
		confirmer := &stubConfirmer{answer: true}
		uc := NewRemoveStateEntry(testRuntimeConfig("goerli", 5), state, &stubSelector{}, confirmer)

		removed, err := uc.Run(context.Background(), domain.ContractWhitelist)
		require.NoError(t, err)
		assert.Equal(t, whitelistAddr, removed.Info.Address)
		assert.NotContains(t, state.state, domain.ContractWhitelist)
		assert.Equal(t, []string{"Remove ZtlDevilsWhitelist (" + whitelistAddr + ") from goerli state"}, confirmer.prompts)
	})

	t.Run("declined", func(t *testing.T) {
		state := newMemStateStore("goerli", deployedState())
		uc := NewRemoveStateEntry(testRuntimeConfig("goerli", 5), state, &stubSelector{}, &stubConfirmer{})

		_, err := uc.Run(context.Background(), domain.ContractWhitelist)
		assert.ErrorIs(t, err, domain.ErrAborted)
		assert.Contains(t, state.state, domain.ContractWhitelist)
	})

	t.Run("selects interactively", func(t *testing.T) {
		state := newMemStateStore("goerli", deployedState())
		selector := &stubSelector{choice: domain.ContractToken}
		uc := NewRemoveStateEntry(testRuntimeConfig("goerli", 5), state, selector, &stubConfirmer{answer: true})

		removed, err := uc.Run(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, domain.ContractToken, removed.Name)
		assert.Len(t, selector.offered, 4)
	})

	t.Run("missing", func(t *testing.T) {
		uc := NewRemoveStateEntry(testRuntimeConfig("goerli", 5), newMemStateStore("goerli", nil), &stubSelector{}, &stubConfirmer{answer: true})
		_, err := uc.Run(context.Background(), "ZtlDevils")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

type stubResolver struct {
	networks map[string]*config.Network
}

func (s *stubResolver) GetNetworks(ctx context.Context) []string {
	return []string{"broken", "goerli", "hardhat"}
}

func (s *stubResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	if n, ok := s.networks[name]; ok {
		return n, nil
	}
	return nil, errors.New("network 'broken' has no rpc_url")
}

type stubCatalog map[string]int

func (s stubCatalog) Count(ctx context.Context, network string) (int, bool, error) {
	n, ok := s[network]
	return n, ok, nil
}

func TestListNetworks_Run(t *testing.T) {
	resolver := &stubResolver{networks: map[string]*config.Network{
		"goerli":  {Name: "goerli", ChainID: 5, RPCURL: "https://eth-goerli.g.alchemy.com/v2/SECRET"},
		"hardhat": {Name: "hardhat", ChainID: 31337, RPCURL: "http://127.0.0.1:8545"},
	}}
	uc := NewListNetworks(resolver, stubCatalog{"goerli": 6}, testRuntimeConfig("goerli", 5))

	result, err := uc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Networks, 3)

	assert.Error(t, result.Networks[0].Error)

	goerli := result.Networks[1]
	assert.True(t, goerli.Current)
	assert.Equal(t, "https://eth-goerli.g.alchemy.com", goerli.RPCHost)
	assert.True(t, goerli.StateExists)
	assert.Equal(t, 6, goerli.Contracts)

	hardhat := result.Networks[2]
	assert.True(t, hardhat.Local)
	assert.False(t, hardhat.StateExists)
}
