package usecase

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zeitls/ztl-cli/internal/domain"
	domainconfig "github.com/zeitls/ztl-cli/internal/domain/config"
)

func deployedState() map[string]*domain.ContractInfo {
	return map[string]*domain.ContractInfo{
		domain.ContractToken:        {Address: tokenAddr},
		domain.ContractWhitelist:    {Address: whitelistAddr},
		domain.ContractTreasury:     {Address: treasuryAddr, Impl: treasuryImplAddr},
		domain.ContractAuctionHouse: {Address: houseAddr, Impl: houseImplAddr},
	}
}

func TestSetupContracts_Run(t *testing.T) {
	ctx := context.Background()
	deployCfg := testDeploymentConfig()
	deployCfg.KeyHolders = []string{ownerAddr, maintAddr}
	deployCfg.Affiliates = []domainconfig.Affiliate{{Address: ownerAddr, Share: 25}, {Address: maintAddr, Share: 25}}

	entries := deployedState()
	entries[domain.ContractKey] = &domain.ContractInfo{Address: keyAddr}
	state := newMemStateStore("hardhat", entries)

	client := new(mockClient)
	client.On("Transact", mock.Anything, named(domain.ContractToken), tokenAddr, "setMinter", []any{houseAddr}).
		Return(receipt("0x11", ""), nil).Once()
	client.On("Transact", mock.Anything, named(domain.ContractToken), tokenAddr, "updateMetadata",
		[]any{[]any{big.NewInt(0), big.NewInt(100)}, []any{"ipfs://meta/0", "ipfs://meta/100"}}).
		Return(receipt("0x12", ""), nil).Once()
	client.On("Transact", mock.Anything, named(domain.ContractKey), keyAddr, "mintBatch", []any{[]any{ownerAddr, maintAddr}}).
		Return(receipt("0x13", ""), nil).Once()
	client.On("Transact", mock.Anything, named(domain.ContractTreasury), treasuryAddr, "addAffiliates",
		[]any{[]any{ownerAddr, maintAddr}, []any{big.NewInt(25), big.NewInt(25)}}).
		Return(receipt("0x14", ""), nil).Once()
	client.On("WaitConfirmations", mock.Anything, mock.Anything).Return(nil)

	progress := &recordingProgress{}
	uc := NewSetupContracts(testRuntimeConfig("hardhat", 31337), &stubConfigs{cfg: deployCfg}, state, &stubArtifacts{}, client, progress)

	result, err := uc.Run(ctx)
	require.NoError(t, err)
	client.AssertExpectations(t)

	require.Len(t, result.Steps, 4)
	assert.Equal(t, "0x11", result.Steps[0].TxHash)
	assert.Equal(t, "0x14", result.Steps[3].TxHash)
	assert.Contains(t, progress.infos, "Link token contract with auction house: 0x11")
}

func TestSetupContracts_SkipsMissingKeyContract(t *testing.T) {
	deployCfg := testDeploymentConfig()
	deployCfg.Metadata = nil
	deployCfg.KeyHolders = []string{ownerAddr}

	client := new(mockClient)
	client.On("Transact", mock.Anything, named(domain.ContractToken), tokenAddr, "setMinter", []any{houseAddr}).
		Return(receipt("0x11", ""), nil).Once()
	client.On("WaitConfirmations", mock.Anything, mock.Anything).Return(nil)

	progress := &recordingProgress{}
	uc := NewSetupContracts(testRuntimeConfig("hardhat", 31337), &stubConfigs{cfg: deployCfg},
		newMemStateStore("hardhat", deployedState()), &stubArtifacts{}, client, progress)

	result, err := uc.Run(context.Background())
	require.NoError(t, err)
	client.AssertExpectations(t)

	require.Len(t, result.Steps, 2)
	assert.True(t, result.Steps[1].Skipped)
	assert.Equal(t, "ZtlKey is not present in the state", result.Steps[1].Reason)
	assert.Contains(t, progress.infos, "Skip Mint Zeitls Key: ZtlKey is not present in the state")
}

func TestSetupContracts_RequiresAuctionHouse(t *testing.T) {
	entries := deployedState()
	delete(entries, domain.ContractAuctionHouse)

	client := new(mockClient)
	uc := NewSetupContracts(testRuntimeConfig("hardhat", 31337), &stubConfigs{cfg: testDeploymentConfig()},
		newMemStateStore("hardhat", entries), &stubArtifacts{}, client, NopProgress{})

	_, err := uc.Run(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	client.AssertNotCalled(t, "Transact", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetupContracts_DryRun(t *testing.T) {
	cfg := testRuntimeConfig("goerli", 5)
	cfg.DryRun = true
	client := new(mockClient)

	uc := NewSetupContracts(cfg, &stubConfigs{cfg: testDeploymentConfig()},
		newMemStateStore("goerli", deployedState()), &stubArtifacts{}, client, NopProgress{})

	result, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	require.Len(t, result.Steps, 2)
	assert.Empty(t, result.Steps[0].TxHash)
	client.AssertNotCalled(t, "Transact", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
