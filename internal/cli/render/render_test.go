package render

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

func init() {
	color.NoColor = true
}

func TestDeployRenderer(t *testing.T) {
	result := &usecase.DeployContractsResult{
		Network: "goerli",
		Deployed: []*usecase.DeployedContract{
			{
				Kind:    domain.RegularContract,
				Name:    domain.ContractToken,
				Address: "0x1111111111111111111111111111111111111111",
				Receipt: &domain.TxReceipt{TxHash: "0xaa", BlockHash: "0xbb", BlockNumber: 7},
			},
			{
				Kind:        domain.UpgradeableContract,
				Name:        domain.ContractTreasury,
				Address:     "0x2222222222222222222222222222222222222222",
				Impl:        "0x3333333333333333333333333333333333333333",
				Receipt:     &domain.TxReceipt{TxHash: "0xcc"},
				ImplReceipt: &domain.TxReceipt{TxHash: "0xdd"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewDeployRenderer(&buf, false).Render(result))
	out := buf.String()

	assert.Contains(t, out, "Type: Regular")
	assert.Contains(t, out, "Contract: ZtlDevils\n")
	assert.Contains(t, out, "Address: 0x1111111111111111111111111111111111111111")
	assert.Contains(t, out, "Block number: 7")
	assert.Contains(t, out, "Proxy: 0x2222222222222222222222222222222222222222")
	assert.Contains(t, out, "Implementation: 0x3333333333333333333333333333333333333333")
	assert.Contains(t, out, "Implementation transaction: 0xdd")
	assert.Contains(t, out, "Deployment done. Do not forget to verify contracts and initialize")
}

func TestDeployRendererDryRun(t *testing.T) {
	result := &usecase.DeployContractsResult{
		Network: "goerli",
		DryRun:  true,
		Plan: []usecase.PlannedContract{
			{Kind: domain.RegularContract, Name: domain.ContractWhitelist, Args: []string{"ipfs://wl"}},
			{Kind: domain.UpgradeableContract, Name: domain.ContractAuctionHouse, Args: []string{"state(ZtlDevils)"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewDeployRenderer(&buf, false).Render(result))
	out := buf.String()

	assert.Contains(t, out, "Deployment plan for goerli")
	assert.Contains(t, out, "ipfs://wl")
	assert.Contains(t, out, "state(ZtlDevils)")
	assert.Contains(t, out, "Dry run")
	assert.NotContains(t, out, "Deployment done")
}

func TestVerifyRendererSummary(t *testing.T) {
	result := &usecase.VerifyContractsResult{
		Network: "goerli",
		Entries: []*usecase.VerificationEntry{
			{Request: domain.VerificationRequest{Name: "ZtlDevils", Address: "0x1"}, Status: usecase.VerificationVerified},
			{Request: domain.VerificationRequest{Name: "ZtlDevilsWhitelist", Address: "0x2"}, Status: usecase.VerificationAlreadyVerified},
			{Request: domain.VerificationRequest{Name: "ZtlDevilsTreasury", Address: "0x3"}, Status: usecase.VerificationFailed, Error: "bytecode mismatch"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewVerifyRenderer(&buf, false).Render(result))
	out := buf.String()

	assert.Contains(t, out, "bytecode mismatch")
	assert.Contains(t, out, "Verified: 1, Already Verified: 1, Failed: 1")
	assert.Contains(t, out, "1 verification(s) failed")
}

func TestVerifyRendererPlannedCommands(t *testing.T) {
	result := &usecase.VerifyContractsResult{
		Network: "goerli",
		Entries: []*usecase.VerificationEntry{
			{
				Request: domain.VerificationRequest{Name: "ZtlDevils", Address: "0x1"},
				Status:  usecase.VerificationPlanned,
				Command: []string{"npx", "hardhat", "verify", "--network", "goerli", "0x1"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewVerifyRenderer(&buf, false).Render(result))
	assert.Contains(t, buf.String(), "npx hardhat verify --network goerli 0x1")
}

func TestAuctionsRenderer(t *testing.T) {
	result := &usecase.CreateAuctionsResult{
		Network:   "goerli",
		WasPaused: true,
		UnpauseTx: "0xun",
		Lots: []*usecase.AuctionLot{
			{ID: big.NewInt(1), Price: big.NewInt(1e17), Exists: true},
			{ID: big.NewInt(2), Price: big.NewInt(5e17), Limited: true},
		},
		CreateTx:     "0xcreate",
		CreatedCount: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, NewAuctionsRenderer(&buf, false).Render(result))
	out := buf.String()

	assert.Contains(t, out, "0.1")
	assert.Contains(t, out, "exists")
	assert.Contains(t, out, "listed")
	assert.Contains(t, out, "Unpause transaction: 0xun")
	assert.Contains(t, out, "Listed 1 auction(s)")
}

func TestNetworksRenderer(t *testing.T) {
	result := &usecase.ListNetworksResult{
		Networks: []usecase.NetworkStatus{
			{Name: "goerli", ChainID: 5, RPCHost: "https://rpc.example", Current: true, StateExists: true, Contracts: 4},
			{Name: "hardhat", ChainID: 31337, Local: true},
			{Name: "broken", Error: errors.New("network 'broken' has no rpc_url")},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewNetworksRenderer(&buf, false).Render(result))
	out := buf.String()

	assert.Contains(t, out, "* ✅ goerli - Chain ID: 5 https://rpc.example - 4 contract(s)")
	assert.Contains(t, out, "✅ hardhat - Chain ID: 31337 (local)")
	assert.Contains(t, out, "❌ broken - Error: network 'broken' has no rpc_url")
}

func TestStateRendererShow(t *testing.T) {
	result := &usecase.ShowStateResult{
		Network: "goerli",
		Path:    "state.goerli.json",
		Entries: []usecase.StateEntry{
			{Name: "ZtlDevils", Info: &domain.ContractInfo{Address: "0x1111111111111111111111111111111111111111", ConstructorArgs: []any{"0xowner", "0xregistry"}}},
			{Name: "ZtlDevilsTreasury", Info: &domain.ContractInfo{Address: "0x2222222222222222222222222222222222222222", Impl: "0x3333333333333333333333333333333333333333", InitArgs: []any{"0xmaintainer"}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewStateRenderer(&buf, false).RenderShow(result))
	out := buf.String()

	assert.Contains(t, out, "0xowner, 0xregistry")
	assert.Contains(t, out, "0x3333333333333333333333333333333333333333")
	assert.Contains(t, out, "0xmaintainer")
}

func TestFormatStateArgs(t *testing.T) {
	assert.Equal(t, "-", formatStateArgs(nil))
	assert.Equal(t, `a, 3, ["x","y"]`, formatStateArgs([]any{"a", 3, []any{"x", "y"}}))
}
