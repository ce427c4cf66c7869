package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/mock"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

const (
	ownerAddr    = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	registryAddr = "0xa5409ec958C83C3f309868babACA7c86DCB077c1"
	maintAddr    = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
	wethAddr     = "0xB4FBF271143F4FBf7B91A5ded31805e42b2208d6"
	signerAddr   = "0x90F79bf6EB2c4f870365E785982E1f101E93b906"
	senderAddr   = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

	tokenAddr        = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	whitelistAddr    = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	treasuryImplAddr = "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"
	treasuryAddr     = "0xCf7Ed3AccA5a467e9e704C703E8D87F634fB0Fc9"
	houseImplAddr    = "0xDc64a140Aa3E981100a9becA4E685f962f0cF6C9"
	houseAddr        = "0x5FC8d32690cc91D4c39d9d3abcBD16989F875707"
	piecesAddr       = "0x0165878A594ca255338adfa4d48449f69242Eb8F"
	keyAddr          = "0xa513E6E4b8f2a923D98304ec87F64353C4D5C853"
)

func testDeploymentConfig() *config.DeploymentConfig {
	return &config.DeploymentConfig{
		OpenseaRegistry: registryAddr,
		Owner:           ownerAddr,
		Maintainer:      maintAddr,
		WETH:            wethAddr,
		WhitelistURI:    "ipfs://whitelist/",
		SignerKYC:       signerAddr,
		TimeBuffer:      300,
		Duration:        86400,
		MinBidDiff:      5,
		Metadata:        []config.MetadataEntry{{ID: 0, URI: "ipfs://meta/0"}, {ID: 100, URI: "ipfs://meta/100"}},
		PiecesURI:       "ipfs://pieces/",
		KeyContract:     domain.ContractKey,
	}
}

func testRuntimeConfig(network string, chainID uint64) *config.RuntimeConfig {
	return &config.RuntimeConfig{
		ProjectRoot: "/project",
		Network:     &config.Network{Name: network, ChainID: chainID},
		Project:     &config.ProjectConfig{Proxy: config.ProxyConfig{Artifact: "ERC1967Proxy"}},
	}
}

// memStateStore is an in-memory NetworkStateStore
type memStateStore struct {
	network string
	state   domain.NetworkState
	updates []string
}

func newMemStateStore(network string, entries map[string]*domain.ContractInfo) *memStateStore {
	state := domain.NetworkState{}
	for name, info := range entries {
		state[name] = info
	}
	return &memStateStore{network: network, state: state}
}

func (m *memStateStore) Load(ctx context.Context) (domain.NetworkState, error) {
	out := domain.NetworkState{}
	for name, info := range m.state {
		out[name] = info
	}
	return out, nil
}

func (m *memStateStore) Address(ctx context.Context, contract string) (string, error) {
	info, ok := m.state[contract]
	if !ok {
		return "", &domain.ContractNotInStateError{Name: contract, Network: m.network}
	}
	return info.Address, nil
}

func (m *memStateStore) Update(ctx context.Context, contract string, info *domain.ContractInfo) error {
	m.state[contract] = info
	m.updates = append(m.updates, contract)
	return nil
}

func (m *memStateStore) Remove(ctx context.Context, contract string) error {
	if _, ok := m.state[contract]; !ok {
		return &domain.ContractNotInStateError{Name: contract, Network: m.network}
	}
	delete(m.state, contract)
	return nil
}

func (m *memStateStore) Path() string {
	return "/project/state." + m.network + ".json"
}

type stubConfigs struct {
	cfg *config.DeploymentConfig
	err error
}

func (s *stubConfigs) Load(ctx context.Context) (*config.DeploymentConfig, error) {
	return s.cfg, s.err
}

// stubArtifacts returns an artifact for every requested name, optionally
// with an ABI built from method signatures
type stubArtifacts struct {
	abis map[string]string
}

func (s *stubArtifacts) GetArtifact(ctx context.Context, name string) (*domain.Artifact, error) {
	artifact := &domain.Artifact{Name: name}
	if def, ok := s.abis[name]; ok {
		parsed, err := abi.JSON(strings.NewReader(def))
		if err != nil {
			return nil, err
		}
		artifact.ABI = &parsed
	}
	return artifact, nil
}

func named(name string) any {
	return mock.MatchedBy(func(a *domain.Artifact) bool { return a.Name == name })
}

func receipt(hash, contract string) *domain.TxReceipt {
	return &domain.TxReceipt{TxHash: hash, BlockHash: "0xblock", BlockNumber: 1, ContractAddress: contract}
}

// mockClient is a testify mock of ContractClient
type mockClient struct {
	mock.Mock
}

func (m *mockClient) Deploy(ctx context.Context, artifact *domain.Artifact, args []any) (*domain.TxReceipt, error) {
	ret := m.Called(ctx, artifact, args)
	r, _ := ret.Get(0).(*domain.TxReceipt)
	return r, ret.Error(1)
}

func (m *mockClient) Transact(ctx context.Context, artifact *domain.Artifact, address string, method string, args []any) (*domain.TxReceipt, error) {
	ret := m.Called(ctx, artifact, address, method, args)
	r, _ := ret.Get(0).(*domain.TxReceipt)
	return r, ret.Error(1)
}

func (m *mockClient) Call(ctx context.Context, artifact *domain.Artifact, address string, method string, args []any) ([]any, error) {
	ret := m.Called(ctx, artifact, address, method, args)
	out, _ := ret.Get(0).([]any)
	return out, ret.Error(1)
}

func (m *mockClient) EncodeCall(artifact *domain.Artifact, method string, args []any) ([]byte, error) {
	ret := m.Called(artifact, method, args)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

func (m *mockClient) WaitConfirmations(ctx context.Context, r *domain.TxReceipt) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockClient) ImplementationAddress(ctx context.Context, proxy string) (string, error) {
	ret := m.Called(ctx, proxy)
	return ret.String(0), ret.Error(1)
}

func (m *mockClient) CodeExists(ctx context.Context, address string) (bool, error) {
	ret := m.Called(ctx, address)
	return ret.Bool(0), ret.Error(1)
}

func (m *mockClient) Sender() (string, error) {
	ret := m.Called()
	return ret.String(0), ret.Error(1)
}

type stubConfirmer struct {
	answer  bool
	err     error
	prompts []string
}

func (s *stubConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	s.prompts = append(s.prompts, prompt)
	return s.answer, s.err
}

type stubSelector struct {
	choice  string
	offered []string
}

func (s *stubSelector) SelectContract(ctx context.Context, names []string, prompt string) (string, error) {
	s.offered = names
	if s.choice == "" {
		return "", fmt.Errorf("selection cancelled")
	}
	return s.choice, nil
}

// recordingProgress collects Info and Error messages
type recordingProgress struct {
	NopProgress
	infos  []string
	errors []string
}

func (r *recordingProgress) Info(message string)  { r.infos = append(r.infos, message) }
func (r *recordingProgress) Error(message string) { r.errors = append(r.errors, message) }
