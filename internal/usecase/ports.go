package usecase

import (
	"context"

	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// NetworkStateStore persists the per-network contract state file
type NetworkStateStore interface {
	// Load reads and validates the whole state, creating an empty file first if needed
	Load(ctx context.Context) (domain.NetworkState, error)
	// Address returns the recorded address of a contract
	Address(ctx context.Context, contract string) (string, error)
	// Update replaces one entry and rewrites the file
	Update(ctx context.Context, contract string, info *domain.ContractInfo) error
	// Remove deletes one entry and rewrites the file
	Remove(ctx context.Context, contract string) error
	Path() string
}

// DeploymentConfigLoader loads the per-network deployment config
type DeploymentConfigLoader interface {
	Load(ctx context.Context) (*config.DeploymentConfig, error)
}

// StateCatalog reads the state files of any network without creating them
type StateCatalog interface {
	// Count returns the number of entries; exists is false when there is no state file yet
	Count(ctx context.Context, network string) (count int, exists bool, err error)
}

// NetworkResolver resolves networks declared in ztl.toml
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
}

// ArtifactRepository provides compiled contracts by name
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*domain.Artifact, error)
}

// ContractClient talks to the selected network over JSON-RPC
type ContractClient interface {
	// Deploy sends a creation transaction and waits until it is mined
	Deploy(ctx context.Context, artifact *domain.Artifact, args []any) (*domain.TxReceipt, error)
	// Transact sends a state changing call and waits until it is mined
	Transact(ctx context.Context, artifact *domain.Artifact, address string, method string, args []any) (*domain.TxReceipt, error)
	// Call performs a read-only call
	Call(ctx context.Context, artifact *domain.Artifact, address string, method string, args []any) ([]any, error)
	// EncodeCall ABI-encodes method calldata
	EncodeCall(artifact *domain.Artifact, method string, args []any) ([]byte, error)
	// WaitConfirmations blocks until the receipt has the configured confirmations
	WaitConfirmations(ctx context.Context, receipt *domain.TxReceipt) error
	// ImplementationAddress reads the ERC-1967 implementation slot of a proxy
	ImplementationAddress(ctx context.Context, proxy string) (string, error)
	CodeExists(ctx context.Context, address string) (bool, error)
	Sender() (string, error)
}

// ContractVerifier submits source verification for a deployed contract
type ContractVerifier interface {
	// Verify returns domain.ErrAlreadyVerified when the explorer already knows the source
	Verify(ctx context.Context, req domain.VerificationRequest) error
	// Command renders the verification command without running it
	Command(req domain.VerificationRequest) []string
}

// ExplorerClient queries a block explorer API
type ExplorerClient interface {
	Enabled() bool
	IsVerified(ctx context.Context, address string) (bool, error)
}

// MessageSigner produces EIP-191 personal signatures
type MessageSigner interface {
	SignPersonal(ctx context.Context, keyEnv string, message []byte) (*domain.SignedMessage, error)
}

// Confirmer asks the user to approve an action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ContractSelector lets the user pick a contract name from the state
type ContractSelector interface {
	SelectContract(ctx context.Context, names []string, prompt string) (string, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
