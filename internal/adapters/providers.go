package adapters

import (
	"github.com/google/wire"
	"github.com/zeitls/ztl-cli/internal/adapters/artifacts"
	"github.com/zeitls/ztl-cli/internal/adapters/blockchain"
	internalconfig "github.com/zeitls/ztl-cli/internal/adapters/config"
	"github.com/zeitls/ztl-cli/internal/adapters/explorer"
	"github.com/zeitls/ztl-cli/internal/adapters/fs"
	"github.com/zeitls/ztl-cli/internal/adapters/interactive"
	"github.com/zeitls/ztl-cli/internal/adapters/signer"
	"github.com/zeitls/ztl-cli/internal/adapters/verification"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// FSSet provides filesystem-based implementations
var FSSet = wire.NewSet(
	fs.NewNetworkStateStore,
	wire.Bind(new(usecase.NetworkStateStore), new(*fs.NetworkStateStore)),

	fs.NewDeploymentConfigStore,
	wire.Bind(new(usecase.DeploymentConfigLoader), new(*fs.DeploymentConfigStore)),

	fs.NewStateCatalog,
	wire.Bind(new(usecase.StateCatalog), new(*fs.StateCatalog)),

	artifacts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*artifacts.Repository)),
)

// BlockchainSet provides JSON-RPC and signing implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,
	wire.Bind(new(usecase.ContractClient), new(*blockchain.Client)),

	signer.NewEnvKeySigner,
	wire.Bind(new(usecase.MessageSigner), new(*signer.EnvKeySigner)),
)

// VerificationSet provides source verification implementations
var VerificationSet = wire.NewSet(
	verification.NewCommandVerifier,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.CommandVerifier)),

	explorer.NewClient,
	wire.Bind(new(usecase.ExplorerClient), new(*explorer.Client)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.Confirmer), new(*interactive.SelectorAdapter)),
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	FSSet,
	BlockchainSet,
	VerificationSet,
	InteractiveSet,
	ConfigSet,
)
