package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// UpgradeContractParams contains parameters for upgrading a proxy
type UpgradeContractParams struct {
	// Name is the state entry of the proxy; empty selects interactively
	Name string
	// Artifact is the new implementation; defaults to Name
	Artifact string
}

// UpgradeContractResult contains the result of an upgrade
type UpgradeContractResult struct {
	Network     string
	Name        string
	Proxy       string
	OldImpl     string
	NewImpl     string
	Method      string
	DryRun      bool
	ImplReceipt *domain.TxReceipt
	Receipt     *domain.TxReceipt
}

// UpgradeContract deploys a new implementation and points a recorded
// ERC-1967 proxy at it.
type UpgradeContract struct {
	cfg       *config.RuntimeConfig
	state     NetworkStateStore
	artifacts ArtifactRepository
	client    ContractClient
	selector  ContractSelector
	confirmer Confirmer
	progress  ProgressSink
}

// NewUpgradeContract creates a new UpgradeContract use case
func NewUpgradeContract(
	cfg *config.RuntimeConfig,
	state NetworkStateStore,
	artifacts ArtifactRepository,
	client ContractClient,
	selector ContractSelector,
	confirmer Confirmer,
	progress ProgressSink,
) *UpgradeContract {
	return &UpgradeContract{
		cfg:       cfg,
		state:     state,
		artifacts: artifacts,
		client:    client,
		selector:  selector,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Run executes the upgrade
func (uc *UpgradeContract) Run(ctx context.Context, params UpgradeContractParams) (*UpgradeContractResult, error) {
	state, err := uc.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	name := params.Name
	if name == "" {
		upgradeable := lo.Filter(state.Names(), func(n string, _ int) bool {
			return state[n] != nil && state[n].IsUpgradeable()
		})
		if len(upgradeable) == 0 {
			return nil, fmt.Errorf("no upgradeable contracts in %s state", uc.cfg.NetworkName())
		}
		name, err = uc.selector.SelectContract(ctx, upgradeable, "Select contract to upgrade")
		if err != nil {
			return nil, err
		}
	}

	info, ok := state[name]
	if !ok || info == nil {
		return nil, &domain.ContractNotInStateError{Name: name, Network: uc.cfg.NetworkName()}
	}
	if !info.IsUpgradeable() {
		return nil, fmt.Errorf("%s is not an upgradeable contract", name)
	}

	artifactName := params.Artifact
	if artifactName == "" {
		artifactName = name
	}
	artifact, err := uc.artifacts.GetArtifact(ctx, artifactName)
	if err != nil {
		return nil, err
	}

	result := &UpgradeContractResult{
		Network: uc.cfg.NetworkName(),
		Name:    name,
		Proxy:   info.Address,
		OldImpl: info.Impl,
		DryRun:  uc.cfg.DryRun,
	}
	switch {
	case artifact.HasMethod("upgradeToAndCall"):
		result.Method = "upgradeToAndCall"
	case artifact.HasMethod("upgradeTo"):
		result.Method = "upgradeTo"
	default:
		return nil, fmt.Errorf("%s exposes neither upgradeToAndCall nor upgradeTo", artifactName)
	}

	if uc.cfg.DryRun {
		return result, nil
	}

	if !uc.cfg.Network.IsLocal() {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Upgrade %s on %s to a new %s implementation", name, result.Network, artifactName))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageUpgrading, Message: fmt.Sprintf("Deploying %s implementation", artifactName), Spinner: true})
	implReceipt, err := uc.client.Deploy(ctx, artifact, nil)
	if err != nil {
		return result, fmt.Errorf("failed to deploy implementation: %w", err)
	}
	result.ImplReceipt = implReceipt

	args := []any{implReceipt.ContractAddress}
	if result.Method == "upgradeToAndCall" {
		args = append(args, []byte{})
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageUpgrading, Message: fmt.Sprintf("Upgrading %s proxy", name), Spinner: true})
	receipt, err := uc.client.Transact(ctx, artifact, info.Address, result.Method, args)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageUpgrading})
	if err != nil {
		return result, fmt.Errorf("failed to upgrade %s: %w", name, err)
	}
	result.Receipt = receipt

	impl, err := uc.client.ImplementationAddress(ctx, info.Address)
	if err != nil {
		return result, err
	}
	result.NewImpl = impl

	updated := *info
	updated.Impl = impl
	if err := uc.state.Update(ctx, name, &updated); err != nil {
		return result, err
	}

	if err := uc.client.WaitConfirmations(ctx, receipt); err != nil {
		return result, err
	}
	return result, nil
}
