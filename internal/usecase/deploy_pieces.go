package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// DeployPieces deploys the pieces contract against the recorded treasury
type DeployPieces struct {
	cfg       *config.RuntimeConfig
	configs   DeploymentConfigLoader
	state     NetworkStateStore
	artifacts ArtifactRepository
	client    ContractClient
	confirmer Confirmer
	progress  ProgressSink
}

// NewDeployPieces creates a new DeployPieces use case
func NewDeployPieces(
	cfg *config.RuntimeConfig,
	configs DeploymentConfigLoader,
	state NetworkStateStore,
	artifacts ArtifactRepository,
	client ContractClient,
	confirmer Confirmer,
	progress ProgressSink,
) *DeployPieces {
	return &DeployPieces{
		cfg:       cfg,
		configs:   configs,
		state:     state,
		artifacts: artifacts,
		client:    client,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Run executes the deploy-pieces task
func (uc *DeployPieces) Run(ctx context.Context) (*DeployContractsResult, error) {
	deployCfg, err := uc.configs.Load(ctx)
	if err != nil {
		return nil, err
	}

	treasury, err := uc.state.Address(ctx, domain.ContractTreasury)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("treasury address is not present in the state")
		}
		return nil, err
	}

	args := domain.PiecesConstructorArgs(deployCfg, treasury)
	result := &DeployContractsResult{
		Network: uc.cfg.NetworkName(),
		DryRun:  uc.cfg.DryRun,
		Plan: []PlannedContract{{
			Kind: domain.RegularContract,
			Name: domain.ContractPieces,
			Args: formatArgs(args),
		}},
	}
	if sender, err := uc.client.Sender(); err == nil {
		result.Sender = sender
	} else if !uc.cfg.DryRun {
		return nil, err
	}
	if uc.cfg.DryRun {
		return result, nil
	}

	if !uc.cfg.Network.IsLocal() {
		ok, err := uc.confirmer.Confirm(ctx, fmt.Sprintf("Deploy %s to %s from %s", domain.ContractPieces, result.Network, result.Sender))
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	artifact, err := uc.artifacts.GetArtifact(ctx, domain.ContractPieces)
	if err != nil {
		return nil, err
	}

	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   StageDeploying,
		Message: fmt.Sprintf("Deploying %s", domain.ContractPieces),
		Spinner: true,
	})
	receipt, err := uc.client.Deploy(ctx, artifact, args)
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeploying})
	if err != nil {
		return result, fmt.Errorf("failed to deploy %s: %w", domain.ContractPieces, err)
	}

	if err := uc.state.Update(ctx, domain.ContractPieces, &domain.ContractInfo{
		Address:         receipt.ContractAddress,
		ConstructorArgs: args,
	}); err != nil {
		return result, err
	}

	if err := uc.client.WaitConfirmations(ctx, receipt); err != nil {
		return result, err
	}

	result.Deployed = append(result.Deployed, &DeployedContract{
		Kind:    domain.RegularContract,
		Name:    domain.ContractPieces,
		Address: receipt.ContractAddress,
		Args:    args,
		Receipt: receipt,
	})
	return result, nil
}

func formatArgs(args []any) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = fmt.Sprintf("%v", arg)
	}
	return out
}
