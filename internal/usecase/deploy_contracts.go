package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// Deployment progress stages
const (
	StageDeploying = "deploying"
	StageSetup     = "setup"
	StageVerifying = "verifying"
	StageAuctions  = "auctions"
	StageUpgrading = "upgrading"
)

// DeployContractsParams contains parameters for the deploy task
type DeployContractsParams struct {
	// Only restricts the plan to the named contracts
	Only []string
}

// PlannedContract is a plan step with its arguments rendered for display
type PlannedContract struct {
	Kind domain.ContractKind
	Name string
	Args []string
}

// DeployedContract is the outcome of one deployment step
type DeployedContract struct {
	Kind    domain.ContractKind
	Name    string
	Address string
	Impl    string
	Args    []any
	Receipt *domain.TxReceipt
	// ImplReceipt is set for upgradeable contracts
	ImplReceipt *domain.TxReceipt
}

// DeployContractsResult contains the result of the deploy task
type DeployContractsResult struct {
	Network  string
	Sender   string
	DryRun   bool
	Plan     []PlannedContract
	Deployed []*DeployedContract
}

// DeployContracts deploys the core contract suite step by step, recording
// every address in the network state before the next step runs.
type DeployContracts struct {
	cfg       *config.RuntimeConfig
	configs   DeploymentConfigLoader
	state     NetworkStateStore
	artifacts ArtifactRepository
	client    ContractClient
	confirmer Confirmer
	progress  ProgressSink
}

// NewDeployContracts creates a new DeployContracts use case
func NewDeployContracts(
	cfg *config.RuntimeConfig,
	configs DeploymentConfigLoader,
	state NetworkStateStore,
	artifacts ArtifactRepository,
	client ContractClient,
	confirmer Confirmer,
	progress ProgressSink,
) *DeployContracts {
	return &DeployContracts{
		cfg:       cfg,
		configs:   configs,
		state:     state,
		artifacts: artifacts,
		client:    client,
		confirmer: confirmer,
		progress:  progress,
	}
}

// Run executes the deploy task
func (uc *DeployContracts) Run(ctx context.Context, params DeployContractsParams) (*DeployContractsResult, error) {
	deployCfg, err := uc.configs.Load(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := filterPlan(domain.DevilsPlan(deployCfg), params.Only)
	if err != nil {
		return nil, err
	}

	result := &DeployContractsResult{
		Network: uc.cfg.NetworkName(),
		DryRun:  uc.cfg.DryRun,
		Plan:    describePlan(plan),
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
		prompt := fmt.Sprintf("Deploy %d contract(s) to %s from %s", len(plan), result.Network, result.Sender)
		ok, err := uc.confirmer.Confirm(ctx, prompt)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrAborted
		}
	}

	lookup := func(name string) (string, error) {
		return uc.state.Address(ctx, name)
	}

	for i, step := range plan {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageDeploying,
			Current: i + 1,
			Total:   len(plan),
			Message: fmt.Sprintf("Deploying %s contract %s", step.Kind, step.Name),
			Spinner: true,
		})

		args, err := step.ResolveArgs(lookup)
		if err != nil {
			return result, err
		}

		deployed, err := uc.deployStep(ctx, step, args)
		if err != nil {
			return result, fmt.Errorf("failed to deploy %s: %w", step.Name, err)
		}
		result.Deployed = append(result.Deployed, deployed)
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageDeploying})
	return result, nil
}

// deployStep deploys one plan step according to its kind
func (uc *DeployContracts) deployStep(ctx context.Context, step domain.DeploymentContract, args []any) (*DeployedContract, error) {
	switch step.Kind {
	case domain.RegularContract:
		return uc.deployRegular(ctx, step, args)
	case domain.UpgradeableContract:
		return uc.deployUpgradeable(ctx, step, args)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedContractType, step.Kind)
	}
}

func (uc *DeployContracts) deployRegular(ctx context.Context, step domain.DeploymentContract, args []any) (*DeployedContract, error) {
	artifact, err := uc.artifacts.GetArtifact(ctx, step.Name)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.client.Deploy(ctx, artifact, args)
	if err != nil {
		return nil, err
	}

	if err := uc.state.Update(ctx, step.Name, &domain.ContractInfo{
		Address:         receipt.ContractAddress,
		ConstructorArgs: args,
	}); err != nil {
		return nil, err
	}

	if err := uc.client.WaitConfirmations(ctx, receipt); err != nil {
		return nil, err
	}

	return &DeployedContract{
		Kind:    step.Kind,
		Name:    step.Name,
		Address: receipt.ContractAddress,
		Args:    args,
		Receipt: receipt,
	}, nil
}

// deployUpgradeable deploys the implementation, then an ERC-1967 proxy
// whose constructor calls initialize with the step arguments.
func (uc *DeployContracts) deployUpgradeable(ctx context.Context, step domain.DeploymentContract, args []any) (*DeployedContract, error) {
	artifact, err := uc.artifacts.GetArtifact(ctx, step.Name)
	if err != nil {
		return nil, err
	}
	proxyArtifact, err := uc.artifacts.GetArtifact(ctx, uc.cfg.Project.Proxy.Artifact)
	if err != nil {
		return nil, err
	}

	initData, err := uc.client.EncodeCall(artifact, "initialize", args)
	if err != nil {
		return nil, err
	}

	implReceipt, err := uc.client.Deploy(ctx, artifact, nil)
	if err != nil {
		return nil, err
	}

	proxyReceipt, err := uc.client.Deploy(ctx, proxyArtifact, []any{implReceipt.ContractAddress, initData})
	if err != nil {
		return nil, err
	}

	impl, err := uc.client.ImplementationAddress(ctx, proxyReceipt.ContractAddress)
	if err != nil {
		return nil, err
	}

	if err := uc.state.Update(ctx, step.Name, &domain.ContractInfo{
		Address:  proxyReceipt.ContractAddress,
		Impl:     impl,
		InitArgs: args,
	}); err != nil {
		return nil, err
	}

	if err := uc.client.WaitConfirmations(ctx, proxyReceipt); err != nil {
		return nil, err
	}

	return &DeployedContract{
		Kind:        step.Kind,
		Name:        step.Name,
		Address:     proxyReceipt.ContractAddress,
		Impl:        impl,
		Args:        args,
		Receipt:     proxyReceipt,
		ImplReceipt: implReceipt,
	}, nil
}

func filterPlan(plan []domain.DeploymentContract, only []string) ([]domain.DeploymentContract, error) {
	if len(only) == 0 {
		return plan, nil
	}

	names := lo.Map(plan, func(c domain.DeploymentContract, _ int) string { return c.Name })
	for _, name := range only {
		if !lo.Contains(names, name) {
			return nil, fmt.Errorf("unknown contract %s (available: %s)", name, strings.Join(names, ", "))
		}
	}
	return lo.Filter(plan, func(c domain.DeploymentContract, _ int) bool {
		return lo.Contains(only, c.Name)
	}), nil
}

func describePlan(plan []domain.DeploymentContract) []PlannedContract {
	return lo.Map(plan, func(c domain.DeploymentContract, _ int) PlannedContract {
		return PlannedContract{
			Kind: c.Kind,
			Name: c.Name,
			Args: lo.Map(c.Args, func(a domain.Arg, _ int) string { return a.String() }),
		}
	})
}
