package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/samber/lo"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// SetupStep is one transaction sent by the setup task
type SetupStep struct {
	Description string
	Contract    string
	Method      string
	TxHash      string
	Skipped     bool
	Reason      string
}

// SetupContractsResult contains the result of the setup task
type SetupContractsResult struct {
	Network string
	DryRun  bool
	Steps   []*SetupStep
}

// SetupContracts links and configures freshly deployed contracts
type SetupContracts struct {
	cfg       *config.RuntimeConfig
	configs   DeploymentConfigLoader
	state     NetworkStateStore
	artifacts ArtifactRepository
	client    ContractClient
	progress  ProgressSink
}

// NewSetupContracts creates a new SetupContracts use case
func NewSetupContracts(
	cfg *config.RuntimeConfig,
	configs DeploymentConfigLoader,
	state NetworkStateStore,
	artifacts ArtifactRepository,
	client ContractClient,
	progress ProgressSink,
) *SetupContracts {
	return &SetupContracts{
		cfg:       cfg,
		configs:   configs,
		state:     state,
		artifacts: artifacts,
		client:    client,
		progress:  progress,
	}
}

type setupCall struct {
	description string
	contract    string
	method      string
	args        []any
	skipReason  string
}

// Run executes the setup task
func (uc *SetupContracts) Run(ctx context.Context) (*SetupContractsResult, error) {
	deployCfg, err := uc.configs.Load(ctx)
	if err != nil {
		return nil, err
	}

	calls, err := uc.plan(ctx, deployCfg)
	if err != nil {
		return nil, err
	}

	result := &SetupContractsResult{Network: uc.cfg.NetworkName(), DryRun: uc.cfg.DryRun}
	for i, call := range calls {
		step := &SetupStep{
			Description: call.description,
			Contract:    call.contract,
			Method:      call.method,
		}
		result.Steps = append(result.Steps, step)

		if call.skipReason != "" {
			step.Skipped = true
			step.Reason = call.skipReason
			uc.progress.Info(fmt.Sprintf("Skip %s: %s", call.description, call.skipReason))
			continue
		}
		if uc.cfg.DryRun {
			continue
		}

		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageSetup,
			Current: i + 1,
			Total:   len(calls),
			Message: call.description,
			Spinner: true,
		})

		receipt, err := uc.send(ctx, call)
		if err != nil {
			return result, fmt.Errorf("%s: %w", call.description, err)
		}
		step.TxHash = receipt.TxHash
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageSetup})
		uc.progress.Info(fmt.Sprintf("%s: %s", call.description, receipt.TxHash))
	}

	return result, nil
}

// plan resolves every setup transaction up front so that a missing state
// entry fails before anything is sent.
func (uc *SetupContracts) plan(ctx context.Context, deployCfg *config.DeploymentConfig) ([]setupCall, error) {
	if _, err := uc.state.Address(ctx, domain.ContractToken); err != nil {
		return nil, err
	}
	auctionHouse, err := uc.state.Address(ctx, domain.ContractAuctionHouse)
	if err != nil {
		return nil, err
	}

	calls := []setupCall{
		{
			description: "Link token contract with auction house",
			contract:    domain.ContractToken,
			method:      "setMinter",
			args:        []any{auctionHouse},
		},
	}

	if len(deployCfg.Metadata) > 0 {
		ids := lo.Map(deployCfg.Metadata, func(m config.MetadataEntry, _ int) any { return new(big.Int).SetUint64(m.ID) })
		uris := lo.Map(deployCfg.Metadata, func(m config.MetadataEntry, _ int) any { return m.URI })
		calls = append(calls, setupCall{
			description: "Update token metadata",
			contract:    domain.ContractToken,
			method:      "updateMetadata",
			args:        []any{ids, uris},
		})
	}

	if len(deployCfg.KeyHolders) > 0 {
		call := setupCall{
			description: "Mint Zeitls Key",
			contract:    deployCfg.KeyContract,
			method:      "mintBatch",
			args:        []any{lo.ToAnySlice(deployCfg.KeyHolders)},
		}
		if _, err := uc.state.Address(ctx, deployCfg.KeyContract); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			call.skipReason = fmt.Sprintf("%s is not present in the state", deployCfg.KeyContract)
		}
		calls = append(calls, call)
	}

	if len(deployCfg.Affiliates) > 0 {
		if _, err := uc.state.Address(ctx, domain.ContractTreasury); err != nil {
			return nil, err
		}
		calls = append(calls, setupCall{
			description: "Affiliates added",
			contract:    domain.ContractTreasury,
			method:      "addAffiliates",
			args: []any{
				lo.Map(deployCfg.Affiliates, func(a config.Affiliate, _ int) any { return a.Address }),
				lo.Map(deployCfg.Affiliates, func(a config.Affiliate, _ int) any { return new(big.Int).SetUint64(a.Share) }),
			},
		})
	}

	return calls, nil
}

func (uc *SetupContracts) send(ctx context.Context, call setupCall) (*domain.TxReceipt, error) {
	artifact, err := uc.artifacts.GetArtifact(ctx, call.contract)
	if err != nil {
		return nil, err
	}
	address, err := uc.state.Address(ctx, call.contract)
	if err != nil {
		return nil, err
	}
	receipt, err := uc.client.Transact(ctx, artifact, address, call.method, call.args)
	if err != nil {
		return nil, err
	}
	if err := uc.client.WaitConfirmations(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}
