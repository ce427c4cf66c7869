package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// StateCheck is the on-chain check of one state entry
type StateCheck struct {
	Name        string
	Address     string
	HasCode     bool
	Impl        string
	ChainImpl   string
	ImplHasCode bool
	Issues      []string
}

// OK reports whether the entry matches the chain
func (c *StateCheck) OK() bool {
	return len(c.Issues) == 0
}

// CheckStateResult contains every entry check
type CheckStateResult struct {
	Network string
	Checks  []*StateCheck
}

// Healthy reports whether every entry matches the chain
func (r *CheckStateResult) Healthy() bool {
	for _, c := range r.Checks {
		if !c.OK() {
			return false
		}
	}
	return true
}

// CheckState compares the state file with the chain: code must exist at
// every address and recorded implementations must match the proxy slot.
type CheckState struct {
	cfg      *config.RuntimeConfig
	state    NetworkStateStore
	client   ContractClient
	progress ProgressSink
}

// NewCheckState creates a new CheckState use case
func NewCheckState(cfg *config.RuntimeConfig, state NetworkStateStore, client ContractClient, progress ProgressSink) *CheckState {
	return &CheckState{cfg: cfg, state: state, client: client, progress: progress}
}

// Run executes the use case
func (uc *CheckState) Run(ctx context.Context) (*CheckStateResult, error) {
	state, err := uc.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &CheckStateResult{Network: uc.cfg.NetworkName()}
	names := state.Names()
	for i, name := range names {
		info := state[name]
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "checking",
			Current: i + 1,
			Total:   len(names),
			Message: fmt.Sprintf("Checking %s", name),
			Spinner: true,
		})

		check := &StateCheck{Name: name, Address: info.Address, Impl: info.Impl}
		result.Checks = append(result.Checks, check)

		check.HasCode, err = uc.client.CodeExists(ctx, info.Address)
		if err != nil {
			return nil, err
		}
		if !check.HasCode {
			check.Issues = append(check.Issues, "no code at address")
			continue
		}

		if !info.IsUpgradeable() {
			continue
		}
		check.ChainImpl, err = uc.client.ImplementationAddress(ctx, info.Address)
		if err != nil {
			check.Issues = append(check.Issues, err.Error())
			continue
		}
		if !strings.EqualFold(check.ChainImpl, info.Impl) {
			check.Issues = append(check.Issues, fmt.Sprintf("implementation is %s on chain", check.ChainImpl))
		}
		check.ImplHasCode, err = uc.client.CodeExists(ctx, check.ChainImpl)
		if err != nil {
			return nil, err
		}
		if !check.ImplHasCode {
			check.Issues = append(check.Issues, "no code at implementation")
		}
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "checking"})

	return result, nil
}
