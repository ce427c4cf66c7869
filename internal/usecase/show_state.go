package usecase

import (
	"context"

	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// StateEntry is a named state record
type StateEntry struct {
	Name string
	Info *domain.ContractInfo
}

// ShowStateResult contains the state of the selected network
type ShowStateResult struct {
	Network string
	Path    string
	Entries []StateEntry
}

// ShowState lists the network state
type ShowState struct {
	cfg   *config.RuntimeConfig
	state NetworkStateStore
}

// NewShowState creates a new ShowState use case
func NewShowState(cfg *config.RuntimeConfig, state NetworkStateStore) *ShowState {
	return &ShowState{cfg: cfg, state: state}
}

// Run executes the use case
func (uc *ShowState) Run(ctx context.Context) (*ShowStateResult, error) {
	state, err := uc.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	result := &ShowStateResult{
		Network: uc.cfg.NetworkName(),
		Path:    uc.state.Path(),
	}
	for _, name := range state.Names() {
		result.Entries = append(result.Entries, StateEntry{Name: name, Info: state[name]})
	}
	return result, nil
}
