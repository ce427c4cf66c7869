package usecase

import (
	"context"
	"fmt"

	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// RemoveStateEntry deletes a contract from the network state
type RemoveStateEntry struct {
	cfg       *config.RuntimeConfig
	state     NetworkStateStore
	selector  ContractSelector
	confirmer Confirmer
}

// NewRemoveStateEntry creates a new RemoveStateEntry use case
func NewRemoveStateEntry(cfg *config.RuntimeConfig, state NetworkStateStore, selector ContractSelector, confirmer Confirmer) *RemoveStateEntry {
	return &RemoveStateEntry{cfg: cfg, state: state, selector: selector, confirmer: confirmer}
}

// Run removes name from the state and returns the removed record
func (uc *RemoveStateEntry) Run(ctx context.Context, name string) (*StateEntry, error) {
	state, err := uc.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name, err = uc.selector.SelectContract(ctx, state.Names(), "Select contract to remove")
		if err != nil {
			return nil, err
		}
	}

	info, ok := state[name]
	if !ok {
		// Address reports the miss with suggestions
		if _, err := uc.state.Address(ctx, name); err != nil {
			return nil, err
		}
		return nil, &domain.ContractNotInStateError{Name: name, Network: uc.cfg.NetworkName()}
	}

	ok, err = uc.confirmer.Confirm(ctx, fmt.Sprintf("Remove %s (%s) from %s state", name, info.Address, uc.cfg.NetworkName()))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAborted
	}

	if err := uc.state.Remove(ctx, name); err != nil {
		return nil, err
	}
	return &StateEntry{Name: name, Info: info}, nil
}
