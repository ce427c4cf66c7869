package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// VerificationStatus is the outcome of one verification
type VerificationStatus string

const (
	VerificationVerified        VerificationStatus = "verified"
	VerificationAlreadyVerified VerificationStatus = "already verified"
	VerificationFailed          VerificationStatus = "failed"
	VerificationPlanned         VerificationStatus = "planned"
)

// VerifyContractsParams contains parameters for the verify task
type VerifyContractsParams struct {
	// Only restricts verification to the named state entries
	Only []string
}

// VerificationEntry is the outcome for one address
type VerificationEntry struct {
	Contract string
	Request  domain.VerificationRequest
	Status   VerificationStatus
	Command  []string
	Error    string
}

// VerifyContractsResult contains the result of the verify task
type VerifyContractsResult struct {
	Network string
	Entries []*VerificationEntry
}

// Failed returns the entries whose verification failed
func (r *VerifyContractsResult) Failed() []*VerificationEntry {
	return lo.Filter(r.Entries, func(e *VerificationEntry, _ int) bool {
		return e.Status == VerificationFailed
	})
}

// VerifyContracts verifies every state entry on the block explorer.
// Failures are recorded and the loop moves on to the next contract.
type VerifyContracts struct {
	cfg      *config.RuntimeConfig
	state    NetworkStateStore
	verifier ContractVerifier
	explorer ExplorerClient
	progress ProgressSink
}

// NewVerifyContracts creates a new VerifyContracts use case
func NewVerifyContracts(
	cfg *config.RuntimeConfig,
	state NetworkStateStore,
	verifier ContractVerifier,
	explorer ExplorerClient,
	progress ProgressSink,
) *VerifyContracts {
	return &VerifyContracts{
		cfg:      cfg,
		state:    state,
		verifier: verifier,
		explorer: explorer,
		progress: progress,
	}
}

// Run executes the verify task
func (uc *VerifyContracts) Run(ctx context.Context, params VerifyContractsParams) (*VerifyContractsResult, error) {
	state, err := uc.state.Load(ctx)
	if err != nil {
		return nil, err
	}

	names := state.Names()
	if len(params.Only) > 0 {
		for _, name := range params.Only {
			if _, ok := state[name]; !ok {
				return nil, &domain.ContractNotInStateError{Name: name, Network: uc.cfg.NetworkName()}
			}
		}
		names = lo.Filter(names, func(name string, _ int) bool { return lo.Contains(params.Only, name) })
	}

	result := &VerifyContractsResult{Network: uc.cfg.NetworkName()}
	for i, name := range names {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   StageVerifying,
			Current: i + 1,
			Total:   len(names),
			Message: fmt.Sprintf("Verifying %s contract", name),
			Spinner: true,
		})

		for _, req := range verificationRequests(name, state[name]) {
			entry := uc.verify(ctx, name, req)
			result.Entries = append(result.Entries, entry)
			if entry.Status == VerificationFailed {
				uc.progress.Error(fmt.Sprintf("%s: %s", req.Name, entry.Error))
			}
		}
	}
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageVerifying})

	return result, nil
}

func (uc *VerifyContracts) verify(ctx context.Context, contract string, req domain.VerificationRequest) *VerificationEntry {
	entry := &VerificationEntry{
		Contract: contract,
		Request:  req,
		Command:  uc.verifier.Command(req),
	}

	if uc.explorer.Enabled() {
		verified, err := uc.explorer.IsVerified(ctx, req.Address)
		if err != nil {
			uc.progress.Info(fmt.Sprintf("Explorer lookup for %s failed: %v", req.Address, err))
		} else if verified {
			entry.Status = VerificationAlreadyVerified
			return entry
		}
	}

	if uc.cfg.DryRun {
		entry.Status = VerificationPlanned
		return entry
	}

	err := uc.verifier.Verify(ctx, req)
	switch {
	case err == nil:
		entry.Status = VerificationVerified
	case errors.Is(err, domain.ErrAlreadyVerified):
		entry.Status = VerificationAlreadyVerified
	default:
		entry.Status = VerificationFailed
		entry.Error = err.Error()
	}
	return entry
}

// verificationRequests returns the addresses to verify for one state entry.
// A proxy is verified after its implementation; the proxy verification
// relies on the verify tool to recover its constructor arguments.
func verificationRequests(name string, info *domain.ContractInfo) []domain.VerificationRequest {
	if info == nil {
		return nil
	}
	if info.IsUpgradeable() {
		return []domain.VerificationRequest{
			{Name: name + " (implementation)", Address: info.Impl},
			{Name: name, Address: info.Address},
		}
	}
	return []domain.VerificationRequest{
		{Name: name, Address: info.Address, ConstructorArgs: info.ConstructorArgs},
	}
}
