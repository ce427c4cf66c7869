package usecase

import (
	"context"
	"fmt"
	"math/big"
	"reflect"

	"github.com/zeitls/ztl-cli/internal/domain"
	"github.com/zeitls/ztl-cli/internal/domain/config"
)

// AuctionLot is a configured lot with parsed values
type AuctionLot struct {
	ID      *big.Int
	Price   *big.Int
	Limited bool
	// Exists is true when the auction house already holds the lot
	Exists bool
}

// CreateAuctionsResult contains the result of the auctions task
type CreateAuctionsResult struct {
	Network      string
	DryRun       bool
	UnpauseTx    string
	WasPaused    bool
	Lots         []*AuctionLot
	CreateTx     string
	CreatedCount int
}

// CreateAuctions lists the configured lots on the auction house, skipping
// lots that already exist and unpausing the house first when needed.
type CreateAuctions struct {
	cfg       *config.RuntimeConfig
	configs   DeploymentConfigLoader
	state     NetworkStateStore
	artifacts ArtifactRepository
	client    ContractClient
	progress  ProgressSink
}

// NewCreateAuctions creates a new CreateAuctions use case
func NewCreateAuctions(
	cfg *config.RuntimeConfig,
	configs DeploymentConfigLoader,
	state NetworkStateStore,
	artifacts ArtifactRepository,
	client ContractClient,
	progress ProgressSink,
) *CreateAuctions {
	return &CreateAuctions{
		cfg:       cfg,
		configs:   configs,
		state:     state,
		artifacts: artifacts,
		client:    client,
		progress:  progress,
	}
}

// Run executes the auctions task
func (uc *CreateAuctions) Run(ctx context.Context) (*CreateAuctionsResult, error) {
	deployCfg, err := uc.configs.Load(ctx)
	if err != nil {
		return nil, err
	}

	lots, err := parseLots(deployCfg.Auctions)
	if err != nil {
		return nil, err
	}

	address, err := uc.state.Address(ctx, domain.ContractAuctionHouse)
	if err != nil {
		return nil, err
	}
	artifact, err := uc.artifacts.GetArtifact(ctx, domain.ContractAuctionHouse)
	if err != nil {
		return nil, err
	}

	result := &CreateAuctionsResult{Network: uc.cfg.NetworkName(), DryRun: uc.cfg.DryRun, Lots: lots}

	out, err := uc.client.Call(ctx, artifact, address, "paused", nil)
	if err != nil {
		return nil, err
	}
	if paused, _ := firstOutput(out).(bool); paused {
		result.WasPaused = true
		if !uc.cfg.DryRun {
			receipt, err := uc.transact(ctx, artifact, address, "unpause", nil, "Auction paused, unpause")
			if err != nil {
				return result, err
			}
			result.UnpauseTx = receipt.TxHash
			uc.progress.Info(fmt.Sprintf("Auction paused, unpause: %s", receipt.TxHash))
		}
	}

	var ids, prices []*big.Int
	var limited []bool
	for _, lot := range lots {
		out, err := uc.client.Call(ctx, artifact, address, "auctions", []any{lot.ID})
		if err != nil {
			return result, err
		}
		reserve, err := reservePrice(out)
		if err != nil {
			return result, fmt.Errorf("auction %s: %w", lot.ID, err)
		}
		if reserve.Sign() != 0 {
			lot.Exists = true
			uc.progress.Info(fmt.Sprintf("Auction %s already exist", lot.ID))
			continue
		}
		ids = append(ids, lot.ID)
		prices = append(prices, lot.Price)
		limited = append(limited, lot.Limited)
	}

	result.CreatedCount = len(ids)
	if len(ids) == 0 || uc.cfg.DryRun {
		return result, nil
	}

	receipt, err := uc.transact(ctx, artifact, address, "createAuctions", []any{ids, prices, limited}, "List auctions")
	if err != nil {
		return result, err
	}
	result.CreateTx = receipt.TxHash
	uc.progress.Info(fmt.Sprintf("List auctions: %s", receipt.TxHash))

	return result, nil
}

func (uc *CreateAuctions) transact(ctx context.Context, artifact *domain.Artifact, address, method string, args []any, message string) (*domain.TxReceipt, error) {
	uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageAuctions, Message: message, Spinner: true})
	defer uc.progress.OnProgress(ctx, ProgressEvent{Stage: StageAuctions})

	receipt, err := uc.client.Transact(ctx, artifact, address, method, args)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if err := uc.client.WaitConfirmations(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func parseLots(configured []config.AuctionLot) ([]*AuctionLot, error) {
	lots := make([]*AuctionLot, 0, len(configured))
	for _, c := range configured {
		id, err := domain.ParseUint256(c.ID)
		if err != nil {
			return nil, fmt.Errorf("auction id %q: %w", c.ID, err)
		}
		price, err := domain.ParseEther(c.Price)
		if err != nil {
			return nil, fmt.Errorf("auction %s price: %w", c.ID, err)
		}
		lots = append(lots, &AuctionLot{ID: id, Price: price, Limited: c.Limited})
	}
	return lots, nil
}

func firstOutput(out []any) any {
	if len(out) == 0 {
		return nil
	}
	return out[0]
}

// reservePrice extracts the first field of the auctions getter, which is
// returned either flattened or as a single tuple.
func reservePrice(out []any) (*big.Int, error) {
	first := firstOutput(out)
	if v := reflect.ValueOf(first); v.Kind() == reflect.Struct && v.NumField() > 0 {
		first = v.Field(0).Interface()
	}
	switch v := first.(type) {
	case *big.Int:
		return v, nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unexpected auctions() output %T", first)
	}
}
