package app

import (
	"github.com/zeitls/ztl-cli/internal/domain/config"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	DeployContracts  *usecase.DeployContracts
	SetupContracts   *usecase.SetupContracts
	DeployPieces     *usecase.DeployPieces
	VerifyContracts  *usecase.VerifyContracts
	CreateAuctions   *usecase.CreateAuctions
	UpgradeContract  *usecase.UpgradeContract
	ShowState        *usecase.ShowState
	CheckState       *usecase.CheckState
	RemoveStateEntry *usecase.RemoveStateEntry
	ListNetworks     *usecase.ListNetworks
	SignApproval     *usecase.SignApproval
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	deployContracts *usecase.DeployContracts,
	setupContracts *usecase.SetupContracts,
	deployPieces *usecase.DeployPieces,
	verifyContracts *usecase.VerifyContracts,
	createAuctions *usecase.CreateAuctions,
	upgradeContract *usecase.UpgradeContract,
	showState *usecase.ShowState,
	checkState *usecase.CheckState,
	removeStateEntry *usecase.RemoveStateEntry,
	listNetworks *usecase.ListNetworks,
	signApproval *usecase.SignApproval,
) (*App, error) {
	return &App{
		Config:           cfg,
		DeployContracts:  deployContracts,
		SetupContracts:   setupContracts,
		DeployPieces:     deployPieces,
		VerifyContracts:  verifyContracts,
		CreateAuctions:   createAuctions,
		UpgradeContract:  upgradeContract,
		ShowState:        showState,
		CheckState:       checkState,
		RemoveStateEntry: removeStateEntry,
		ListNetworks:     listNetworks,
		SignApproval:     signApproval,
	}, nil
}
