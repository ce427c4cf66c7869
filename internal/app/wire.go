//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/zeitls/ztl-cli/internal/adapters"
	"github.com/zeitls/ztl-cli/internal/config"
	"github.com/zeitls/ztl-cli/internal/logging"
	"github.com/zeitls/ztl-cli/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployContracts,
		usecase.NewSetupContracts,
		usecase.NewDeployPieces,
		usecase.NewVerifyContracts,
		usecase.NewCreateAuctions,
		usecase.NewUpgradeContract,
		usecase.NewShowState,
		usecase.NewCheckState,
		usecase.NewRemoveStateEntry,
		usecase.NewListNetworks,
		usecase.NewSignApproval,

		// App
		NewApp,
	)
	return nil, nil
}
