//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/superhedge/listingctl/internal/adapters"
	"github.com/superhedge/listingctl/internal/config"
	"github.com/superhedge/listingctl/internal/logging"
	"github.com/superhedge/listingctl/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		config.Provider,
		ProvideNetwork,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Session and shared state
		usecase.NewSessionBinding,
		wire.Bind(new(usecase.SessionSource), new(*usecase.SessionBinding)),
		wire.Bind(new(usecase.SessionWatcher), new(*usecase.SessionBinding)),
		wire.Bind(new(usecase.SignerSource), new(*usecase.SessionBinding)),
		usecase.NewContractRegistry,
		wire.Bind(new(usecase.HandleProvider), new(*usecase.ContractRegistry)),
		ProvideListingSynchronizer,
		usecase.NewSubmitMutation,

		// Use cases
		usecase.NewUpdateListing,
		usecase.NewWatchListing,
		usecase.NewListPositions,
		usecase.NewListListings,
		usecase.NewShowHistory,
		usecase.NewListNetworks,
		usecase.NewShowConfig,

		// App
		NewApp,
	)
	return nil, nil
}
