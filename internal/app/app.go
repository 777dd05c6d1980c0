package app

import (
	"log/slog"

	"github.com/superhedge/listingctl/internal/adapters/blockchain"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared state
	Session  *usecase.SessionBinding
	Registry *usecase.ContractRegistry
	Sync     *usecase.ListingSynchronizer
	Submit   *usecase.SubmitMutation
	Sink     usecase.ProgressSink

	// Use cases
	UpdateListing *usecase.UpdateListing
	WatchListing  *usecase.WatchListing
	ListPositions *usecase.ListPositions
	ListListings  *usecase.ListListings
	ShowHistory   *usecase.ShowHistory
	ListNetworks  *usecase.ListNetworks
	ShowConfig    *usecase.ShowConfig

	client *blockchain.Client
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	session *usecase.SessionBinding,
	registry *usecase.ContractRegistry,
	sync *usecase.ListingSynchronizer,
	submit *usecase.SubmitMutation,
	sink usecase.ProgressSink,
	updateListing *usecase.UpdateListing,
	watchListing *usecase.WatchListing,
	listPositions *usecase.ListPositions,
	listListings *usecase.ListListings,
	showHistory *usecase.ShowHistory,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	client *blockchain.Client,
) *App {
	return &App{
		Config:        cfg,
		Log:           log,
		Session:       session,
		Registry:      registry,
		Sync:          sync,
		Submit:        submit,
		Sink:          sink,
		UpdateListing: updateListing,
		WatchListing:  watchListing,
		ListPositions: listPositions,
		ListListings:  listListings,
		ShowHistory:   showHistory,
		ListNetworks:  listNetworks,
		ShowConfig:    showConfig,
		client:        client,
	}
}

// Close stops following the wallet and drops the RPC connection
func (a *App) Close() {
	a.Session.Close()
	a.client.Close()
}

// ProvideNetwork returns the active network
func ProvideNetwork(cfg *config.RuntimeConfig) *config.Network {
	return cfg.Network
}

// ProvideListingSynchronizer reads balances from the active network's NFT contract
func ProvideListingSynchronizer(
	listings usecase.ListingService,
	chain usecase.PositionReader,
	handles usecase.HandleProvider,
	network *config.Network,
	log *slog.Logger,
) *usecase.ListingSynchronizer {
	return usecase.NewListingSynchronizer(listings, chain, handles, network.Contracts.NFT, log)
}
