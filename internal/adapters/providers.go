package adapters

import (
	"github.com/google/wire"
	"github.com/superhedge/listingctl/internal/adapters/backend"
	"github.com/superhedge/listingctl/internal/adapters/blockchain"
	internalconfig "github.com/superhedge/listingctl/internal/adapters/config"
	"github.com/superhedge/listingctl/internal/adapters/interactive"
	"github.com/superhedge/listingctl/internal/adapters/progress"
	"github.com/superhedge/listingctl/internal/adapters/wallet"
	"github.com/superhedge/listingctl/internal/usecase"
)

// BlockchainSet provides the RPC client, the contract binder and the chain gateway
var BlockchainSet = wire.NewSet(
	blockchain.NewClient,

	blockchain.NewBinder,
	wire.Bind(new(usecase.ContractBinder), new(*blockchain.Binder)),

	blockchain.NewGateway,
	wire.Bind(new(usecase.PositionReader), new(*blockchain.Gateway)),
	wire.Bind(new(usecase.ListingTransactor), new(*blockchain.Gateway)),
)

// WalletSet provides the key-based wallet
var WalletSet = wire.NewSet(
	wallet.NewKeyWallet,
	wire.Bind(new(usecase.WalletProvider), new(*wallet.KeyWallet)),
	wire.Bind(new(wallet.ChainIDSource), new(*blockchain.Client)),
)

// BackendSet provides the off-chain listing service
var BackendSet = wire.NewSet(
	backend.NewService,
	wire.Bind(new(usecase.ListingService), new(*backend.Service)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.PositionSelector), new(*interactive.SelectorAdapter)),

	interactive.NewConfirmer,
	wire.Bind(new(usecase.Confirmer), new(*interactive.Confirmer)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),
)

// ProgressSet provides the progress sink
var ProgressSet = wire.NewSet(
	progress.NewSink,
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	BlockchainSet,
	WalletSet,
	BackendSet,
	InteractiveSet,
	ConfigSet,
	ProgressSet,
)
