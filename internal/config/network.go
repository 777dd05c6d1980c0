package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/config"
)

// DefaultNetwork is used when neither a flag nor listing.toml names one
const DefaultNetwork = "goerli"

// builtinNetwork is a chain known without configuration. Its RPC endpoint
// is an Alchemy URL whose key comes from the environment.
type builtinNetwork struct {
	chainID  uint64
	rpcURL   string // expanded with the environment
	keyEnv   string
	explorer string
}

var builtinNetworks = map[string]builtinNetwork{
	"mainnet": {
		chainID:  1,
		rpcURL:   "https://eth-mainnet.g.alchemy.com/v2/${ALCHEMY_KEY_MAINNET}",
		keyEnv:   "ALCHEMY_KEY_MAINNET",
		explorer: "https://etherscan.io",
	},
	"polygon": {
		chainID:  137,
		rpcURL:   "https://polygon-mainnet.g.alchemy.com/v2/${ALCHEMY_KEY_POLYGON}",
		keyEnv:   "ALCHEMY_KEY_POLYGON",
		explorer: "https://polygonscan.com",
	},
	"goerli": {
		chainID:  5,
		rpcURL:   "https://eth-goerli.g.alchemy.com/v2/${ALCHEMY_KEY_GOERLI}",
		keyEnv:   "ALCHEMY_KEY_GOERLI",
		explorer: "https://goerli.etherscan.io",
	},
}

// buildNetworks merges the built-in chains with the [networks.*] sections
// of listing.toml. File values override built-in ones field by field.
func buildNetworks(sections map[string]config.NetworkSection) (map[string]*config.Network, error) {
	networks := make(map[string]*config.Network, len(builtinNetworks)+len(sections))

	for name, b := range builtinNetworks {
		n := &config.Network{
			Name:        name,
			ChainID:     b.chainID,
			ExplorerURL: b.explorer,
			Currency:    config.Currency{Symbol: "USDC", Decimals: domain.DefaultCurrencyDecimals},
		}
		if os.Getenv(b.keyEnv) != "" {
			n.RPCURL = os.ExpandEnv(b.rpcURL)
		}
		networks[name] = n
	}

	for name, section := range sections {
		n, ok := networks[name]
		if !ok {
			n = &config.Network{
				Name:     name,
				Currency: config.Currency{Symbol: "USDC", Decimals: domain.DefaultCurrencyDecimals},
			}
			networks[name] = n
		}
		if err := applySection(n, section); err != nil {
			return nil, fmt.Errorf("network %s: %w", name, err)
		}
		if n.ChainID == 0 {
			return nil, fmt.Errorf("network %s: %w: chain_id is required", name, domain.ErrInvalidChainID)
		}
	}

	return networks, nil
}

func applySection(n *config.Network, s config.NetworkSection) error {
	if s.ChainID != 0 {
		n.ChainID = s.ChainID
	}
	if s.RPCURL != "" {
		n.RPCURL = s.RPCURL
	}
	if s.ExplorerURL != "" {
		n.ExplorerURL = strings.TrimRight(s.ExplorerURL, "/")
	}
	if s.CurrencySymbol != "" {
		n.Currency.Symbol = s.CurrencySymbol
	}
	if s.CurrencyDecimals != nil {
		if *s.CurrencyDecimals < 0 {
			return fmt.Errorf("currency_decimals must not be negative")
		}
		n.Currency.Decimals = *s.CurrencyDecimals
	}

	var err error
	if n.Contracts.Marketplace, err = optionalAddress("marketplace", s.Marketplace, n.Contracts.Marketplace); err != nil {
		return err
	}
	if n.Contracts.NFT, err = optionalAddress("nft", s.NFT, n.Contracts.NFT); err != nil {
		return err
	}
	if n.Currency.Address, err = optionalAddress("currency", s.Currency, n.Currency.Address); err != nil {
		return err
	}
	return nil
}

func optionalAddress(field, value string, fallback common.Address) (common.Address, error) {
	if value == "" {
		return fallback, nil
	}
	addr, err := domain.ParseChecksumAddress(value)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", field, err)
	}
	return addr, nil
}

// NetworkResolver resolves network names against the configured networks
type NetworkResolver struct {
	networks map[string]*config.Network
}

// NewNetworkResolver creates a resolver over the runtime networks
func NewNetworkResolver(cfg *config.RuntimeConfig) *NetworkResolver {
	return &NetworkResolver{networks: cfg.Networks}
}

// GetNetworks returns the configured network names, sorted
func (r *NetworkResolver) GetNetworks() []string {
	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the network with the given name
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	n, ok := r.networks[name]
	if !ok {
		return nil, fmt.Errorf("network %q: %w", name, domain.ErrNotFound)
	}
	return n, nil
}
