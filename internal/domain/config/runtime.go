package config

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	ConfigFile  string // listing.toml path, empty when no file was found

	// Context settings
	Network  *Network            // active network, nil if none resolved
	Networks map[string]*Network // every configured network by name

	// Collaborators
	Backend BackendConfig
	Wallet  WalletConfig

	// Execution settings
	Debug          bool
	NonInteractive bool
	AssumeYes      bool   // --yes: sign without asking
	Output         string // text, json or yaml
	Timeout        time.Duration
	ConfirmTimeout time.Duration
}

// Network represents network configuration
type Network struct {
	Name        string    `json:"name"`
	ChainID     uint64    `json:"chainId"`
	RPCURL      string    `json:"rpcUrl"`
	ExplorerURL string    `json:"explorerUrl,omitempty"`
	Contracts   Contracts `json:"contracts"`
	Currency    Currency  `json:"currency"`
}

// Contracts holds the marketplace deployment addresses of a network
type Contracts struct {
	Marketplace common.Address `json:"marketplace"`
	NFT         common.Address `json:"nft"`
}

// Currency is the settlement token used for listing prices
type Currency struct {
	Symbol   string         `json:"symbol"`
	Address  common.Address `json:"address"`
	Decimals int32          `json:"decimals"`
}

// BackendConfig points at the off-chain listing service
type BackendConfig struct {
	URL     string        `json:"url"`
	Timeout time.Duration `json:"timeout"`
}

// WalletConfig configures the key-based wallet provider
type WalletConfig struct {
	PrivateKey string `json:"-"` //nolint:gosec // resolved from env, never rendered
	Address    string `json:"address,omitempty"`
	Confirm    bool   `json:"confirm"`
}

// HasSigner reports whether a signing key is configured
func (w WalletConfig) HasSigner() bool {
	return w.PrivateKey != ""
}

// ExplorerTxURL returns the explorer link for a transaction hash, or "" without explorer
func (n *Network) ExplorerTxURL(hash common.Hash) string {
	if n == nil || n.ExplorerURL == "" {
		return ""
	}
	return n.ExplorerURL + "/tx/" + hash.Hex()
}
