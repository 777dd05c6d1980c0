package config

// ProjectFileConfig represents the listing.toml project file
type ProjectFileConfig struct {
	Network  string                    `toml:"network,omitempty"` // default network name
	Backend  BackendSection            `toml:"backend"`
	Wallet   WalletSection             `toml:"wallet"`
	Networks map[string]NetworkSection `toml:"networks"`
}

// BackendSection represents the [backend] section
type BackendSection struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout,omitempty"`
}

// WalletSection represents the [wallet] section
type WalletSection struct {
	PrivateKey string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Address    string `toml:"address,omitempty"`
	Confirm    *bool  `toml:"confirm,omitempty"`
}

// NetworkSection represents a [networks.<name>] section
type NetworkSection struct {
	ChainID          uint64 `toml:"chain_id"`
	RPCURL           string `toml:"rpc_url"`
	ExplorerURL      string `toml:"explorer_url,omitempty"`
	Marketplace      string `toml:"marketplace"`
	NFT              string `toml:"nft"`
	Currency         string `toml:"currency"`
	CurrencySymbol   string `toml:"currency_symbol,omitempty"`
	CurrencyDecimals *int32 `toml:"currency_decimals,omitempty"`
}
