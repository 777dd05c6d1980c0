package blockchain

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/superhedge/listingctl/internal/domain/config"
)

// ErrNoRPC is returned when the active network has no RPC endpoint
var ErrNoRPC = errors.New("no RPC endpoint configured")

// Client dials the active network's RPC endpoint on first use and shares
// the connection between the binder, the gateway and the wallet.
type Client struct {
	network *config.Network

	mu     sync.Mutex
	client *ethclient.Client
}

// NewClient creates a lazily connected client for the active network
func NewClient(cfg *config.RuntimeConfig) *Client {
	return &Client{network: cfg.Network}
}

// Eth returns the connected ethclient
func (c *Client) Eth() (*ethclient.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if c.network == nil || c.network.RPCURL == "" {
		return nil, ErrNoRPC
	}

	client, err := ethclient.Dial(c.network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	c.client = client
	return client, nil
}

// ChainID asks the node for its chain id and checks it against the
// configured one when that is set.
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	client, err := c.Eth()
	if err != nil {
		return 0, err
	}

	networkChainID, err := client.ChainID(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if c.network.ChainID != 0 && networkChainID.Uint64() != c.network.ChainID {
		return 0, fmt.Errorf("chain ID mismatch: expected %d, got %d", c.network.ChainID, networkChainID.Uint64())
	}
	return networkChainID.Uint64(), nil
}

// Close releases the connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
}
