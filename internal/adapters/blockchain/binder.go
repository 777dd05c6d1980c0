package blockchain

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/usecase"
)

// Binder binds contract ABIs to the shared RPC connection
type Binder struct {
	client *Client
}

// NewBinder creates a new binder
func NewBinder(client *Client) *Binder {
	return &Binder{client: client}
}

// Bind returns a bound contract at address
func (b *Binder) Bind(address common.Address, descriptor bindings.Descriptor) (*bind.BoundContract, error) {
	eth, err := b.client.Eth()
	if err != nil {
		return nil, err
	}
	parsed, err := descriptor.Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s ABI: %w", descriptor.ID(), err)
	}
	return bind.NewBoundContract(address, *parsed, eth, eth, eth), nil
}

var _ usecase.ContractBinder = (*Binder)(nil)
