package bindings

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/samber/lo"
)

// Descriptor names an ABI that contract handles can be bound to
type Descriptor struct {
	meta *bind.MetaData
}

var (
	ProductDescriptor     = Descriptor{meta: &ProductMetaData}
	NFTDescriptor         = Descriptor{meta: &NFTMetaData}
	MarketplaceDescriptor = Descriptor{meta: &MarketplaceMetaData}
)

// ID returns the descriptor identifier, e.g. "Marketplace"
func (d Descriptor) ID() string {
	if d.meta == nil {
		return ""
	}
	return d.meta.ID
}

// IsZero reports whether the descriptor carries no ABI
func (d Descriptor) IsZero() bool {
	return d.meta == nil
}

// Parse returns the parsed ABI
func (d Descriptor) Parse() (*abi.ABI, error) {
	if d.meta == nil {
		return nil, fmt.Errorf("empty ABI descriptor")
	}
	return d.meta.ParseABI()
}

// FindItemListed returns the first ItemListed event in a receipt
func (m *Marketplace) FindItemListed(receipt *types.Receipt) (*MarketplaceItemListed, bool) {
	if receipt == nil {
		return nil, false
	}
	events := lo.FilterMap(receipt.Logs, func(l *types.Log, _ int) (*MarketplaceItemListed, bool) {
		ev, err := m.UnpackItemListedEvent(l)
		return ev, err == nil
	})
	if len(events) == 0 {
		return nil, false
	}
	return events[0], true
}

func (e *MarketplaceItemListed) String() string {
	return fmt.Sprintf(
		"%s: listingId=%s seller=%s nft=%s tokenId=%s quantity=%s price=%s",
		e.ContractEventName(),
		e.ListingId,
		e.Seller.Hex(),
		e.Nft.Hex(),
		e.TokenId,
		e.Quantity,
		e.Price,
	)
}
