package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MarketplaceMetaData contains the listing entry points of the marketplace contract.
var MarketplaceMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"listItem\",\"inputs\":[{\"name\":\"_nft\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_tokenId\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"_quantity\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"_payToken\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_price\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"_startTime\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"updateListing\",\"inputs\":[{\"name\":\"_listingId\",\"type\":\"uint256\",\"internalType\":\"uint256\"},{\"name\":\"_payToken\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"_newPrice\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"function\",\"name\":\"cancelListing\",\"inputs\":[{\"name\":\"_listingId\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"outputs\":[],\"stateMutability\":\"nonpayable\"},{\"type\":\"event\",\"name\":\"ItemListed\",\"inputs\":[{\"name\":\"listingId\",\"type\":\"uint256\",\"indexed\":true,\"internalType\":\"uint256\"},{\"name\":\"seller\",\"type\":\"address\",\"indexed\":true,\"internalType\":\"address\"},{\"name\":\"nft\",\"type\":\"address\",\"indexed\":false,\"internalType\":\"address\"},{\"name\":\"tokenId\",\"type\":\"uint256\",\"indexed\":false,\"internalType\":\"uint256\"},{\"name\":\"quantity\",\"type\":\"uint256\",\"indexed\":false,\"internalType\":\"uint256\"},{\"name\":\"payToken\",\"type\":\"address\",\"indexed\":false,\"internalType\":\"address\"},{\"name\":\"price\",\"type\":\"uint256\",\"indexed\":false,\"internalType\":\"uint256\"},{\"name\":\"startTime\",\"type\":\"uint256\",\"indexed\":false,\"internalType\":\"uint256\"}],\"anonymous\":false}]",
	ID:  "Marketplace",
}

// Marketplace is a Go binding around the secondary marketplace contract.
type Marketplace struct {
	abi abi.ABI
}

// NewMarketplace creates a new instance of Marketplace.
func NewMarketplace() *Marketplace {
	parsed, err := MarketplaceMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &Marketplace{abi: *parsed}
}

// Instance creates a wrapper for a deployed contract instance at the given address.
func (c *Marketplace) Instance(backend bind.ContractBackend, addr common.Address) *bind.BoundContract {
	return bind.NewBoundContract(addr, c.abi, backend, backend, backend)
}

// PackListItem packs the parameters for listItem.
//
// Solidity: function listItem(address _nft, uint256 _tokenId, uint256 _quantity, address _payToken, uint256 _price, uint256 _startTime) returns()
func (m *Marketplace) PackListItem(nft common.Address, tokenID *big.Int, quantity *big.Int, payToken common.Address, price *big.Int, startTime *big.Int) []byte {
	enc, err := m.abi.Pack("listItem", nft, tokenID, quantity, payToken, price, startTime)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackUpdateListing packs the parameters for updateListing.
//
// Solidity: function updateListing(uint256 _listingId, address _payToken, uint256 _newPrice) returns()
func (m *Marketplace) PackUpdateListing(listingID *big.Int, payToken common.Address, newPrice *big.Int) []byte {
	enc, err := m.abi.Pack("updateListing", listingID, payToken, newPrice)
	if err != nil {
		panic(err)
	}
	return enc
}

// PackCancelListing packs the parameters for cancelListing.
//
// Solidity: function cancelListing(uint256 _listingId) returns()
func (m *Marketplace) PackCancelListing(listingID *big.Int) []byte {
	enc, err := m.abi.Pack("cancelListing", listingID)
	if err != nil {
		panic(err)
	}
	return enc
}

// MarketplaceItemListed represents an ItemListed event raised by the Marketplace contract.
type MarketplaceItemListed struct {
	ListingId *big.Int
	Seller    common.Address
	Nft       common.Address
	TokenId   *big.Int
	Quantity  *big.Int
	PayToken  common.Address
	Price     *big.Int
	StartTime *big.Int
	Raw       *types.Log
}

const MarketplaceItemListedEventName = "ItemListed"

// ContractEventName returns the user-defined event name.
func (MarketplaceItemListed) ContractEventName() string {
	return MarketplaceItemListedEventName
}

// UnpackItemListedEvent unpacks an ItemListed log.
//
// Solidity: event ItemListed(uint256 indexed listingId, address indexed seller, address nft, uint256 tokenId, uint256 quantity, address payToken, uint256 price, uint256 startTime)
func (m *Marketplace) UnpackItemListedEvent(log *types.Log) (*MarketplaceItemListed, error) {
	event := MarketplaceItemListedEventName
	if len(log.Topics) == 0 || log.Topics[0] != m.abi.Events[event].ID {
		return nil, errors.New("event signature mismatch")
	}
	out := new(MarketplaceItemListed)
	if len(log.Data) > 0 {
		if err := m.abi.UnpackIntoInterface(out, event, log.Data); err != nil {
			return nil, err
		}
	}
	var indexed abi.Arguments
	for _, arg := range m.abi.Events[event].Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if err := abi.ParseTopics(out, indexed, log.Topics[1:]); err != nil {
		return nil, err
	}
	out.Raw = log
	return out, nil
}
