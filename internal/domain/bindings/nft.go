package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
)

// NFTMetaData contains the subset of the ERC-1155 position token ABI used for listings.
var NFTMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"balanceOf\",\"inputs\":[{\"name\":\"account\",\"type\":\"address\",\"internalType\":\"address\"},{\"name\":\"id\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"view\"}]",
	ID:  "NFT",
}

// NFT is a Go binding around the position token contract.
type NFT struct {
	abi abi.ABI
}

// NewNFT creates a new instance of NFT.
func NewNFT() *NFT {
	parsed, err := NFTMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &NFT{abi: *parsed}
}

// Instance creates a wrapper for a deployed contract instance at the given address.
func (c *NFT) Instance(backend bind.ContractBackend, addr common.Address) *bind.BoundContract {
	return bind.NewBoundContract(addr, c.abi, backend, backend, backend)
}

// PackBalanceOf is the Go binding used to pack the parameters required for calling
// the contract method balanceOf.
//
// Solidity: function balanceOf(address account, uint256 id) view returns(uint256)
func (nft *NFT) PackBalanceOf(account common.Address, id *big.Int) []byte {
	enc, err := nft.abi.Pack("balanceOf", account, id)
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackBalanceOf is the Go binding that unpacks the parameters returned
// from invoking the contract method.
//
// Solidity: function balanceOf(address account, uint256 id) view returns(uint256)
func (nft *NFT) UnpackBalanceOf(data []byte) (*big.Int, error) {
	out, err := nft.abi.Unpack("balanceOf", data)
	if err != nil {
		return new(big.Int), err
	}
	out0 := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	return out0, nil
}
