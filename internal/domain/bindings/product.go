package bindings

import (
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
)

// ProductMetaData contains the subset of the structured product ABI used for listings.
var ProductMetaData = bind.MetaData{
	ABI: "[{\"type\":\"function\",\"name\":\"currentTokenId\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"uint256\",\"internalType\":\"uint256\"}],\"stateMutability\":\"view\"},{\"type\":\"function\",\"name\":\"status\",\"inputs\":[],\"outputs\":[{\"name\":\"\",\"type\":\"uint8\",\"internalType\":\"enumDataTypes.Status\"}],\"stateMutability\":\"view\"}]",
	ID:  "Product",
}

// Product is a Go binding around the structured product contract.
type Product struct {
	abi abi.ABI
}

// NewProduct creates a new instance of Product.
func NewProduct() *Product {
	parsed, err := ProductMetaData.ParseABI()
	if err != nil {
		panic(errors.New("invalid ABI: " + err.Error()))
	}
	return &Product{abi: *parsed}
}

// Instance creates a wrapper for a deployed contract instance at the given address.
func (c *Product) Instance(backend bind.ContractBackend, addr common.Address) *bind.BoundContract {
	return bind.NewBoundContract(addr, c.abi, backend, backend, backend)
}

// PackCurrentTokenId is the Go binding used to pack the parameters required for calling
// the contract method currentTokenId.
//
// Solidity: function currentTokenId() view returns(uint256)
func (product *Product) PackCurrentTokenId() []byte {
	enc, err := product.abi.Pack("currentTokenId")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackCurrentTokenId is the Go binding that unpacks the parameters returned
// from invoking the contract method.
//
// Solidity: function currentTokenId() view returns(uint256)
func (product *Product) UnpackCurrentTokenId(data []byte) (*big.Int, error) {
	out, err := product.abi.Unpack("currentTokenId", data)
	if err != nil {
		return new(big.Int), err
	}
	out0 := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	return out0, nil
}

// PackStatus is the Go binding used to pack the parameters required for calling
// the contract method status.
//
// Solidity: function status() view returns(uint8)
func (product *Product) PackStatus() []byte {
	enc, err := product.abi.Pack("status")
	if err != nil {
		panic(err)
	}
	return enc
}

// UnpackStatus is the Go binding that unpacks the parameters returned
// from invoking the contract method.
//
// Solidity: function status() view returns(uint8)
func (product *Product) UnpackStatus(data []byte) (uint8, error) {
	out, err := product.abi.Unpack("status", data)
	if err != nil {
		return 0, err
	}
	out0 := *abi.ConvertType(out[0], new(uint8)).(*uint8)
	return out0, nil
}
