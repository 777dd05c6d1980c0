package models

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
)

// Session is a snapshot of the connected wallet.
// A zero Address or ChainID means the value is absent.
type Session struct {
	Address common.Address `json:"address"`
	ChainID uint64         `json:"chainId"`
	CanSign bool           `json:"canSign"`
}

// NewSession builds a session snapshot. CanSign is forced to false unless
// both the address and the chain id are present.
func NewSession(address common.Address, chainID uint64, canSign bool) Session {
	s := Session{Address: address, ChainID: chainID}
	s.CanSign = canSign && s.HasAddress() && s.HasChain()
	return s
}

// HasAddress reports whether a wallet account is connected
func (s Session) HasAddress() bool {
	return s.Address != (common.Address{})
}

// HasChain reports whether the active chain is known
func (s Session) HasChain() bool {
	return s.ChainID != 0
}

// SignerRef returns the identity of the signer bound to this session.
// The second return is false when the session cannot sign.
func (s Session) SignerRef() (SignerRef, bool) {
	if !s.CanSign {
		return SignerRef{}, false
	}
	return SignerRef{Address: s.Address, ChainID: s.ChainID}, true
}

func (s Session) String() string {
	if !s.HasAddress() {
		return "disconnected"
	}
	return fmt.Sprintf("%s@%d (sign=%t)", s.Address.Hex(), s.ChainID, s.CanSign)
}

// SignerRef identifies a signing capability: one account on one chain.
type SignerRef struct {
	Address common.Address `json:"address"`
	ChainID uint64         `json:"chainId"`
}

func (r SignerRef) String() string {
	return fmt.Sprintf("%s@%d", r.Address.Hex(), r.ChainID)
}

// ContractHandle is a callable contract bound to a signer.
// Handles are immutable; the registry replaces them instead of mutating.
type ContractHandle struct {
	Address  common.Address
	ABI      string // descriptor id, e.g. "Marketplace"
	Signer   SignerRef
	Contract *bind.BoundContract
}

// Interchangeable reports whether two handles target the same contract
// with the same signer.
func (h *ContractHandle) Interchangeable(other *ContractHandle) bool {
	if h == nil || other == nil {
		return false
	}
	return h.Address == other.Address && h.Signer == other.Signer
}
