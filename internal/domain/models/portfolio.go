package models

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Position is a structured product held by the user
type Position struct {
	Address          common.Address `json:"address" yaml:"address"`
	Name             string         `json:"name" yaml:"name"`
	Underlying       string         `json:"underlying" yaml:"underlying"`
	Status           ProductStatus  `json:"status" yaml:"status"`
	MaxCapacity      *big.Int       `json:"maxCapacity,omitempty" yaml:"maxCapacity,omitempty"` // minor units
	CurrentCapacity  *big.Int       `json:"currentCapacity,omitempty" yaml:"currentCapacity,omitempty"`
	IssuanceImageURI string         `json:"issuanceImageUri,omitempty" yaml:"issuanceImageUri,omitempty"`
}

// UserInfo is the backend user record
type UserInfo struct {
	Address    common.Address `json:"address" yaml:"address"`
	ProductIDs []string       `json:"productIds" yaml:"productIds"`
}

// HasPositions reports whether the user owns any product
func (u *UserInfo) HasPositions() bool {
	return u != nil && len(u.ProductIDs) > 0
}

// HistoryEntry is one row of the user's transaction history
type HistoryEntry struct {
	TxHash         common.Hash    `json:"txHash" yaml:"txHash"`
	ProductAddress common.Address `json:"productAddress" yaml:"productAddress"`
	ProductName    string         `json:"productName" yaml:"productName"`
	Type           string         `json:"type" yaml:"type"`
	AmountMinor    *big.Int       `json:"amountMinorUnits" yaml:"amountMinorUnits"`
	Lots           uint64         `json:"lots" yaml:"lots"`
	CreatedAt      time.Time      `json:"createdAt" yaml:"createdAt"`
}

// HistoryOrder is the sort order accepted by the history endpoint
type HistoryOrder int

const (
	HistoryNewestFirst HistoryOrder = -1
	HistoryOldestFirst HistoryOrder = 1
)
