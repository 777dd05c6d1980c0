package models

import (
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// ProductStatus mirrors the status enum of the product contract
type ProductStatus uint8

const (
	ProductStatusPending  ProductStatus = 0
	ProductStatusAccepted ProductStatus = 1
	ProductStatusLocked   ProductStatus = 2
	ProductStatusIssued   ProductStatus = 3
	ProductStatusMature   ProductStatus = 4
)

func (s ProductStatus) String() string {
	switch s {
	case ProductStatusPending:
		return "Pending"
	case ProductStatusAccepted:
		return "Accepted"
	case ProductStatusLocked:
		return "Locked"
	case ProductStatusIssued:
		return "Issued"
	case ProductStatusMature:
		return "Mature"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(s))
	}
}

// ListingRecord is the off-chain record of a marketplace listing
type ListingRecord struct {
	ListingID            string         `json:"listingId" yaml:"listingId"`
	ProductAddress       common.Address `json:"productAddress" yaml:"productAddress"`
	Seller               common.Address `json:"seller" yaml:"seller"`
	OfferPriceMinorUnits *big.Int       `json:"offerPriceMinorUnits" yaml:"offerPriceMinorUnits"`
	Lots                 uint64         `json:"lots" yaml:"lots"`
	StartingTime         int64          `json:"startingTime" yaml:"startingTime"` // unix seconds
	IssuanceImageURI     string         `json:"issuanceImageUri,omitempty" yaml:"issuanceImageUri,omitempty"`
}

// StartsAt returns the listing start as a time value
func (r *ListingRecord) StartsAt() time.Time {
	return time.Unix(r.StartingTime, 0).UTC()
}

// ProductSnapshot is the on-chain view of a structured product
type ProductSnapshot struct {
	Address        common.Address `json:"address" yaml:"address"`
	Status         ProductStatus  `json:"status" yaml:"status"`
	CurrentTokenID *big.Int       `json:"currentTokenId" yaml:"currentTokenId"`
}

// IsIssued reports whether the product has minted its position token
func (p *ProductSnapshot) IsIssued() bool {
	return p != nil && p.Status == ProductStatusIssued
}

// ListingKey identifies what a synchronization pass is about.
// An empty ListingID addresses a position (ProductAddress) instead of a listing.
type ListingKey struct {
	ListingID      string         `json:"listingId,omitempty" yaml:"listingId,omitempty"`
	ProductAddress common.Address `json:"productAddress,omitempty" yaml:"productAddress,omitempty"`
	Address        common.Address `json:"address" yaml:"address"`
	ChainID        uint64         `json:"chainId" yaml:"chainId"`
}

// IsPosition reports whether the key targets a position rather than a listing
func (k ListingKey) IsPosition() bool {
	return k.ListingID == ""
}

func (k ListingKey) String() string {
	if k.IsPosition() {
		return fmt.Sprintf("position:%s/%s@%d", k.ProductAddress.Hex(), k.Address.Hex(), k.ChainID)
	}
	return fmt.Sprintf("listing:%s/%s@%d", k.ListingID, k.Address.Hex(), k.ChainID)
}

// MergedListingView is the reconciled view of a listing. While Loading is
// true the fields only ever belong to Key; values from a previous key are
// never mixed in.
type MergedListingView struct {
	Key     ListingKey       `json:"key" yaml:"key"`
	Record  *ListingRecord   `json:"record,omitempty" yaml:"record,omitempty"`
	Product *ProductSnapshot `json:"product,omitempty" yaml:"product,omitempty"`
	Balance *big.Int         `json:"balance,omitempty" yaml:"balance,omitempty"`
	Loading bool             `json:"loading" yaml:"loading"`
}

// ProductAddress returns the product the view refers to, from the record when
// present and from the key otherwise.
func (v MergedListingView) ProductAddress() common.Address {
	if v.Record != nil {
		return v.Record.ProductAddress
	}
	return v.Key.ProductAddress
}

// Degraded reports whether the view settled with at least one absent field
func (v MergedListingView) Degraded() bool {
	if v.Loading {
		return false
	}
	if !v.Key.IsPosition() && v.Record == nil {
		return true
	}
	return v.Product == nil || v.Balance == nil
}
