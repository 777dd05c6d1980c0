package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire types of the listing backend. Amounts are decimal currency units.

// IssuanceCycle carries the artwork of a product issuance
type IssuanceCycle struct {
	ImageURI string `json:"image_uri,omitempty" yaml:"image_uri,omitempty"`
}

// ListingDTO is a marketplace listing as served by the backend
type ListingDTO struct {
	ListingID      string          `json:"listingId" yaml:"listingId"`
	ProductAddress string          `json:"productAddress" yaml:"productAddress"`
	Seller         string          `json:"seller" yaml:"seller"`
	ChainID        uint64          `json:"chainId" yaml:"chainId"`
	OfferPrice     decimal.Decimal `json:"offerPrice" yaml:"offerPrice"`
	Quantity       uint64          `json:"quantity" yaml:"quantity"`
	StartingTime   int64           `json:"startingTime" yaml:"startingTime"`
	IssuanceCycle  IssuanceCycle   `json:"issuanceCycle" yaml:"issuanceCycle"`
}

// ProductDTO is a held product as served by the positions endpoint
type ProductDTO struct {
	Address         string          `json:"address" yaml:"address"`
	Name            string          `json:"name" yaml:"name"`
	Underlying      string          `json:"underlying" yaml:"underlying"`
	Status          uint8           `json:"status" yaml:"status"`
	MaxCapacity     decimal.Decimal `json:"maxCapacity" yaml:"maxCapacity"`
	CurrentCapacity decimal.Decimal `json:"currentCapacity" yaml:"currentCapacity"`
	IssuanceCycle   IssuanceCycle   `json:"issuanceCycle" yaml:"issuanceCycle"`
}

// UserDTO is the backend user record
type UserDTO struct {
	Address    string   `json:"address" yaml:"address"`
	ProductIDs []string `json:"productIds" yaml:"productIds"`
}

// HistoryDTO is one history row
type HistoryDTO struct {
	TxHash         string          `json:"txHash" yaml:"txHash"`
	ProductAddress string          `json:"productAddress" yaml:"productAddress"`
	ProductName    string          `json:"productName" yaml:"productName"`
	Type           string          `json:"type" yaml:"type"`
	Amount         decimal.Decimal `json:"amount" yaml:"amount"`
	Lots           uint64          `json:"lots" yaml:"lots"`
	CreatedAt      time.Time       `json:"createdAt" yaml:"createdAt"`
}

// ListingUpdateDTO is the body of PUT /marketplace/listing/{listingId}
type ListingUpdateDTO struct {
	OfferPrice   *decimal.Decimal `json:"offerPrice,omitempty"`
	Quantity     *uint64          `json:"quantity,omitempty"`
	StartingTime *int64           `json:"startingTime,omitempty"`
}
