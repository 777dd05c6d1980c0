package models

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// MutationKind is the kind of listing change a transaction performs
type MutationKind string

const (
	MutationUpdate MutationKind = "UPDATE"
	MutationCreate MutationKind = "CREATE"
	MutationCancel MutationKind = "CANCEL"
)

// MutationRequest is a user-supplied listing change, validated before submission
type MutationRequest struct {
	Kind            MutationKind   `json:"kind"`
	ListingID       string         `json:"listingId,omitempty"`
	ProductAddress  common.Address `json:"productAddress,omitempty"` // create only
	Lots            uint64         `json:"lots"`
	PriceMinorUnits *big.Int       `json:"priceMinorUnits"`
	StartingTime    int64          `json:"startingTime,omitempty"` // create only, unix seconds
}

// OutcomeKind tags a TransactionOutcome
type OutcomeKind string

const (
	OutcomeSubmitted      OutcomeKind = "SUBMITTED"
	OutcomeConfirmed      OutcomeKind = "CONFIRMED"
	OutcomeRejectedByUser OutcomeKind = "REJECTED_BY_USER"
	OutcomeReverted       OutcomeKind = "REVERTED"
	OutcomeTimedOut       OutcomeKind = "TIMED_OUT"
)

// TransactionOutcome is the classified result of a listing transaction.
// Submitted is the only non-terminal kind.
type TransactionOutcome struct {
	Kind        OutcomeKind `json:"kind"`
	TxHash      common.Hash `json:"txHash,omitempty"`
	Reason      string      `json:"reason,omitempty"`
	BlockNumber uint64      `json:"blockNumber,omitempty"`
	ListingID   string      `json:"listingId,omitempty"` // set on a confirmed create
}

// Terminal reports whether no further outcome follows this one
func (o TransactionOutcome) Terminal() bool {
	return o.Kind != OutcomeSubmitted
}

// Broadcast reports whether the transaction reached the network
func (o TransactionOutcome) Broadcast() bool {
	return o.TxHash != (common.Hash{})
}

func (o TransactionOutcome) String() string {
	switch o.Kind {
	case OutcomeReverted:
		return fmt.Sprintf("%s(%s)", o.Kind, o.Reason)
	case OutcomeSubmitted, OutcomeConfirmed, OutcomeTimedOut:
		return fmt.Sprintf("%s %s", o.Kind, o.TxHash.Hex())
	default:
		return string(o.Kind)
	}
}
