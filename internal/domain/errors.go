package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidChainID is returned when a chain ID is invalid
	ErrInvalidChainID = errors.New("invalid chain ID")

	// ErrNetworkMismatch is returned when the wallet is on another chain than configured
	ErrNetworkMismatch = errors.New("network mismatch")

	// ErrInvalidAmount is returned when a decimal amount cannot be parsed
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrSessionNotReady is returned when no signing session is available
	ErrSessionNotReady = errors.New("session not ready")

	// ErrHandleUnavailable is returned when a contract handle could not be obtained
	ErrHandleUnavailable = errors.New("contract handle unavailable")

	// ErrUserRejected is returned by signers when the user declines to sign
	ErrUserRejected = errors.New("user rejected signature request")
)

// ErrorClass is the failure taxonomy shared by every listing operation
type ErrorClass int

const (
	ClassNone ErrorClass = iota
	// ClassPrecondition: session not ready, handle absent, validation failed
	ClassPrecondition
	// ClassUserDeclined: the signer declined
	ClassUserDeclined
	// ClassExecution: on-chain revert
	ClassExecution
	// ClassIndeterminate: confirmation not observed in time
	ClassIndeterminate
	// ClassDegraded: a data fetch failed and the view lost a field
	ClassDegraded
)

func (c ErrorClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassPrecondition:
		return "precondition"
	case ClassUserDeclined:
		return "user-declined"
	case ClassExecution:
		return "execution"
	case ClassIndeterminate:
		return "indeterminate"
	case ClassDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// PreconditionError reports that an operation could not start. No network
// call has been issued when this error is returned.
type PreconditionError struct {
	Op  string
	Err error
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: precondition failed: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

// ValidationError reports an invalid field of a mutation request
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

// BlockedError reports that no mutation is allowed for the product, as
// opposed to a correctable field error.
type BlockedError struct {
	Product common.Address
	Status  string // empty when the product snapshot is absent
}

func (e *BlockedError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("product %s status unknown; listing changes are blocked until it is issued", e.Product.Hex())
	}
	return fmt.Sprintf("product %s is %s; listing changes are blocked until it is issued", e.Product.Hex(), e.Status)
}

// ValidationErrors collects several field errors
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, v := range e {
		errs[i] = v
	}
	return errs
}

// ClassifyError maps an error onto the taxonomy. Nil maps to ClassNone.
func ClassifyError(err error) ErrorClass {
	if err == nil {
		return ClassNone
	}

	var pre *PreconditionError
	var val *ValidationError
	var vals ValidationErrors
	var blocked *BlockedError
	switch {
	case errors.As(err, &pre), errors.As(err, &val), errors.As(err, &vals), errors.As(err, &blocked):
		return ClassPrecondition
	case errors.Is(err, ErrSessionNotReady), errors.Is(err, ErrHandleUnavailable):
		return ClassPrecondition
	case errors.Is(err, ErrUserRejected):
		return ClassUserDeclined
	}
	return ClassExecution
}

// ClassifyOutcome maps a transaction outcome onto the taxonomy
func ClassifyOutcome(o models.TransactionOutcome) ErrorClass {
	switch o.Kind {
	case models.OutcomeRejectedByUser:
		return ClassUserDeclined
	case models.OutcomeReverted:
		return ClassExecution
	case models.OutcomeTimedOut:
		return ClassIndeterminate
	default:
		return ClassNone
	}
}
