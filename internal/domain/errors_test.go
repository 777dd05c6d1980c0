package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/superhedge/listingctl/internal/domain/models"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{name: "nil", err: nil, want: ClassNone},
		{name: "precondition", err: &PreconditionError{Op: "submit", Err: ErrHandleUnavailable}, want: ClassPrecondition},
		{name: "wrapped validation", err: fmt.Errorf("update: %w", &ValidationError{Field: "lots", Value: "0"}), want: ClassPrecondition},
		{name: "validation list", err: ValidationErrors{{Field: "price"}}, want: ClassPrecondition},
		{name: "blocked", err: &BlockedError{Product: common.HexToAddress("0x01"), Status: "Pending"}, want: ClassPrecondition},
		{name: "session not ready", err: fmt.Errorf("sync: %w", ErrSessionNotReady), want: ClassPrecondition},
		{name: "user rejected", err: fmt.Errorf("sign: %w", ErrUserRejected), want: ClassUserDeclined},
		{name: "anything else", err: errors.New("boom"), want: ClassExecution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestClassifyOutcome(t *testing.T) {
	assert.Equal(t, ClassNone, ClassifyOutcome(models.TransactionOutcome{Kind: models.OutcomeConfirmed}))
	assert.Equal(t, ClassNone, ClassifyOutcome(models.TransactionOutcome{Kind: models.OutcomeSubmitted}))
	assert.Equal(t, ClassUserDeclined, ClassifyOutcome(models.TransactionOutcome{Kind: models.OutcomeRejectedByUser}))
	assert.Equal(t, ClassExecution, ClassifyOutcome(models.TransactionOutcome{Kind: models.OutcomeReverted, Reason: "x"}))
	assert.Equal(t, ClassIndeterminate, ClassifyOutcome(models.TransactionOutcome{Kind: models.OutcomeTimedOut}))
}

func TestBlockedError_Message(t *testing.T) {
	product := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	assert.Contains(t, (&BlockedError{Product: product, Status: "Locked"}).Error(), "is Locked")
	assert.Contains(t, (&BlockedError{Product: product}).Error(), "status unknown")
}
