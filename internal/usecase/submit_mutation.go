package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// DefaultConfirmTimeout bounds the wait for a receipt when none is configured
const DefaultConfirmTimeout = 2 * time.Minute

// SubmitOptions tunes a single submission
type SubmitOptions struct {
	ConfirmTimeout time.Duration
}

// SignerSource hands out the signer of the current session
type SignerSource interface {
	Signer() Signer
}

// SubmitMutation builds, signs and broadcasts a marketplace transaction and
// classifies its result into exactly one terminal outcome.
type SubmitMutation struct {
	chain       ListingTransactor
	signers     SignerSource
	network     *config.Network
	marketplace *bindings.Marketplace
	sink        ProgressSink
	log         *slog.Logger

	mu        sync.Mutex
	observers map[int]func(models.TransactionOutcome)
	nextID    int
}

// NewSubmitMutation creates the orchestrator
func NewSubmitMutation(
	chain ListingTransactor,
	signers SignerSource,
	network *config.Network,
	sink ProgressSink,
	log *slog.Logger,
) *SubmitMutation {
	return &SubmitMutation{
		chain:       chain,
		signers:     signers,
		network:     network,
		marketplace: bindings.NewMarketplace(),
		sink:        sink,
		log:         log.With("component", "orchestrator"),
		observers:   make(map[int]func(models.TransactionOutcome)),
	}
}

// Subscribe registers an observer for Submitted and terminal outcomes
func (uc *SubmitMutation) Subscribe(observer func(models.TransactionOutcome)) (unsubscribe func()) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	id := uc.nextID
	uc.nextID++
	uc.observers[id] = observer

	return func() {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		delete(uc.observers, id)
	}
}

// Run submits req through handle. view must be the merged view req was
// built from. A returned error means nothing was sent; otherwise the
// outcome is terminal.
func (uc *SubmitMutation) Run(
	ctx context.Context,
	handle *models.ContractHandle,
	req models.MutationRequest,
	view models.MergedListingView,
	opts SubmitOptions,
) (models.TransactionOutcome, error) {
	if handle == nil {
		return models.TransactionOutcome{}, &domain.PreconditionError{Op: "submit", Err: domain.ErrHandleUnavailable}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageValidating, Message: "Validating request"})
	if err := ValidateMutation(req, view); err != nil {
		return models.TransactionOutcome{}, err
	}

	signer := uc.signers.Signer()
	if signer == nil {
		return models.TransactionOutcome{}, &domain.PreconditionError{Op: "submit", Err: domain.ErrSessionNotReady}
	}
	if ref := (models.SignerRef{Address: signer.Address(), ChainID: signer.ChainID()}); ref != handle.Signer {
		return models.TransactionOutcome{}, &domain.PreconditionError{
			Op:  "submit",
			Err: fmt.Errorf("%w: handle bound to %s, session signs as %s", domain.ErrSessionNotReady, handle.Signer, ref),
		}
	}

	calldata, method, err := uc.pack(req, view)
	if err != nil {
		return models.TransactionOutcome{}, &domain.PreconditionError{Op: "submit", Err: err}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageSigning,
		Message: fmt.Sprintf("Waiting for signature of %s", method),
		Spinner: true,
	})
	tx, err := uc.chain.Transact(ctx, handle, calldata, signer)
	if err != nil {
		return uc.finish(ctx, classifySendError(err)), nil
	}

	uc.log.Info("transaction broadcast", "method", method, "tx", tx.Hash().Hex())
	uc.emit(models.TransactionOutcome{Kind: models.OutcomeSubmitted, TxHash: tx.Hash()})

	timeout := opts.ConfirmTimeout
	if timeout <= 0 {
		timeout = DefaultConfirmTimeout
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageConfirming,
		Message: fmt.Sprintf("Waiting for %s to be mined", tx.Hash().Hex()),
		Spinner: true,
	})
	receipt, err := uc.chain.WaitMined(waitCtx, tx)
	if err != nil {
		// The transaction is out; whatever stopped the wait, its fate is unknown.
		uc.log.Warn("confirmation not observed", "tx", tx.Hash().Hex(), "timeout", timeout, "error", err)
		return uc.finish(ctx, models.TransactionOutcome{Kind: models.OutcomeTimedOut, TxHash: tx.Hash()}), nil
	}

	outcome := models.TransactionOutcome{
		TxHash:      tx.Hash(),
		BlockNumber: receiptBlock(receipt),
	}
	if receipt.Status == types.ReceiptStatusSuccessful {
		outcome.Kind = models.OutcomeConfirmed
		if req.Kind == models.MutationCreate {
			if ev, ok := uc.marketplace.FindItemListed(receipt); ok {
				outcome.ListingID = ev.ListingId.String()
			}
		}
	} else {
		outcome.Kind = models.OutcomeReverted
		outcome.Reason = uc.chain.RevertReason(ctx, tx, receipt)
	}
	return uc.finish(ctx, outcome), nil
}

func (uc *SubmitMutation) pack(req models.MutationRequest, view models.MergedListingView) ([]byte, string, error) {
	if uc.network == nil {
		return nil, "", errors.New("no network configured")
	}
	currency := uc.network.Currency.Address
	if currency == (common.Address{}) && req.Kind != models.MutationCancel {
		return nil, "", fmt.Errorf("no settlement currency configured for network %s", uc.network.Name)
	}

	switch req.Kind {
	case models.MutationUpdate:
		id, err := parseListingID(req.ListingID)
		if err != nil {
			return nil, "", err
		}
		return uc.marketplace.PackUpdateListing(id, currency, req.PriceMinorUnits), "updateListing", nil
	case models.MutationCancel:
		id, err := parseListingID(req.ListingID)
		if err != nil {
			return nil, "", err
		}
		return uc.marketplace.PackCancelListing(id), "cancelListing", nil
	case models.MutationCreate:
		nft := uc.network.Contracts.NFT
		if nft == (common.Address{}) {
			return nil, "", fmt.Errorf("no NFT contract configured for network %s", uc.network.Name)
		}
		if req.StartingTime < 0 {
			return nil, "", fmt.Errorf("invalid starting time %d", req.StartingTime)
		}
		data := uc.marketplace.PackListItem(
			nft,
			view.Product.CurrentTokenID,
			new(big.Int).SetUint64(req.Lots),
			currency,
			req.PriceMinorUnits,
			big.NewInt(req.StartingTime),
		)
		return data, "listItem", nil
	default:
		return nil, "", fmt.Errorf("unknown mutation %q", req.Kind)
	}
}

func (uc *SubmitMutation) finish(ctx context.Context, outcome models.TransactionOutcome) models.TransactionOutcome {
	uc.log.Info("transaction finished", "outcome", outcome.String())
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageCompleted, Message: outcome.String()})
	uc.emit(outcome)
	return outcome
}

func (uc *SubmitMutation) emit(outcome models.TransactionOutcome) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, o := range uc.observers {
		o(outcome)
	}
}

// classifySendError maps a failure before broadcast: a declined signature
// is a user rejection, anything else (gas estimation, node refusal) a revert.
func classifySendError(err error) models.TransactionOutcome {
	if domain.IsUserRejection(err) {
		return models.TransactionOutcome{Kind: models.OutcomeRejectedByUser}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return models.TransactionOutcome{Kind: models.OutcomeTimedOut}
	}
	return models.TransactionOutcome{Kind: models.OutcomeReverted, Reason: domain.RevertReason(err)}
}

func parseListingID(id string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(id, 10)
	if !ok || v.Sign() < 0 || v.BitLen() > domain.MaxUint256Bits {
		return nil, fmt.Errorf("invalid listing id %q", id)
	}
	return v, nil
}

func receiptBlock(r *types.Receipt) uint64 {
	if r == nil || r.BlockNumber == nil {
		return 0
	}
	return r.BlockNumber.Uint64()
}
