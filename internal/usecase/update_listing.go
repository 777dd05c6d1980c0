package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// SessionSource returns the current wallet session
type SessionSource interface {
	Current() models.Session
}

// UpdateListingParams contains parameters for changing a listing
type UpdateListingParams struct {
	Kind           models.MutationKind
	ListingID      string         // update and cancel
	ProductAddress common.Address // create
	Lots           uint64         // zero on update keeps the listed lot count
	Price          string         // decimal currency units, e.g. "10500.00"
	StartingTime   time.Time      // create; zero means now
	ConfirmTimeout time.Duration
}

// UpdateListingResult contains the views around a listing change
type UpdateListingResult struct {
	Request models.MutationRequest
	Before  models.MergedListingView
	Outcome models.TransactionOutcome
	After   *models.MergedListingView // set once the change is confirmed
}

// UpdateListing runs a listing change end to end: synchronize, validate,
// submit, and re-synchronize once the change is confirmed.
type UpdateListing struct {
	session SessionSource
	sync    *ListingSynchronizer
	handles HandleProvider
	submit  *SubmitMutation
	network *config.Network
	sink    ProgressSink
	log     *slog.Logger
	now     func() time.Time
}

// NewUpdateListing creates a new UpdateListing use case
func NewUpdateListing(
	session SessionSource,
	sync *ListingSynchronizer,
	handles HandleProvider,
	submit *SubmitMutation,
	network *config.Network,
	sink ProgressSink,
	log *slog.Logger,
) *UpdateListing {
	return &UpdateListing{
		session: session,
		sync:    sync,
		handles: handles,
		submit:  submit,
		network: network,
		sink:    sink,
		log:     log.With("component", "update"),
		now:     time.Now,
	}
}

// Run executes the use case
func (uc *UpdateListing) Run(ctx context.Context, params UpdateListingParams) (*UpdateListingResult, error) {
	op := strings.ToLower(string(params.Kind)) + " listing"
	if uc.network == nil {
		return nil, &domain.PreconditionError{Op: op, Err: errors.New("no network configured")}
	}

	session := uc.session.Current()
	if !session.CanSign {
		return nil, &domain.PreconditionError{Op: op, Err: domain.ErrSessionNotReady}
	}
	if session.ChainID != uc.network.ChainID {
		return nil, &domain.PreconditionError{
			Op:  op,
			Err: fmt.Errorf("%w: wallet on chain %d, %s is chain %d", domain.ErrNetworkMismatch, session.ChainID, uc.network.Name, uc.network.ChainID),
		}
	}

	key := models.ListingKey{ListingID: params.ListingID, Address: session.Address, ChainID: session.ChainID}
	if params.Kind == models.MutationCreate {
		key = models.ListingKey{ProductAddress: params.ProductAddress, Address: session.Address, ChainID: session.ChainID}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageSyncing, Message: fmt.Sprintf("Loading %s", key), Spinner: true})
	view, current := uc.sync.SyncListing(ctx, key)
	if !current {
		return nil, &domain.PreconditionError{Op: op, Err: fmt.Errorf("view for %s was replaced while loading", key)}
	}

	req, err := uc.buildRequest(params, view)
	if err != nil {
		return nil, err
	}
	result := &UpdateListingResult{Request: req, Before: view}

	if err := ValidateMutation(req, view); err != nil {
		return result, err
	}

	handle, ok := uc.handles.GetHandle(uc.network.Contracts.Marketplace, bindings.MarketplaceDescriptor)
	if !ok {
		return result, &domain.PreconditionError{Op: op, Err: domain.ErrHandleUnavailable}
	}

	result.Outcome, err = uc.submit.Run(ctx, handle, req, view, SubmitOptions{ConfirmTimeout: params.ConfirmTimeout})
	if err != nil {
		return result, err
	}
	if result.Outcome.Kind != models.OutcomeConfirmed {
		return result, nil
	}

	after := key
	if params.Kind == models.MutationCreate && result.Outcome.ListingID != "" {
		after = models.ListingKey{ListingID: result.Outcome.ListingID, Address: session.Address, ChainID: session.ChainID}
	}
	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageSyncing, Message: "Refreshing listing", Spinner: true})
	if refreshed, ok := uc.sync.SyncListing(ctx, after); ok {
		result.After = &refreshed
	}
	return result, nil
}

func (uc *UpdateListing) buildRequest(params UpdateListingParams, view models.MergedListingView) (models.MutationRequest, error) {
	req := models.MutationRequest{
		Kind:           params.Kind,
		ListingID:      params.ListingID,
		ProductAddress: view.ProductAddress(),
		Lots:           params.Lots,
	}
	if req.Kind == models.MutationCancel {
		return req, nil
	}

	if req.Lots == 0 && req.Kind == models.MutationUpdate && view.Record != nil {
		req.Lots = view.Record.Lots
	}

	price, err := domain.ToMinorUnits(params.Price, uc.network.Currency.Decimals)
	if err != nil {
		return req, &domain.ValidationError{Field: "price", Value: params.Price, Message: err.Error()}
	}
	req.PriceMinorUnits = price

	if req.Kind == models.MutationCreate {
		start := params.StartingTime
		if start.IsZero() {
			start = uc.now()
		}
		req.StartingTime = start.Unix()
	}
	return req, nil
}
