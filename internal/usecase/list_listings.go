package usecase

import (
	"context"

	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// ListListingsResult contains the user's listings on the active chain
type ListListingsResult struct {
	Items []*models.ListingRecord
	// HasNoPosition is set when the user holds no product at all
	HasNoPosition bool
}

// ListListings is the use case for listing the user's marketplace listings
type ListListings struct {
	session  SessionSource
	listings ListingService
	sink     ProgressSink
}

// NewListListings creates a new ListListings use case
func NewListListings(session SessionSource, listings ListingService, sink ProgressSink) *ListListings {
	return &ListListings{
		session:  session,
		listings: listings,
		sink:     sink,
	}
}

// Run executes the use case. The listed items and the user record are
// fetched concurrently.
func (uc *ListListings) Run(ctx context.Context) (*ListListingsResult, error) {
	session := uc.session.Current()
	if !session.HasAddress() || !session.HasChain() {
		return nil, &domain.PreconditionError{Op: "list listings", Err: domain.ErrSessionNotReady}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageSyncing, Message: "Loading listings", Spinner: true})

	var (
		items []*models.ListingRecord
		user  *models.UserInfo
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items = uc.listings.GetListedItems(gctx, session.Address, session.ChainID)
		return nil
	})
	g.Go(func() error {
		user = uc.listings.GetUserInfo(gctx, session.Address)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ListListingsResult{
		Items:         items,
		HasNoPosition: !user.HasPositions(),
	}, nil
}
