package usecase

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// ListPositionsParams contains parameters for listing positions
type ListPositionsParams struct {
	// IssuedOnly keeps only positions that can be listed
	IssuedOnly bool
}

// ListPositions is the use case for listing the products the user holds
type ListPositions struct {
	session  SessionSource
	listings ListingService
	selector PositionSelector
	sink     ProgressSink
}

// NewListPositions creates a new ListPositions use case
func NewListPositions(session SessionSource, listings ListingService, selector PositionSelector, sink ProgressSink) *ListPositions {
	return &ListPositions{
		session:  session,
		listings: listings,
		selector: selector,
		sink:     sink,
	}
}

// Run executes the use case. A backend failure yields an empty list.
func (uc *ListPositions) Run(ctx context.Context, params ListPositionsParams) ([]*models.Position, error) {
	session := uc.session.Current()
	if !session.HasAddress() {
		return nil, &domain.PreconditionError{Op: "list positions", Err: domain.ErrSessionNotReady}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageSyncing, Message: "Loading positions", Spinner: true})
	positions := uc.listings.GetPositions(ctx, session.Address)
	if params.IssuedOnly {
		positions = lo.Filter(positions, func(p *models.Position, _ int) bool {
			return p.Status == models.ProductStatusIssued
		})
	}
	return positions, nil
}

// Select lets the user pick one issued position
func (uc *ListPositions) Select(ctx context.Context, prompt string) (*models.Position, error) {
	positions, err := uc.Run(ctx, ListPositionsParams{IssuedOnly: true})
	if err != nil {
		return nil, err
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no issued positions: %w", domain.ErrNotFound)
	}
	if len(positions) == 1 {
		return positions[0], nil
	}
	return uc.selector.SelectPosition(ctx, positions, prompt)
}
