package usecase

import (
	"context"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// ShowHistoryParams contains parameters for the transaction history
type ShowHistoryParams struct {
	Order models.HistoryOrder
	Type  string // optional, case-insensitive match on the entry type
}

// ShowHistory is the use case for showing the user's transaction history
type ShowHistory struct {
	session  SessionSource
	listings ListingService
	sink     ProgressSink
}

// NewShowHistory creates a new ShowHistory use case
func NewShowHistory(session SessionSource, listings ListingService, sink ProgressSink) *ShowHistory {
	return &ShowHistory{
		session:  session,
		listings: listings,
		sink:     sink,
	}
}

// Run executes the use case
func (uc *ShowHistory) Run(ctx context.Context, params ShowHistoryParams) ([]*models.HistoryEntry, error) {
	session := uc.session.Current()
	if !session.HasAddress() {
		return nil, &domain.PreconditionError{Op: "show history", Err: domain.ErrSessionNotReady}
	}

	order := params.Order
	if order != models.HistoryOldestFirst {
		order = models.HistoryNewestFirst
	}

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: StageSyncing, Message: "Loading history", Spinner: true})
	entries := uc.listings.GetHistory(ctx, session.Address, order)

	if params.Type != "" {
		entries = lo.Filter(entries, func(e *models.HistoryEntry, _ int) bool {
			return strings.EqualFold(e.Type, params.Type)
		})
	}

	// the backend sorts already; keep the order stable if it does not
	slices.SortStableFunc(entries, func(a, b *models.HistoryEntry) int {
		return a.CreatedAt.Compare(b.CreatedAt) * int(order)
	})
	return entries, nil
}
