package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// DefaultWatchInterval is the poll interval of WatchListing
const DefaultWatchInterval = 15 * time.Second

// SessionWatcher is a session source that reports changes and can re-read
// the wallet provider
type SessionWatcher interface {
	SessionSource
	Subscribe(handler func(models.Session)) (unsubscribe func())
	Refresh(ctx context.Context) (models.Session, error)
}

// WatchListingParams contains parameters for watching a listing
type WatchListingParams struct {
	ListingID string
	Interval  time.Duration
}

// WatchListing keeps a listing view synchronized until ctx is done. Every
// tick refreshes the session before re-synchronizing, so a chain or account
// switch is picked up within one interval; a session change reported by the
// provider triggers an immediate re-sync.
type WatchListing struct {
	session SessionWatcher
	sync    *ListingSynchronizer
	log     *slog.Logger
}

// NewWatchListing creates a new WatchListing use case
func NewWatchListing(session SessionWatcher, sync *ListingSynchronizer, log *slog.Logger) *WatchListing {
	return &WatchListing{
		session: session,
		sync:    sync,
		log:     log.With("component", "watch"),
	}
}

// Run blocks until ctx is done. observer receives every view change and
// runs under the synchronizer's lock.
func (uc *WatchListing) Run(ctx context.Context, params WatchListingParams, observer func(models.MergedListingView)) error {
	if params.ListingID == "" {
		return &domain.ValidationError{Field: "listing", Message: "listing id is required"}
	}
	interval := params.Interval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	stopView := uc.sync.Subscribe(observer)
	defer stopView()

	changed := make(chan struct{}, 1)
	stopSession := uc.session.Subscribe(func(models.Session) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer stopSession()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		session, err := uc.session.Refresh(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			uc.log.Warn("session refresh failed", "error", err)
		}
		// The refresh above already covers any change it reported.
		select {
		case <-changed:
		default:
		}

		uc.sync.SyncListing(ctx, models.ListingKey{
			ListingID: params.ListingID,
			Address:   session.Address,
			ChainID:   session.ChainID,
		})

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-changed:
		}
	}
}
