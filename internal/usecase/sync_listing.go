package usecase

import (
	"context"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// ListingSynchronizer keeps one MergedListingView for the current key.
//
// Every SyncListing call starts a new generation. A fetch result is applied
// only while its generation is still current, so a slow answer for an older
// key can never overwrite the view of a newer one. Superseded fetches are
// not cancelled; they run to completion and their results are dropped.
type ListingSynchronizer struct {
	listings ListingService
	chain    PositionReader
	handles  HandleProvider
	nft      common.Address
	log      *slog.Logger

	mu        sync.Mutex
	gen       uint64
	view      models.MergedListingView
	observers map[int]func(models.MergedListingView)
	nextID    int
}

// NewListingSynchronizer creates a synchronizer. nft is the position token
// contract balances are read from.
func NewListingSynchronizer(
	listings ListingService,
	chain PositionReader,
	handles HandleProvider,
	nft common.Address,
	log *slog.Logger,
) *ListingSynchronizer {
	return &ListingSynchronizer{
		listings:  listings,
		chain:     chain,
		handles:   handles,
		nft:       nft,
		log:       log.With("component", "sync"),
		observers: make(map[int]func(models.MergedListingView)),
	}
}

// SyncListing makes key current and fetches its record, product snapshot
// and balance in dependency order. The returned view is the synchronizer's
// view when the call finishes; the bool is false when a later call has
// replaced key in the meantime.
func (s *ListingSynchronizer) SyncListing(ctx context.Context, key models.ListingKey) (models.MergedListingView, bool) {
	gen := s.begin(key)
	s.fetch(ctx, gen, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view, s.gen == gen
}

// Refresh re-synchronizes the current key
func (s *ListingSynchronizer) Refresh(ctx context.Context) (models.MergedListingView, bool) {
	return s.SyncListing(ctx, s.View().Key)
}

// View returns the current merged view
func (s *ListingSynchronizer) View() models.MergedListingView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Subscribe registers an observer called on every view change. Observers run
// with the synchronizer's lock held and must not call back into it.
func (s *ListingSynchronizer) Subscribe(observer func(models.MergedListingView)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = observer

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

func (s *ListingSynchronizer) begin(key models.ListingKey) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.view = models.MergedListingView{Key: key, Loading: true}
	s.log.Debug("sync started", "key", key.String(), "generation", s.gen)
	s.notifyLocked()
	return s.gen
}

// apply runs update on the view if gen is still current
func (s *ListingSynchronizer) apply(gen uint64, update func(v *models.MergedListingView)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		s.log.Debug("discarding stale result", "generation", gen, "current", s.gen)
		return false
	}
	update(&s.view)
	s.notifyLocked()
	return true
}

func (s *ListingSynchronizer) notifyLocked() {
	for _, o := range s.observers {
		o(s.view)
	}
}

func (s *ListingSynchronizer) fetch(ctx context.Context, gen uint64, key models.ListingKey) {
	productAddress := key.ProductAddress
	if !key.IsPosition() {
		record := s.listings.GetListing(ctx, key.ListingID)
		if !s.apply(gen, func(v *models.MergedListingView) {
			v.Record = record
			if record == nil {
				v.Loading = false
			}
		}) || record == nil {
			return
		}
		productAddress = record.ProductAddress
	}

	product := s.readProduct(ctx, productAddress)
	if !s.apply(gen, func(v *models.MergedListingView) {
		v.Product = product
		if product == nil {
			v.Loading = false
		}
	}) || product == nil {
		return
	}

	balance := s.readBalance(ctx, key.Address, product.CurrentTokenID)
	s.apply(gen, func(v *models.MergedListingView) {
		v.Balance = balance
		v.Loading = false
	})
}

func (s *ListingSynchronizer) readProduct(ctx context.Context, address common.Address) *models.ProductSnapshot {
	handle, ok := s.handles.GetHandle(address, bindings.ProductDescriptor)
	if !ok {
		s.log.Debug("product handle not ready", "product", address.Hex())
		return nil
	}

	product, err := s.chain.ReadProduct(ctx, handle)
	if err != nil {
		s.log.Warn("failed to read product", "product", address.Hex(), "error", err)
		return nil
	}
	return product
}

func (s *ListingSynchronizer) readBalance(ctx context.Context, owner common.Address, tokenID *big.Int) *big.Int {
	if owner == (common.Address{}) || tokenID == nil {
		return nil
	}

	handle, ok := s.handles.GetHandle(s.nft, bindings.NFTDescriptor)
	if !ok {
		s.log.Debug("nft handle not ready", "nft", s.nft.Hex())
		return nil
	}

	balance, err := s.chain.BalanceOf(ctx, handle, owner, tokenID)
	if err != nil {
		s.log.Warn("failed to read balance", "owner", owner.Hex(), "tokenId", tokenID, "error", err)
		return nil
	}
	return balance
}
