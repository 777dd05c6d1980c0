package usecase_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

type syncFixture struct {
	wallet   *fakeWallet
	session  *usecase.SessionBinding
	registry *usecase.ContractRegistry
	listings *MockListingService
	chain    *fakeChain
	sync     *usecase.ListingSynchronizer
}

func newSyncFixture(wallet *fakeWallet) *syncFixture {
	f := &syncFixture{
		wallet:   wallet,
		listings: new(MockListingService),
		chain:    newFakeChain(),
	}
	f.session = usecase.NewSessionBinding(wallet, testLogger())
	f.registry = usecase.NewContractRegistry(f.session, &fakeBinder{}, testLogger())
	f.sync = usecase.NewListingSynchronizer(f.listings, f.chain, f.registry, nftAddress, testLogger())
	return f
}

func listingKey(id string) models.ListingKey {
	return models.ListingKey{ListingID: id, Address: alice, ChainID: goerli}
}

func TestListingSynchronizer_SyncListing(t *testing.T) {
	ctx := context.Background()

	t.Run("merges record, product and balance", func(t *testing.T) {
		f := newSyncFixture(signingWallet(alice, goerli))
		f.listings.On("GetListing", mock.Anything, "7").Return(issuedRecord("7", 5))
		f.chain.withProduct(product, models.ProductStatusIssued, 12).withBalance(alice, 5)

		view, current := f.sync.SyncListing(ctx, listingKey("7"))

		require.True(t, current)
		assert.False(t, view.Loading)
		require.NotNil(t, view.Record)
		assert.Equal(t, "7", view.Record.ListingID)
		require.NotNil(t, view.Product)
		assert.Equal(t, models.ProductStatusIssued, view.Product.Status)
		assert.Equal(t, big.NewInt(12), view.Product.CurrentTokenID)
		assert.Equal(t, big.NewInt(5), view.Balance)
		assert.False(t, view.Degraded())
		assert.Equal(t, view, f.sync.View())
	})

	t.Run("missing record ends the pipeline", func(t *testing.T) {
		f := newSyncFixture(signingWallet(alice, goerli))
		f.listings.On("GetListing", mock.Anything, "404").Return(nil)

		view, current := f.sync.SyncListing(ctx, listingKey("404"))

		require.True(t, current)
		assert.False(t, view.Loading)
		assert.Nil(t, view.Record)
		assert.Nil(t, view.Product)
		assert.Nil(t, view.Balance)
		assert.Equal(t, 0, f.chain.productHits)
	})

	t.Run("failed product read degrades product and balance", func(t *testing.T) {
		f := newSyncFixture(signingWallet(alice, goerli))
		f.listings.On("GetListing", mock.Anything, "7").Return(issuedRecord("7", 5))
		f.chain.productErr = errors.New("rpc down")

		view, _ := f.sync.SyncListing(ctx, listingKey("7"))

		assert.False(t, view.Loading)
		assert.NotNil(t, view.Record)
		assert.Nil(t, view.Product)
		assert.Nil(t, view.Balance)
		assert.True(t, view.Degraded())
	})

	t.Run("failed balance read degrades only the balance", func(t *testing.T) {
		f := newSyncFixture(signingWallet(alice, goerli))
		f.listings.On("GetListing", mock.Anything, "7").Return(issuedRecord("7", 5))
		f.chain.withProduct(product, models.ProductStatusIssued, 12)
		f.chain.balanceErr = errors.New("rpc down")

		view, _ := f.sync.SyncListing(ctx, listingKey("7"))

		assert.NotNil(t, view.Product)
		assert.Nil(t, view.Balance)
	})

	t.Run("no signing capability leaves chain fields absent", func(t *testing.T) {
		f := newSyncFixture(newFakeWallet(usecase.WalletState{Address: alice, ChainID: goerli}))
		f.listings.On("GetListing", mock.Anything, "7").Return(issuedRecord("7", 5))
		f.chain.withProduct(product, models.ProductStatusIssued, 12)

		view, _ := f.sync.SyncListing(ctx, listingKey("7"))

		assert.NotNil(t, view.Record)
		assert.Nil(t, view.Product)
		assert.Equal(t, 0, f.chain.productHits)
	})

	t.Run("position key skips the backend", func(t *testing.T) {
		f := newSyncFixture(signingWallet(alice, goerli))
		f.chain.withProduct(product, models.ProductStatusIssued, 3).withBalance(alice, 9)

		view, current := f.sync.SyncListing(ctx, models.ListingKey{ProductAddress: product, Address: alice, ChainID: goerli})

		require.True(t, current)
		assert.Nil(t, view.Record)
		assert.Equal(t, big.NewInt(9), view.Balance)
		assert.Equal(t, product, view.ProductAddress())
		f.listings.AssertNotCalled(t, "GetListing", mock.Anything, mock.Anything)
	})
}

func TestListingSynchronizer_DiscardsStaleResults(t *testing.T) {
	f := newSyncFixture(signingWallet(alice, goerli))
	f.chain.withProduct(product, models.ProductStatusIssued, 12).withBalance(alice, 5)

	started := make(chan struct{})
	release := make(chan struct{})
	slow := issuedRecord("1", 1)
	f.listings.On("GetListing", mock.Anything, "1").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(slow)
	f.listings.On("GetListing", mock.Anything, "2").Return(issuedRecord("2", 2))

	var mu sync.Mutex
	var views []models.MergedListingView
	f.sync.Subscribe(func(v models.MergedListingView) {
		mu.Lock()
		defer mu.Unlock()
		views = append(views, v)
	})

	type result struct {
		view    models.MergedListingView
		current bool
	}
	done := make(chan result, 1)
	go func() {
		v, ok := f.sync.SyncListing(context.Background(), listingKey("1"))
		done <- result{v, ok}
	}()
	<-started

	second, current := f.sync.SyncListing(context.Background(), listingKey("2"))
	require.True(t, current)
	assert.Equal(t, "2", second.Record.ListingID)

	close(release)
	var first result
	select {
	case first = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("superseded sync never finished")
	}

	assert.False(t, first.current)
	assert.Equal(t, "2", first.view.Key.ListingID)
	assert.Equal(t, second, f.sync.View())

	mu.Lock()
	defer mu.Unlock()
	for _, v := range views {
		if v.Record != nil {
			assert.Equal(t, v.Key.ListingID, v.Record.ListingID, "view mixed data of two keys")
		}
	}
}

func TestListingSynchronizer_LastKeyWinsUnderAnyOrder(t *testing.T) {
	// Release the pending record fetches in every order and check the view
	// always settles on the last requested key.
	orders := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}, {1, 2, 0}, {0, 2, 1}, {2, 0, 1}}
	ids := []string{"10", "11", "12"}

	for _, order := range orders {
		f := newSyncFixture(signingWallet(alice, goerli))
		f.chain.withProduct(product, models.ProductStatusIssued, 1).withBalance(alice, 1)

		gates := make([]chan struct{}, len(ids))
		entered := make(chan struct{}, len(ids))
		for i, id := range ids {
			gate := make(chan struct{})
			gates[i] = gate
			f.listings.On("GetListing", mock.Anything, id).Run(func(mock.Arguments) {
				entered <- struct{}{}
				<-gate
			}).Return(issuedRecord(id, 1))
		}

		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				f.sync.SyncListing(context.Background(), listingKey(id))
			}(id)
			<-entered
		}

		for _, i := range order {
			close(gates[i])
		}
		wg.Wait()

		view := f.sync.View()
		assert.Equal(t, "12", view.Key.ListingID, "order %v", order)
		require.NotNil(t, view.Record, "order %v", order)
		assert.Equal(t, "12", view.Record.ListingID, "order %v", order)
		assert.False(t, view.Loading, "order %v", order)
	}
}

func TestListingSynchronizer_KeyChangeResetsView(t *testing.T) {
	f := newSyncFixture(signingWallet(alice, goerli))
	f.listings.On("GetListing", mock.Anything, "1").Return(issuedRecord("1", 1))
	f.listings.On("GetListing", mock.Anything, "2").Return(nil)
	f.chain.withProduct(product, models.ProductStatusIssued, 1).withBalance(alice, 1)

	f.sync.SyncListing(context.Background(), listingKey("1"))

	var first *models.MergedListingView
	f.sync.Subscribe(func(v models.MergedListingView) {
		if first == nil {
			first = &v
		}
	})
	f.sync.SyncListing(context.Background(), listingKey("2"))

	require.NotNil(t, first)
	assert.Equal(t, models.MergedListingView{Key: listingKey("2"), Loading: true}, *first)
}
