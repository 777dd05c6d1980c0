package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
	"github.com/superhedge/listingctl/internal/usecase"
)

var (
	alice       = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob         = common.HexToAddress("0x2222222222222222222222222222222222222222")
	product     = common.HexToAddress("0x3333333333333333333333333333333333333333")
	nftAddress  = common.HexToAddress("0x4444444444444444444444444444444444444444")
	marketplace = common.HexToAddress("0x5555555555555555555555555555555555555555")
	usdc        = common.HexToAddress("0x6666666666666666666666666666666666666666")
)

const goerli = 5

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNetwork() *config.Network {
	return &config.Network{
		Name:    "goerli",
		ChainID: goerli,
		Contracts: config.Contracts{
			Marketplace: marketplace,
			NFT:         nftAddress,
		},
		Currency: config.Currency{Symbol: "USDC", Address: usdc, Decimals: 6},
	}
}

// fakeSigner signs nothing; the transactor mock never looks at signatures
type fakeSigner struct {
	address common.Address
	chainID uint64
}

func (s *fakeSigner) Address() common.Address { return s.address }
func (s *fakeSigner) ChainID() uint64         { return s.chainID }
func (s *fakeSigner) SignTx(_ context.Context, tx *types.Transaction) (*types.Transaction, error) {
	return tx, nil
}

// fakeWallet is a WalletProvider whose state tests switch by hand
type fakeWallet struct {
	mu        sync.Mutex
	state     usecase.WalletState
	onRefresh *usecase.WalletState
	handlers  map[int]func(usecase.WalletState)
	nextID    int
}

func newFakeWallet(state usecase.WalletState) *fakeWallet {
	return &fakeWallet{state: state, handlers: make(map[int]func(usecase.WalletState))}
}

func signingWallet(addr common.Address, chainID uint64) *fakeWallet {
	return newFakeWallet(usecase.WalletState{
		Address: addr,
		ChainID: chainID,
		Signer:  &fakeSigner{address: addr, chainID: chainID},
	})
}

func (w *fakeWallet) State() usecase.WalletState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *fakeWallet) Refresh(context.Context) (usecase.WalletState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.onRefresh != nil {
		w.state = *w.onRefresh
		w.onRefresh = nil
	}
	return w.state, nil
}

// SwitchOnRefresh makes the next Refresh report state without emitting an
// event, like a chain switch that is only seen when the node is queried
func (w *fakeWallet) SwitchOnRefresh(state usecase.WalletState) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRefresh = &state
}

func (w *fakeWallet) Subscribe(handler func(usecase.WalletState)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextID
	w.nextID++
	w.handlers[id] = handler
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.handlers, id)
	}
}

// Switch changes the wallet state and emits it like an account or chain switch
func (w *fakeWallet) Switch(state usecase.WalletState) {
	w.mu.Lock()
	w.state = state
	handlers := make([]func(usecase.WalletState), 0, len(w.handlers))
	for _, h := range w.handlers {
		handlers = append(handlers, h)
	}
	w.mu.Unlock()

	for _, h := range handlers {
		h(state)
	}
}

// fakeBinder binds real BoundContracts without a backend
type fakeBinder struct {
	mu    sync.Mutex
	calls int
}

func (b *fakeBinder) Bind(address common.Address, descriptor bindings.Descriptor) (*bind.BoundContract, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()

	parsed, err := descriptor.Parse()
	if err != nil {
		return nil, err
	}
	return bind.NewBoundContract(address, *parsed, nil, nil, nil), nil
}

func (b *fakeBinder) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

// fakeChain serves product snapshots and balances from maps
type fakeChain struct {
	mu          sync.Mutex
	products    map[common.Address]*models.ProductSnapshot
	balances    map[common.Address]*big.Int
	productErr  error
	balanceErr  error
	productHits int
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		products: make(map[common.Address]*models.ProductSnapshot),
		balances: make(map[common.Address]*big.Int),
	}
}

func (c *fakeChain) withProduct(addr common.Address, status models.ProductStatus, tokenID int64) *fakeChain {
	c.products[addr] = &models.ProductSnapshot{Address: addr, Status: status, CurrentTokenID: big.NewInt(tokenID)}
	return c
}

func (c *fakeChain) withBalance(owner common.Address, balance int64) *fakeChain {
	c.balances[owner] = big.NewInt(balance)
	return c
}

func (c *fakeChain) ReadProduct(_ context.Context, handle *models.ContractHandle) (*models.ProductSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.productHits++
	if c.productErr != nil {
		return nil, c.productErr
	}
	p, ok := c.products[handle.Address]
	if !ok {
		return nil, context.DeadlineExceeded
	}
	return p, nil
}

func (c *fakeChain) BalanceOf(_ context.Context, _ *models.ContractHandle, owner common.Address, _ *big.Int) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.balanceErr != nil {
		return nil, c.balanceErr
	}
	if b, ok := c.balances[owner]; ok {
		return b, nil
	}
	return new(big.Int), nil
}

// MockListingService is a mock implementation of ListingService
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) GetListing(ctx context.Context, listingID string) *models.ListingRecord {
	args := m.Called(ctx, listingID)
	if v, ok := args.Get(0).(*models.ListingRecord); ok {
		return v
	}
	return nil
}

func (m *MockListingService) GetListedItems(ctx context.Context, address common.Address, chainID uint64) []*models.ListingRecord {
	args := m.Called(ctx, address, chainID)
	if v, ok := args.Get(0).([]*models.ListingRecord); ok {
		return v
	}
	return nil
}

func (m *MockListingService) GetUserInfo(ctx context.Context, address common.Address) *models.UserInfo {
	args := m.Called(ctx, address)
	if v, ok := args.Get(0).(*models.UserInfo); ok {
		return v
	}
	return nil
}

func (m *MockListingService) GetPositions(ctx context.Context, address common.Address) []*models.Position {
	args := m.Called(ctx, address)
	if v, ok := args.Get(0).([]*models.Position); ok {
		return v
	}
	return nil
}

func (m *MockListingService) GetHistory(ctx context.Context, address common.Address, order models.HistoryOrder) []*models.HistoryEntry {
	args := m.Called(ctx, address, order)
	if v, ok := args.Get(0).([]*models.HistoryEntry); ok {
		return v
	}
	return nil
}

// MockTransactor is a mock implementation of ListingTransactor
type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) Transact(ctx context.Context, handle *models.ContractHandle, calldata []byte, signer usecase.Signer) (*types.Transaction, error) {
	args := m.Called(ctx, handle, calldata, signer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Transaction), args.Error(1)
}

func (m *MockTransactor) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Receipt), args.Error(1)
}

func (m *MockTransactor) RevertReason(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) string {
	args := m.Called(ctx, tx, receipt)
	return args.String(0)
}

// MockProgressSink records progress events
type MockProgressSink struct {
	mu     sync.Mutex
	events []usecase.ProgressEvent
}

func (m *MockProgressSink) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *MockProgressSink) Info(string)  {}
func (m *MockProgressSink) Error(string) {}

func (m *MockProgressSink) Stages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	stages := make([]string, len(m.events))
	for i, e := range m.events {
		stages[i] = e.Stage
	}
	return stages
}

func issuedRecord(id string, lots uint64) *models.ListingRecord {
	return &models.ListingRecord{
		ListingID:            id,
		ProductAddress:       product,
		Seller:               alice,
		OfferPriceMinorUnits: big.NewInt(10_000_000_000),
		Lots:                 lots,
		StartingTime:         1_700_000_000,
	}
}

func testTx(nonce uint64) *types.Transaction {
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &marketplace,
		Gas:      100_000,
		GasPrice: big.NewInt(1),
	})
}
