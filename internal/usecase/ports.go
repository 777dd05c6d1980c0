package usecase

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// Wallet ports

// Signer signs transactions for one account on one chain
type Signer interface {
	Address() common.Address
	ChainID() uint64
	SignTx(ctx context.Context, tx *types.Transaction) (*types.Transaction, error)
}

// WalletState is what a wallet provider currently exposes.
// Signer is nil when the wallet cannot sign.
type WalletState struct {
	Address common.Address
	ChainID uint64
	Signer  Signer
}

// WalletProvider is the connected wallet. Subscribe delivers account and
// chain switches, connects and disconnects.
type WalletProvider interface {
	State() WalletState
	Refresh(ctx context.Context) (WalletState, error)
	Subscribe(handler func(WalletState)) (unsubscribe func())
}

// SignatureRequest describes a transaction awaiting the user's approval
type SignatureRequest struct {
	From    common.Address
	To      common.Address
	ChainID uint64
	Method  string
	Summary string
}

// Confirmer asks the user to approve a signature
type Confirmer interface {
	ConfirmSignature(ctx context.Context, req SignatureRequest) (bool, error)
}

// Chain ports

// ContractBinder binds an ABI to an address on the session's chain
type ContractBinder interface {
	Bind(address common.Address, descriptor bindings.Descriptor) (*bind.BoundContract, error)
}

// HandleProvider serves memoized contract handles
type HandleProvider interface {
	GetHandle(address common.Address, descriptor bindings.Descriptor) (*models.ContractHandle, bool)
}

// PositionReader reads product and balance state on-chain
type PositionReader interface {
	ReadProduct(ctx context.Context, handle *models.ContractHandle) (*models.ProductSnapshot, error)
	BalanceOf(ctx context.Context, handle *models.ContractHandle, owner common.Address, tokenID *big.Int) (*big.Int, error)
}

// ListingTransactor sends marketplace transactions and observes their receipts
type ListingTransactor interface {
	// Transact signs and broadcasts calldata against the handle's contract.
	// Errors before broadcast are returned as is.
	Transact(ctx context.Context, handle *models.ContractHandle, calldata []byte, signer Signer) (*types.Transaction, error)
	// WaitMined blocks until the receipt is available or ctx is done
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
	// RevertReason explains a failed receipt. It never returns an empty string.
	RevertReason(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) string
}

// Off-chain ports

// ListingService is the off-chain backend. Implementations degrade: any
// transport or decoding failure is logged and reported as absent or empty.
type ListingService interface {
	GetListing(ctx context.Context, listingID string) *models.ListingRecord
	GetListedItems(ctx context.Context, address common.Address, chainID uint64) []*models.ListingRecord
	GetUserInfo(ctx context.Context, address common.Address) *models.UserInfo
	GetPositions(ctx context.Context, address common.Address) []*models.Position
	GetHistory(ctx context.Context, address common.Address, order models.HistoryOrder) []*models.HistoryEntry
}

// NetworkResolver handles network configuration resolution
type NetworkResolver interface {
	GetNetworks(ctx context.Context) []string
	ResolveNetwork(ctx context.Context, networkName string) (*config.Network, error)
}

// PositionSelector handles interactive selection of positions
type PositionSelector interface {
	SelectPosition(ctx context.Context, positions []*models.Position, prompt string) (*models.Position, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// Stages reported through ProgressSink
const (
	StageSyncing    = "syncing"
	StageValidating = "validating"
	StageSigning    = "signing"
	StageConfirming = "confirming"
	StageCompleted  = "completed"
)
