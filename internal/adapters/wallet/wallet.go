package wallet

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/superhedge/listingctl/internal/domain"
	"github.com/superhedge/listingctl/internal/domain/config"
	"github.com/superhedge/listingctl/internal/usecase"
)

// ChainIDSource reports the chain the RPC endpoint is on
type ChainIDSource interface {
	ChainID(ctx context.Context) (uint64, error)
}

// KeyWallet is a wallet provider backed by a configured private key. Without
// a key it exposes the configured address read-only.
type KeyWallet struct {
	chain     ChainIDSource
	confirmer usecase.Confirmer
	log       *slog.Logger

	key     *ecdsa.PrivateKey
	address common.Address

	mu          sync.Mutex
	state       usecase.WalletState
	signer      *KeySigner
	subscribers map[int]func(usecase.WalletState)
	nextID      int
}

// NewKeyWallet creates a wallet from the runtime configuration. confirmer
// may be nil, in which case transactions are signed without asking.
func NewKeyWallet(cfg *config.RuntimeConfig, chain ChainIDSource, confirmer usecase.Confirmer, log *slog.Logger) (*KeyWallet, error) {
	w := &KeyWallet{
		chain:       chain,
		log:         log.With("component", "wallet"),
		subscribers: make(map[int]func(usecase.WalletState)),
	}
	if cfg.Wallet.Confirm {
		w.confirmer = confirmer
	}

	if cfg.Wallet.HasSigner() {
		key, err := parsePrivateKey(cfg.Wallet.PrivateKey)
		if err != nil {
			return nil, err
		}
		w.key = key
		w.address = crypto.PubkeyToAddress(key.PublicKey)
	}

	if cfg.Wallet.Address != "" {
		addr, err := domain.ParseChecksumAddress(cfg.Wallet.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet address: %w", err)
		}
		if w.key != nil && addr != w.address {
			return nil, fmt.Errorf("wallet address %s does not match private key address %s", addr.Hex(), w.address.Hex())
		}
		w.address = addr
	}

	w.state = usecase.WalletState{Address: w.address}
	return w, nil
}

func parsePrivateKey(hexKey string) (*ecdsa.PrivateKey, error) {
	hexKey = strings.TrimPrefix(strings.TrimSpace(hexKey), "0x")
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// State returns what the wallet currently exposes
func (w *KeyWallet) State() usecase.WalletState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Refresh asks the RPC endpoint for its chain and rebuilds the signer when
// the chain changed. On failure the chain is reported as unknown.
func (w *KeyWallet) Refresh(ctx context.Context) (usecase.WalletState, error) {
	if w.address == (common.Address{}) {
		return w.State(), nil
	}

	chainID, err := w.chain.ChainID(ctx)
	if err != nil {
		w.log.Warn("failed to read chain id", "error", err)
		chainID = 0
	}

	state := w.update(chainID)
	return state, err
}

// Subscribe registers a handler called on every state change
func (w *KeyWallet) Subscribe(handler func(usecase.WalletState)) (unsubscribe func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := w.nextID
	w.nextID++
	w.subscribers[id] = handler

	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subscribers, id)
	}
}

func (w *KeyWallet) update(chainID uint64) usecase.WalletState {
	w.mu.Lock()

	if chainID == w.state.ChainID {
		state := w.state
		w.mu.Unlock()
		return state
	}

	next := usecase.WalletState{Address: w.address, ChainID: chainID}
	w.signer = nil
	if w.key != nil && chainID != 0 {
		w.signer = &KeySigner{key: w.key, address: w.address, chainID: chainID, confirmer: w.confirmer}
		next.Signer = w.signer
	}
	w.log.Debug("wallet state changed", "address", w.address.Hex(), "chainId", chainID, "canSign", next.Signer != nil)
	w.state = next

	handlers := make([]func(usecase.WalletState), 0, len(w.subscribers))
	for _, h := range w.subscribers {
		handlers = append(handlers, h)
	}
	w.mu.Unlock()

	for _, h := range handlers {
		h(next)
	}
	return next
}

var _ usecase.WalletProvider = (*KeyWallet)(nil)
