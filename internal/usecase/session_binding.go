package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/superhedge/listingctl/internal/domain/models"
)

// SessionInvalidator is told about a session change before anything else
// can observe the new session. It runs with the binding's lock held and
// must not call back into the binding.
type SessionInvalidator func(session models.Session, signer Signer)

// SessionBinding exposes the current wallet session and notifies on change
type SessionBinding struct {
	provider WalletProvider
	log      *slog.Logger

	mu           sync.Mutex
	session      models.Session
	signer       Signer
	invalidators []SessionInvalidator
	subscribers  map[int]func(models.Session)
	nextID       int
	stop         func()
}

// NewSessionBinding creates a binding over the given wallet provider and
// starts following its events.
func NewSessionBinding(provider WalletProvider, log *slog.Logger) *SessionBinding {
	b := &SessionBinding{
		provider:    provider,
		log:         log.With("component", "session"),
		subscribers: make(map[int]func(models.Session)),
	}
	b.apply(provider.State())
	b.stop = provider.Subscribe(b.apply)
	return b
}

// Current returns the session snapshot
func (b *SessionBinding) Current() models.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.session
}

// Signer returns the signer of the current session, nil if it cannot sign
func (b *SessionBinding) Signer() Signer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.signer
}

// Subscribe registers a handler called after every session change
func (b *SessionBinding) Subscribe(handler func(models.Session)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// SubscribeInvalidation registers an invalidator and calls it once with the
// current session.
func (b *SessionBinding) SubscribeInvalidation(inv SessionInvalidator) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalidators = append(b.invalidators, inv)
	inv(b.session, b.signer)
}

// Refresh re-reads the wallet provider
func (b *SessionBinding) Refresh(ctx context.Context) (models.Session, error) {
	state, err := b.provider.Refresh(ctx)
	if err != nil {
		return b.Current(), fmt.Errorf("failed to refresh wallet: %w", err)
	}
	b.apply(state)
	return b.Current(), nil
}

// Close stops following the wallet provider
func (b *SessionBinding) Close() {
	if b.stop != nil {
		b.stop()
	}
}

func (b *SessionBinding) apply(state WalletState) {
	b.mu.Lock()

	next := models.NewSession(state.Address, state.ChainID, state.Signer != nil)
	var signer Signer
	if next.CanSign {
		signer = state.Signer
	}
	if next == b.session && signer == b.signer {
		b.mu.Unlock()
		return
	}

	b.log.Debug("session changed", "from", b.session.String(), "to", next.String())
	b.session = next
	b.signer = signer
	for _, inv := range b.invalidators {
		inv(next, signer)
	}

	subscribers := make([]func(models.Session), 0, len(b.subscribers))
	for _, h := range b.subscribers {
		subscribers = append(subscribers, h)
	}
	b.mu.Unlock()

	for _, h := range subscribers {
		h(next)
	}
}
