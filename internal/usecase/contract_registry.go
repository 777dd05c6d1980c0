package usecase

import (
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/superhedge/listingctl/internal/domain/bindings"
	"github.com/superhedge/listingctl/internal/domain/models"
)

// ContractRegistry memoizes contract handles per address for the current
// signer. Handles only ever come from the session the registry last heard
// of through its invalidator, so a handle for a replaced signer is never
// served.
type ContractRegistry struct {
	binder ContractBinder
	log    *slog.Logger

	mu      sync.Mutex
	session models.Session
	handles map[common.Address]*models.ContractHandle
}

// NewContractRegistry creates a registry and registers it as an invalidator
// of the session binding.
func NewContractRegistry(session *SessionBinding, binder ContractBinder, log *slog.Logger) *ContractRegistry {
	r := &ContractRegistry{
		binder:  binder,
		log:     log.With("component", "registry"),
		handles: make(map[common.Address]*models.ContractHandle),
	}
	session.SubscribeInvalidation(r.invalidate)
	return r
}

// GetHandle returns the handle for address bound to the current signer.
// It reports false, without error, when the address is zero or the session
// cannot sign.
func (r *ContractRegistry) GetHandle(address common.Address, descriptor bindings.Descriptor) (*models.ContractHandle, bool) {
	if address == (common.Address{}) || descriptor.IsZero() {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ref, ok := r.session.SignerRef()
	if !ok {
		return nil, false
	}

	if h, ok := r.handles[address]; ok {
		if h.Signer == ref && h.ABI == descriptor.ID() {
			return h, true
		}
		r.log.Debug("evicting handle", "address", address.Hex(), "abi", h.ABI, "signer", h.Signer.String())
		delete(r.handles, address)
	}

	contract, err := r.binder.Bind(address, descriptor)
	if err != nil {
		r.log.Warn("failed to bind contract", "address", address.Hex(), "abi", descriptor.ID(), "error", err)
		return nil, false
	}

	h := &models.ContractHandle{
		Address:  address,
		ABI:      descriptor.ID(),
		Signer:   ref,
		Contract: contract,
	}
	r.handles[address] = h
	return h, true
}

// Len returns the number of cached handles
func (r *ContractRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}

func (r *ContractRegistry) invalidate(session models.Session, _ Signer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session = session
	ref, ok := session.SignerRef()
	for addr, h := range r.handles {
		if !ok || h.Signer != ref {
			delete(r.handles, addr)
		}
	}
}

var _ HandleProvider = (*ContractRegistry)(nil)
